package utils

import (
	"math/bits"
	"sync/atomic"
)

// A fixed-size bitmap, paged, where each bit may be read and written concurrently.
// Neighbouring bits share a word, so every mutation is an atomic Or/And on that word.
type AtomicBitmap struct {
	words *Paged[uint64]
	size  uint64
}

func NewAtomicBitmap(size uint64) *AtomicBitmap {
	return &AtomicBitmap{words: NewPaged[uint64]((size + 63) >> 6), size: size}
}

// Number of addressable bits.
func (b *AtomicBitmap) Len() uint64 {
	return b.size
}

func (b *AtomicBitmap) Get(x uint64) bool {
	return atomic.LoadUint64(b.words.At(x>>6))&(1<<(x&63)) != 0
}

// Sets bit x; returns the previous state of the bit.
func (b *AtomicBitmap) Set(x uint64) (was bool) {
	bit := uint64(1) << (x & 63)
	return atomic.OrUint64(b.words.At(x>>6), bit)&bit != 0
}

// Clears bit x; returns the previous state of the bit.
func (b *AtomicBitmap) Clear(x uint64) (was bool) {
	bit := uint64(1) << (x & 63)
	return atomic.AndUint64(b.words.At(x>>6), ^bit)&bit != 0
}

// Zeros all bits. Not safe against concurrent writers.
func (b *AtomicBitmap) Zeroes() {
	b.words.Fill(0)
}

// Counts set bits. Only meaningful when no writers are active.
func (b *AtomicBitmap) Count() (count uint64) {
	b.words.ForEachPage(func(_ uint64, page []uint64) {
		for i := range page {
			count += uint64(bits.OnesCount64(atomic.LoadUint64(&page[i])))
		}
	})
	return count
}
