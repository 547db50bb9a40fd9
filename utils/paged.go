package utils

// Paged arrays: a slice of fixed-size pages, so that very large element counts never need a
// single contiguous allocation. Index math is a shift (page) and a mask (offset in page).

const PAGE_SHIFT = 14
const PAGE_SIZE = 1 << PAGE_SHIFT

type Paged[T any] struct {
	pages [][]T
	size  uint64
	shift uint64
	mask  uint64
}

// Allocates a paged array of the given size with the default page size.
func NewPaged[T any](size uint64) *Paged[T] {
	return NewPagedShift[T](size, PAGE_SHIFT)
}

// Allocates a paged array with pages of 2^shift elements. The final page is trimmed to fit.
func NewPagedShift[T any](size uint64, shift uint8) *Paged[T] {
	p := &Paged[T]{size: size, shift: uint64(shift), mask: (uint64(1) << shift) - 1}
	pageSize := uint64(1) << shift
	numPages := (size + pageSize - 1) >> shift
	p.pages = make([][]T, numPages)
	for i := uint64(0); i < numPages; i++ {
		n := pageSize
		if rem := size - i*pageSize; rem < pageSize {
			n = rem
		}
		p.pages[i] = make([]T, n)
	}
	return p
}

// Number of elements.
func (p *Paged[T]) Len() uint64 {
	return p.size
}

// Number of pages.
func (p *Paged[T]) NumPages() int {
	return len(p.pages)
}

// Pointer to element i. No bounds check beyond the one the runtime does on the page slices.
func (p *Paged[T]) At(i uint64) *T {
	return &p.pages[i>>p.shift][i&p.mask]
}

func (p *Paged[T]) Get(i uint64) T {
	return p.pages[i>>p.shift][i&p.mask]
}

func (p *Paged[T]) Set(i uint64, v T) {
	p.pages[i>>p.shift][i&p.mask] = v
}

// Sets every element to v.
func (p *Paged[T]) Fill(v T) {
	for _, page := range p.pages {
		for j := range page {
			page[j] = v
		}
	}
}

// Calls fn for every page, with the index of the first element of the page.
func (p *Paged[T]) ForEachPage(fn func(start uint64, page []T)) {
	for i, page := range p.pages {
		fn(uint64(i)<<p.shift, page)
	}
}
