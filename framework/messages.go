package framework

import (
	"math"
	"sync"

	"github.com/ScottSallinen/superstep/utils"
)

const LOCK_STRIPES = 4096

// Per-node message slots. Under the synchronous discipline the runner keeps two stores (inbox
// and outbox) and swaps them at the barrier; under the asynchronous one a single store is both.
type messageStore interface {
	// Delivers value to target. Returns true when this created a new notification that a
	// later drain will count.
	send(target uint64, value float64) (notified bool)
	// Removes and returns everything queued for node. The result may alias scratch, and is
	// only valid until the next send to this store.
	drain(node uint64, scratch []float64) []float64
}

func newMessageStore(n uint64, reducer Reducer, reuse bool, shift uint8) messageStore {
	if reducer != nil {
		return newReducedStore(n, reducer, shift)
	}
	return newQueueStore(n, reuse, shift)
}

// Unbounded per-node queues. Appends are guarded by a striped lock keyed on the target id;
// a presence bit lets drain skip empty slots without locking.
type queueStore struct {
	slots   *utils.Paged[[]float64]
	present *utils.AtomicBitmap
	locks   [LOCK_STRIPES]sync.Mutex
	reuse   bool // Keep slot backing arrays across supersteps (only when no one appends during a drain's lifetime).
}

func newQueueStore(n uint64, reuse bool, shift uint8) *queueStore {
	return &queueStore{
		slots:   utils.NewPagedShift[[]float64](n, shift),
		present: utils.NewAtomicBitmap(n),
		reuse:   reuse,
	}
}

func (qs *queueStore) send(target uint64, value float64) bool {
	lock := &qs.locks[target%LOCK_STRIPES]
	lock.Lock()
	slot := qs.slots.At(target)
	*slot = append(*slot, value)
	qs.present.Set(target)
	lock.Unlock()
	return true
}

func (qs *queueStore) drain(node uint64, _ []float64) (msgs []float64) {
	if !qs.present.Get(node) {
		return nil
	}
	lock := &qs.locks[node%LOCK_STRIPES]
	lock.Lock()
	slot := qs.slots.At(node)
	msgs = *slot
	if qs.reuse {
		*slot = msgs[:0]
	} else {
		*slot = nil
	}
	qs.present.Clear(node)
	lock.Unlock()
	return msgs
}

// One combined value per node. Combining is a CAS loop on the value bits; the presence bit
// is set after the value so a concurrent drain never loses a message.
type reducedStore struct {
	values   *utils.Paged[uint64]
	present  *utils.AtomicBitmap
	reducer  Reducer
	identity float64
}

func newReducedStore(n uint64, reducer Reducer, shift uint8) *reducedStore {
	rs := &reducedStore{
		values:   utils.NewPagedShift[uint64](n, shift),
		present:  utils.NewAtomicBitmap(n),
		reducer:  reducer,
		identity: reducer.Identity(),
	}
	rs.values.Fill(math.Float64bits(rs.identity))
	return rs
}

func (rs *reducedStore) send(target uint64, value float64) bool {
	slot := rs.values.At(target)
	switch rs.reducer.(type) {
	case MinReducer:
		utils.AtomicMinFloat64(slot, value)
	case SumReducer:
		utils.AtomicAddFloat64(slot, value)
	default:
		utils.AtomicApplyFloat64(slot, value, rs.reducer.Reduce)
	}
	return !rs.present.Set(target)
}

// Clearing presence before taking the value means a racing send either lands in this drain
// or raises presence again. The latter may yield an identity-valued message next time.
func (rs *reducedStore) drain(node uint64, scratch []float64) []float64 {
	if !rs.present.Get(node) || !rs.present.Clear(node) {
		return nil
	}
	return append(scratch[:0], utils.AtomicSwapFloat64(rs.values.At(node), rs.identity))
}
