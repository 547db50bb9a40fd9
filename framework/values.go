package framework

import (
	"math"

	"github.com/ScottSallinen/superstep/utils"
)

// Per-node float64 values, paged so node counts are not bounded by a single allocation.
// Values are stored as IEEE bits and accessed atomically; workers of different batches may
// touch nodes that share a page.
type NodeValues struct {
	bits *utils.Paged[uint64]
}

// Allocates n values, all set to initial.
func NewNodeValues(n uint64, initial float64) *NodeValues {
	return newNodeValuesShift(n, initial, utils.PAGE_SHIFT)
}

func newNodeValuesShift(n uint64, initial float64, shift uint8) *NodeValues {
	nv := &NodeValues{bits: utils.NewPagedShift[uint64](n, shift)}
	if initial != 0 {
		nv.Fill(initial)
	}
	return nv
}

func (nv *NodeValues) Len() uint64 {
	return nv.bits.Len()
}

func (nv *NodeValues) Get(node uint64) (float64, error) {
	if node >= nv.bits.Len() {
		return 0, outOfRange(node, nv.bits.Len())
	}
	return utils.AtomicLoadFloat64(nv.bits.At(node)), nil
}

func (nv *NodeValues) Set(node uint64, value float64) error {
	if node >= nv.bits.Len() {
		return outOfRange(node, nv.bits.Len())
	}
	utils.AtomicStoreFloat64(nv.bits.At(node), value)
	return nil
}

// Unchecked; callers guarantee node < Len().
func (nv *NodeValues) get(node uint64) float64 {
	return utils.AtomicLoadFloat64(nv.bits.At(node))
}

func (nv *NodeValues) set(node uint64, value float64) {
	utils.AtomicStoreFloat64(nv.bits.At(node), value)
}

// Not safe against concurrent writers.
func (nv *NodeValues) Fill(value float64) {
	nv.bits.Fill(math.Float64bits(value))
}

// Copies every value from other, which must have the same length.
func (nv *NodeValues) CopyFrom(other *NodeValues) error {
	if other.Len() != nv.Len() {
		return &ConfigurationError{Field: "Seed", Reason: "has " + utils.V(other.Len()) + " values, graph has " + utils.V(nv.Len())}
	}
	other.ForEach(func(node uint64, value float64) {
		nv.set(node, value)
	})
	return nil
}

// Visits every node in id order.
func (nv *NodeValues) ForEach(fn func(node uint64, value float64)) {
	nv.bits.ForEachPage(func(start uint64, page []uint64) {
		for i := range page {
			fn(start+uint64(i), utils.AtomicLoadFloat64(&page[i]))
		}
	})
}

// Materializes all values into one slice. For small graphs and tests.
func (nv *NodeValues) ToSlice() []float64 {
	out := make([]float64, nv.Len())
	nv.ForEach(func(node uint64, value float64) {
		out[node] = value
	})
	return out
}
