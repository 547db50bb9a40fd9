package utils

import (
	"math"
	"sync/atomic"
)

// Float64 values stored as their IEEE bits, so that plain uint64 atomics apply.

func AtomicLoadFloat64(target *uint64) float64 {
	return math.Float64frombits(atomic.LoadUint64(target))
}

func AtomicStoreFloat64(target *uint64, v float64) {
	atomic.StoreUint64(target, math.Float64bits(v))
}

func AtomicSwapFloat64(target *uint64, v float64) (old float64) {
	return math.Float64frombits(atomic.SwapUint64(target, math.Float64bits(v)))
}

// Applies fn to the current value until the CAS succeeds. Returns the old and new values.
func AtomicApplyFloat64(target *uint64, v float64, fn func(current, v float64) float64) (oldF float64, newF float64) {
	for {
		oldU := atomic.LoadUint64(target)
		oldF = math.Float64frombits(oldU)
		newF = fn(oldF, v)
		newU := math.Float64bits(newF)
		if oldU == newU || atomic.CompareAndSwapUint64(target, oldU, newU) {
			return oldF, newF
		}
	}
}

func AtomicMinFloat64(target *uint64, v float64) (old float64) {
	for {
		oldU := atomic.LoadUint64(target)
		old = math.Float64frombits(oldU)
		if v >= old || atomic.CompareAndSwapUint64(target, oldU, math.Float64bits(v)) {
			return old
		}
	}
}

func AtomicAddFloat64(target *uint64, delta float64) (old float64) {
	old, _ = AtomicApplyFloat64(target, delta, func(c, d float64) float64 { return c + d })
	return old
}
