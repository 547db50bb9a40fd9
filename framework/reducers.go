package framework

import (
	"math"
)

// Combines messages for the same target as they are sent, so a node receives at most one
// message per superstep. Reduce must be commutative and associative.
type Reducer interface {
	Identity() float64
	Reduce(current, message float64) float64
}

type MinReducer struct{}

func (MinReducer) Identity() float64            { return math.Inf(1) }
func (MinReducer) Reduce(c, m float64) float64 { return math.Min(c, m) }

type MaxReducer struct{}

func (MaxReducer) Identity() float64            { return math.Inf(-1) }
func (MaxReducer) Reduce(c, m float64) float64 { return math.Max(c, m) }

type SumReducer struct{}

func (SumReducer) Identity() float64            { return 0 }
func (SumReducer) Reduce(c, m float64) float64 { return c + m }
