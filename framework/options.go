package framework

import (
	"runtime"

	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

// How message visibility relates to superstep boundaries.
type Discipline uint8

const (
	SYNC  Discipline = iota // Messages sent in superstep k are visible exactly in superstep k+1.
	ASYNC                   // One shared queue; a message may be seen within the same superstep.
)

func (d Discipline) String() string {
	switch d {
	case SYNC:
		return "sync"
	case ASYNC:
		return "async"
	}
	return "unknown"
}

func ParseDiscipline(s string) (Discipline, bool) {
	switch s {
	case "sync", "":
		return SYNC, true
	case "async":
		return ASYNC, true
	}
	return SYNC, false
}

const DEFAULT_MAX_ITERATIONS = 20
const DEFAULT_MIN_BATCH_SIZE = 10_000

type Options struct {
	MaxIterations int             // Upper bound on supersteps executed. Must be >= 1.
	Concurrency   int             // Number of workers running batches at once. Must be >= 1.
	MinBatchSize  int             // Lower bound on nodes per batch. Must be >= 1.
	Discipline    Discipline      // SYNC or ASYNC message visibility.
	Direction     graph.Direction // Adjacency used by SendToNeighbors and Degree.
	DefaultValue  float64         // Initial value of every node when Seed is nil.
	Seed          *NodeValues     // Optional initial values; length must equal the node count.
	Reducer       Reducer         // If set, messages to the same node are combined on send.
	DebugLevel    int             // If non-zero, logs per-superstep details.
	pageShift     uint8           // Page size of internal stores, 2^pageShift. Zero means utils.PAGE_SHIFT.
}

func DefaultOptions() Options {
	return Options{
		MaxIterations: DEFAULT_MAX_ITERATIONS,
		Concurrency:   runtime.NumCPU(),
		MinBatchSize:  DEFAULT_MIN_BATCH_SIZE,
		Discipline:    SYNC,
		Direction:     graph.OUT,
	}
}

// Checks the options against a graph of nodeCount nodes.
func (o *Options) Validate(nodeCount uint64) error {
	if o.MaxIterations < 1 {
		return &ConfigurationError{Field: "MaxIterations", Reason: "must be at least 1, got " + utils.V(o.MaxIterations)}
	}
	if o.Concurrency < 1 {
		return &ConfigurationError{Field: "Concurrency", Reason: "must be at least 1, got " + utils.V(o.Concurrency)}
	}
	if o.MinBatchSize < 1 {
		return &ConfigurationError{Field: "MinBatchSize", Reason: "must be at least 1, got " + utils.V(o.MinBatchSize)}
	}
	if o.Discipline != SYNC && o.Discipline != ASYNC {
		return &ConfigurationError{Field: "Discipline", Reason: "unknown discipline " + utils.V(uint8(o.Discipline))}
	}
	if o.Direction > graph.BOTH {
		return &ConfigurationError{Field: "Direction", Reason: "unknown direction " + utils.V(uint8(o.Direction))}
	}
	if o.Seed != nil && o.Seed.Len() != nodeCount {
		return &ConfigurationError{Field: "Seed", Reason: "has " + utils.V(o.Seed.Len()) + " values, graph has " + utils.V(nodeCount)}
	}
	if o.pageShift > 32 {
		return &ConfigurationError{Field: "pageShift", Reason: "too large"}
	}
	return nil
}

func (o *Options) shift() uint8 {
	if o.pageShift == 0 {
		return utils.PAGE_SHIFT
	}
	return o.pageShift
}
