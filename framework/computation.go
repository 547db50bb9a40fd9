package framework

import (
	"time"
)

// User logic run once per scheduled node per superstep.
// messages holds what the node received; it is only valid for the duration of the call.
// A non-nil error aborts the run.
type Computation interface {
	Compute(nc *NodeContext, node uint64, messages []float64) error
}

type ComputeFunc func(nc *NodeContext, node uint64, messages []float64) error

func (f ComputeFunc) Compute(nc *NodeContext, node uint64, messages []float64) error {
	return f(nc, node, messages)
}

// Optional: called after every barrier, before termination is evaluated. Runs on the
// coordinating goroutine.
type AlgorithmOnSuperstepEnd interface {
	OnSuperstepEnd(stats SuperstepStats)
}

// Optional: called once when a run finishes without error.
type AlgorithmOnFinish interface {
	OnFinish(result *Result) error
}

type SuperstepStats struct {
	Superstep int           // Zero based.
	Computed  uint64        // Nodes whose compute ran.
	Active    uint64        // Computed nodes that did not vote to halt.
	Sent      uint64        // Notifications created (messages, or newly occupied slots with a reducer).
	Received  uint64        // Notifications drained.
	Pending   uint64        // Notifications still queued after the barrier.
	Elapsed   time.Duration // Wall time of the superstep.
}
