package framework

import (
	"github.com/ScottSallinen/superstep/graph"
)

// Handle given to Compute. One per worker; rebound to each node it computes.
// Must not be retained past the Compute call.
type NodeContext struct {
	run       *runState
	node      uint64
	superstep int
	halted    bool
	sent      uint64
	err       error // First out-of-range access in this compute call.
}

func (nc *NodeContext) bind(node uint64, superstep int) {
	nc.node = node
	nc.superstep = superstep
	nc.halted = false
	nc.err = nil
}

func (nc *NodeContext) NodeId() uint64 {
	return nc.node
}

func (nc *NodeContext) Superstep() int {
	return nc.superstep
}

func (nc *NodeContext) IsInitialSuperstep() bool {
	return nc.superstep == 0
}

func (nc *NodeContext) NodeCount() uint64 {
	return nc.run.nodeCount
}

// Degree of the current node in the configured direction.
func (nc *NodeContext) Degree() uint64 {
	return nc.run.view.Degree(nc.node, nc.run.direction)
}

func (nc *NodeContext) Value() float64 {
	return nc.run.values.get(nc.node)
}

func (nc *NodeContext) SetValue(value float64) {
	nc.run.values.set(nc.node, value)
}

// Queues value for target. An out-of-range target fails the compute call.
func (nc *NodeContext) SendTo(target uint64, value float64) {
	if target >= nc.run.nodeCount {
		nc.fail(outOfRange(target, nc.run.nodeCount))
		return
	}
	if nc.run.outbox.send(target, value) {
		nc.sent++
	}
}

// Sends value to every neighbour in the configured direction.
func (nc *NodeContext) SendToNeighbors(value float64) {
	nc.ForEachNeighbor(func(target uint64) bool {
		nc.SendTo(target, value)
		return nc.err == nil
	})
}

// Visits neighbours of the current node in the configured direction; stops if visit returns false.
func (nc *NodeContext) ForEachNeighbor(visit func(target uint64) bool) {
	nc.run.view.ForEachNeighbor(nc.node, nc.run.direction, func(target uint64) bool {
		if target >= nc.run.nodeCount {
			nc.fail(outOfRange(target, nc.run.nodeCount))
			return false
		}
		return visit(target)
	})
}

// Weight of the edge between the current node and a neighbour, following the configured
// direction (for IN, the edge target -> node). Views without weights report 1.
func (nc *NodeContext) RelationshipWeight(target uint64) float64 {
	if nc.run.weighted == nil {
		return 1.0
	}
	if nc.run.direction != graph.IN {
		if w, ok := nc.run.weighted.RelationshipWeight(nc.node, target); ok {
			return w
		}
	}
	if nc.run.direction != graph.OUT {
		if w, ok := nc.run.weighted.RelationshipWeight(target, nc.node); ok {
			return w
		}
	}
	return 1.0
}

// Idempotent. The node stays halted until a message is delivered to it.
func (nc *NodeContext) VoteToHalt() {
	nc.halted = true
}

func (nc *NodeContext) Direction() graph.Direction {
	return nc.run.direction
}

func (nc *NodeContext) fail(err error) {
	if nc.err == nil {
		nc.err = err
	}
}
