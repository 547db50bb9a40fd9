package framework

import (
	"errors"
	"math"
	"strconv"
)

// Node field of a CancelledError raised between supersteps.
const NO_NODE = math.MaxUint64

var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrOutOfRange    = errors.New("node id out of range")
	ErrComputation   = errors.New("computation failed")
	ErrCancelled     = errors.New("run cancelled")

	// Sent and received notification counts disagree after a barrier. Indicates an engine bug.
	ErrProtocol = errors.New("message accounting mismatch")
)

// An option was rejected before the run started.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Field + ": " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// A node id outside [0, NodeCount) was passed to a store or a send.
type OutOfRangeError struct {
	Node      uint64
	NodeCount uint64
}

func (e *OutOfRangeError) Error() string {
	return "node " + strconv.FormatUint(e.Node, 10) + " out of range [0, " + strconv.FormatUint(e.NodeCount, 10) + ")"
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// A compute call returned an error or panicked. The run is aborted.
type ComputationError struct {
	Node      uint64
	Superstep int
	Err       error
}

func (e *ComputationError) Error() string {
	return "compute failed at node " + strconv.FormatUint(e.Node, 10) + " superstep " + strconv.Itoa(e.Superstep) + ": " + e.Err.Error()
}

func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// The run context was cancelled. Node is the node that observed the cancellation, or NO_NODE.
type CancelledError struct {
	Superstep int
	Node      uint64
	Err       error
}

func (e *CancelledError) Error() string {
	msg := "cancelled at superstep " + strconv.Itoa(e.Superstep)
	if e.Node != NO_NODE {
		msg += " node " + strconv.FormatUint(e.Node, 10)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

func (e *CancelledError) Unwrap() error {
	return e.Err
}

func outOfRange(node, nodeCount uint64) error {
	return &OutOfRangeError{Node: node, NodeCount: nodeCount}
}
