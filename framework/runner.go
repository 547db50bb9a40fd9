package framework

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

type State int32

const (
	IDLE State = iota
	RUNNING
	CONVERGED
	ITERATION_LIMIT
	ABORTED
)

func (s State) String() string {
	switch s {
	case IDLE:
		return "idle"
	case RUNNING:
		return "running"
	case CONVERGED:
		return "converged"
	case ITERATION_LIMIT:
		return "iteration-limit"
	case ABORTED:
		return "aborted"
	}
	return "unknown"
}

type Result struct {
	Values     *NodeValues   // Final value of every node.
	Supersteps int           // Supersteps actually executed.
	Status     State         // CONVERGED or ITERATION_LIMIT.
	Messages   uint64        // Notifications sent over the whole run.
	Elapsed    time.Duration // Wall time of the superstep loop, excluding OnSuperstepEnd hooks.
	Total      time.Duration // Wall time including hooks.
}

func (r *Result) Converged() bool {
	return r.Status == CONVERGED
}

// Shared by every worker of a run.
type runState struct {
	view      graph.View
	weighted  graph.Weighted // nil if the view has no weights.
	direction graph.Direction
	nodeCount uint64
	values    *NodeValues
	votes     *VoteBitset
	inbox     messageStore // Drained this superstep.
	outbox    messageStore // Filled this superstep. Same as inbox under ASYNC.
}

// Per superstep counters, summed over batches.
type stepCounters struct {
	computed atomic.Uint64
	active   atomic.Uint64
	sent     atomic.Uint64
	received atomic.Uint64
}

// Drives one computation over one view. A Runner runs once.
type Runner struct {
	view      graph.View
	comp      Computation
	opts      Options
	batches   []Batch
	state     atomic.Int32
	superstep atomic.Int64
}

// Validates options eagerly; no work is done on error.
func NewRunner(view graph.View, comp Computation, opts Options) (*Runner, error) {
	if view == nil {
		return nil, &ConfigurationError{Field: "View", Reason: "is nil"}
	}
	if comp == nil {
		return nil, &ConfigurationError{Field: "Computation", Reason: "is nil"}
	}
	if err := opts.Validate(view.NodeCount()); err != nil {
		return nil, err
	}
	r := &Runner{
		view:    view,
		comp:    comp,
		opts:    opts,
		batches: Partition(view.NodeCount(), opts.Concurrency, opts.MinBatchSize),
	}
	return r, nil
}

// Builds a runner and runs it.
func Run(ctx context.Context, view graph.View, comp Computation, opts Options) (*Result, error) {
	r, err := NewRunner(view, comp, opts)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Safe to call from any goroutine.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Current (or last executed) superstep. Safe to call from any goroutine.
func (r *Runner) Superstep() int {
	return int(r.superstep.Load())
}

func (r *Runner) Batches() []Batch {
	return r.batches
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if !r.state.CompareAndSwap(int32(IDLE), int32(RUNNING)) {
		return nil, &ConfigurationError{Field: "Runner", Reason: "already " + r.State().String()}
	}
	rs := r.newRunState()
	n := rs.nodeCount

	log.Info().Msg("Run: nodes " + utils.V(n) + " batches " + utils.V(len(r.batches)) + " concurrency " + utils.V(r.opts.Concurrency) +
		" discipline " + r.opts.Discipline.String() + " maxIterations " + utils.V(r.opts.MaxIterations))

	watch := utils.Watch{}
	watch.Start()
	var pending, sentTotal uint64
	status := RUNNING
	step := 0

	for ; status == RUNNING; step++ {
		r.superstep.Store(int64(step))
		if err := context.Cause(ctx); err != nil {
			return r.abort(&CancelledError{Superstep: step, Node: NO_NODE, Err: err})
		}

		counters, err := r.runSuperstep(ctx, rs, step)
		if err != nil {
			return r.abort(err)
		}
		sent, received := counters.sent.Load(), counters.received.Load()
		sentTotal += sent

		if r.opts.Discipline == SYNC {
			if received != pending {
				return r.abort(errors.Join(ErrProtocol, errors.New("superstep "+utils.V(step)+" received "+utils.V(received)+" expected "+utils.V(pending))))
			}
			pending = sent
			rs.inbox, rs.outbox = rs.outbox, rs.inbox
		} else {
			pending = pending + sent - received
		}

		stats := SuperstepStats{
			Superstep: step,
			Computed:  counters.computed.Load(),
			Active:    counters.active.Load(),
			Sent:      sent,
			Received:  received,
			Pending:   pending,
			Elapsed:   watch.Lap(),
		}
		if r.opts.DebugLevel > 0 {
			log.Debug().Msg("Superstep " + utils.V(step) + " computed " + utils.V(stats.Computed) + " active " + utils.V(stats.Active) +
				" sent " + utils.V(sent) + " received " + utils.V(received) + " pending " + utils.V(pending) + " (ms) " + utils.V(stats.Elapsed.Milliseconds()))
		}
		if hook, ok := r.comp.(AlgorithmOnSuperstepEnd); ok {
			watch.Pause()
			hook.OnSuperstepEnd(stats)
			watch.UnPause()
		}

		if step+1 >= r.opts.MaxIterations {
			status = ITERATION_LIMIT
		} else if stats.Active == 0 && pending == 0 {
			status = CONVERGED
		}
	}

	result := &Result{
		Values:     rs.values,
		Supersteps: step,
		Status:     status,
		Messages:   sentTotal,
		Elapsed:    watch.Elapsed(),
		Total:      watch.AbsoluteElapsed(),
	}
	log.Info().Msg("Termination(ms) " + utils.V(result.Elapsed.Milliseconds()) + " Total(ms) " + utils.V(result.Total.Milliseconds()) + " Supersteps: " + utils.V(step) +
		" Messages: " + utils.V(sentTotal) + " Status: " + status.String())
	if r.opts.DebugLevel > 1 {
		utils.MemoryStats()
	}

	if hook, ok := r.comp.(AlgorithmOnFinish); ok {
		if err := hook.OnFinish(result); err != nil {
			return r.abort(err)
		}
	}
	r.state.Store(int32(status))
	return result, nil
}

func (r *Runner) newRunState() *runState {
	n := r.view.NodeCount()
	shift := r.opts.shift()
	rs := &runState{
		view:      r.view,
		direction: r.opts.Direction,
		nodeCount: n,
		values:    newNodeValuesShift(n, r.opts.DefaultValue, shift),
		votes:     NewVoteBitset(n),
	}
	if w, ok := r.view.(graph.Weighted); ok {
		rs.weighted = w
	}
	if r.opts.Seed != nil {
		_ = rs.values.CopyFrom(r.opts.Seed) // Length checked by Validate.
	}
	if r.opts.Discipline == SYNC {
		rs.inbox = newMessageStore(n, r.opts.Reducer, true, shift)
		rs.outbox = newMessageStore(n, r.opts.Reducer, true, shift)
	} else {
		rs.inbox = newMessageStore(n, r.opts.Reducer, false, shift)
		rs.outbox = rs.inbox
	}
	return rs
}

func (r *Runner) abort(err error) (*Result, error) {
	r.state.Store(int32(ABORTED))
	log.Error().Err(err).Msg("Run aborted at superstep " + utils.V(r.Superstep()))
	return nil, err
}

// One task per batch on a bounded pool; Wait is the barrier. The first failing batch
// cancels the others.
func (r *Runner) runSuperstep(ctx context.Context, rs *runState, step int) (*stepCounters, error) {
	counters := &stepCounters{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for _, b := range r.batches {
		g.Go(func() error {
			return r.runBatch(gctx, rs, b, step, counters)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counters, nil
}

func (r *Runner) runBatch(ctx context.Context, rs *runState, b Batch, step int, counters *stepCounters) error {
	nc := &NodeContext{run: rs}
	scratch := make([]float64, 0, 1)
	var computed, active, received uint64
	defer func() {
		counters.computed.Add(computed)
		counters.active.Add(active)
		counters.received.Add(received)
		counters.sent.Add(nc.sent)
	}()

	done := ctx.Done()
	for node := b.Start; node < b.End; node++ {
		select {
		case <-done:
			return &CancelledError{Superstep: step, Node: node, Err: context.Cause(ctx)}
		default:
		}

		msgs := rs.inbox.drain(node, scratch)
		if len(msgs) > 0 {
			received += uint64(len(msgs))
			rs.votes.Reactivate(node)
		} else if step != 0 && !rs.votes.IsActive(node) {
			continue
		}

		nc.bind(node, step)
		if err := r.compute(nc, node, msgs); err != nil {
			return &ComputationError{Node: node, Superstep: step, Err: err}
		}
		if nc.err != nil {
			return &ComputationError{Node: node, Superstep: step, Err: nc.err}
		}
		computed++
		if nc.halted {
			rs.votes.VoteToHalt(node)
		} else {
			active++
		}
	}
	return nil
}

func (r *Runner) compute(nc *NodeContext, node uint64, msgs []float64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.New("panic: " + utils.V(p))
		}
	}()
	return r.comp.Compute(nc, node, msgs)
}
