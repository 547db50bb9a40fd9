package main

import (
	"errors"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

// Labels for nodes. *graph.Graph provides raw (external) ids.
type RawIds interface {
	RawId(node uint64) uint64
}

// Connected components by smallest-label propagation. Every node starts with its own id as
// label and adopts the smallest label it hears of; a node only speaks when its label improves.
type CC struct {
	Ids RawIds // If nil, internal ids are the labels.
}

var ErrInconsistentLabels = errors.New("connected nodes with different labels")

// For connected components, a node can accept their own id as a potential label.
// Such a starting label must be unique, so raw identifiers work (they are uniquely defined externally).
func (alg *CC) label(node uint64) float64 {
	if alg.Ids == nil {
		return float64(node)
	}
	return float64(alg.Ids.RawId(node))
}

func (alg *CC) Compute(nc *framework.NodeContext, node uint64, messages []float64) error {
	var best float64
	if nc.IsInitialSuperstep() {
		best = alg.label(node)
	} else {
		best = nc.Value()
	}
	for _, m := range messages {
		best = math.Min(best, m)
	}

	// Only act on an improvement to component (or the first superstep).
	if nc.IsInitialSuperstep() || best < nc.Value() {
		nc.SetValue(best)
		nc.SendToNeighbors(best)
	}
	nc.VoteToHalt()
	return nil
}

func (*CC) OnFinish(res *framework.Result) error {
	uniqueComponents := make(map[float64]struct{})
	res.Values.ForEach(func(_ uint64, label float64) {
		uniqueComponents[label] = struct{}{}
	})
	log.Info().Msg("Number of unique components: " + utils.V(len(uniqueComponents)))
	return nil
}

// Makes sure the labels inside connected components are consistent.
func CheckCorrectness(g graph.View, res *framework.Result) error {
	var err error
	res.Values.ForEach(func(node uint64, label float64) {
		if err != nil {
			return
		}
		g.ForEachNeighbor(node, graph.BOTH, func(target uint64) bool {
			other, _ := res.Values.Get(target)
			if other != label {
				err = errors.Join(ErrInconsistentLabels, errors.New("node "+utils.V(node)+" has "+utils.V(label)+", neighbour "+utils.V(target)+" has "+utils.V(other)))
				return false
			}
			return true
		})
	})
	return err
}
