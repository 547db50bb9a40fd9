package main

import (
	"errors"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

// Single source shortest paths over non-negative weights (Bellman-Ford style relaxation).
// Unreachable nodes end at +Inf.
type SSSP struct {
	Source uint64 // Internal id.
}

var EMPTY_VAL = math.Inf(1)

var ErrNotRelaxed = errors.New("edge not relaxed")

func (alg *SSSP) Compute(nc *framework.NodeContext, node uint64, messages []float64) error {
	best := nc.Value()
	if nc.IsInitialSuperstep() {
		best = EMPTY_VAL
		if node == alg.Source {
			best = 0
		}
		nc.SetValue(EMPTY_VAL)
	}
	for _, m := range messages {
		best = math.Min(best, m)
	}

	// Only act on an improvement to shortest path.
	if best < nc.Value() {
		nc.SetValue(best)
		nc.ForEachNeighbor(func(target uint64) bool {
			nc.SendTo(target, best+nc.RelationshipWeight(target))
			return true
		})
	}
	nc.VoteToHalt()
	return nil
}

func (alg *SSSP) OnFinish(res *framework.Result) error {
	reached := 0
	maxDist := 0.0
	res.Values.ForEach(func(_ uint64, d float64) {
		if d != EMPTY_VAL {
			reached++
			maxDist = utils.Max(maxDist, d)
		}
	})
	log.Info().Msg("Reached " + utils.V(reached) + " of " + utils.V(res.Values.Len()) + " nodes, max distance " + utils.V(maxDist))
	return nil
}

// Every out edge (u, v, w) satisfies d(v) <= d(u) + w, and the source is at zero.
func CheckCorrectness(g interface {
	graph.View
	graph.Weighted
}, source uint64, res *framework.Result) error {
	if d, _ := res.Values.Get(source); d != 0 {
		return errors.Join(ErrNotRelaxed, errors.New("source at "+utils.V(d)))
	}
	var err error
	res.Values.ForEach(func(node uint64, d float64) {
		if err != nil || d == EMPTY_VAL {
			return
		}
		g.ForEachNeighbor(node, graph.OUT, func(target uint64) bool {
			w, _ := g.RelationshipWeight(node, target)
			other, _ := res.Values.Get(target)
			if other > d+w {
				err = errors.Join(ErrNotRelaxed, errors.New(utils.V(node)+" -> "+utils.V(target)))
				return false
			}
			return true
		})
	})
	return err
}
