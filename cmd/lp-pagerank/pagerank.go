package main

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/utils"
)

const DAMPINGFACTOR = float64(0.85)

// Fixed-iteration PageRank: nodes never vote to halt, so the run always ends at the
// iteration limit. Rank held by sinks is not redistributed.
// Incoming shares are summed in arrival order, which depends on scheduling, so ranks agree
// across concurrency settings only up to float rounding (about 1e-12 on small graphs).
type PageRank struct{}

func (*PageRank) Compute(nc *framework.NodeContext, node uint64, messages []float64) error {
	n := float64(nc.NodeCount())
	rank := 1.0 / n
	if !nc.IsInitialSuperstep() {
		rank = (1.0-DAMPINGFACTOR)/n + DAMPINGFACTOR*utils.Sum(messages)
	}
	nc.SetValue(rank)
	if deg := nc.Degree(); deg > 0 {
		nc.SendToNeighbors(rank / float64(deg))
	}
	return nil
}

func (*PageRank) OnFinish(res *framework.Result) error {
	total := 0.0
	top, topRank := uint64(0), 0.0
	res.Values.ForEach(func(node uint64, rank float64) {
		total += rank
		if rank > topRank {
			top, topRank = node, rank
		}
	})
	log.Info().Msg("Total rank " + utils.F("%.6f", total) + " top node " + utils.V(top) + " rank " + utils.F("%.6f", topRank))
	return nil
}
