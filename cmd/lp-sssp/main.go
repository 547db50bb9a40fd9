package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/cmd/common"
	"github.com/ScottSallinen/superstep/enforce"
	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
)

func main() {
	sourcePtr := flag.Uint64("s", 0, "Raw id of the source node.")
	checkPtr := flag.Bool("c", false, "Check correctness after execution.")
	noReducePtr := flag.Bool("q", false, "Queue every message instead of combining with a min reducer.")
	lo := common.FlagsToOptions()
	lo.Engine.Direction = graph.OUT
	if !*noReducePtr {
		lo.Engine.Reducer = framework.MinReducer{}
	}

	g := common.LoadGraph(lo)
	source, ok := g.InternalId(*sourcePtr)
	if !ok {
		log.Fatal().Msg("Source " + flag.Lookup("s").Value.String() + " is not in the graph.")
	}
	res := common.Execute(g, &SSSP{Source: source}, lo)
	if *checkPtr {
		enforce.ENFORCE(CheckCorrectness(g, source, res))
	}
}
