package main

import (
	"flag"

	"github.com/ScottSallinen/superstep/cmd/common"
	"github.com/ScottSallinen/superstep/enforce"
	"github.com/ScottSallinen/superstep/graph"
)

func main() {
	checkPtr := flag.Bool("c", false, "Check correctness after execution.")
	lo := common.FlagsToOptions()
	lo.Undirected = true
	lo.Engine.Direction = graph.OUT
	lo.Engine.MaxIterations = max(lo.Engine.MaxIterations, 1<<20) // Runs until every node is coloured.
	lo.Engine.Reducer = nil

	g := common.LoadGraph(lo)
	res := common.Execute(g, NewColouring(g), lo)
	if *checkPtr {
		enforce.ENFORCE(CheckCorrectness(g, res))
	}
}
