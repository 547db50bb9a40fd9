package main

import (
	"flag"

	"github.com/ScottSallinen/superstep/cmd/common"
	"github.com/ScottSallinen/superstep/enforce"
	"github.com/ScottSallinen/superstep/framework"
)

// Launch point. Parses command line arguments, and launches the graph execution.
func main() {
	checkPtr := flag.Bool("c", false, "Check correctness after execution.")
	reducePtr := flag.Bool("r", false, "Combine messages with a min reducer instead of queueing them.")
	lo := common.FlagsToOptions()
	lo.Undirected = true // undirected should always be true.
	if *reducePtr {
		lo.Engine.Reducer = framework.MinReducer{}
	}

	g := common.LoadGraph(lo)
	res := common.Execute(g, &CC{Ids: g}, lo)
	if *checkPtr {
		enforce.ENFORCE(CheckCorrectness(g, res))
	}
}
