package main

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/cmd/common"
	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
)

func main() {
	lo := common.FlagsToOptions()
	lo.Engine.Direction = graph.OUT
	lo.Engine.Reducer = framework.SumReducer{}
	if lo.Engine.Discipline == framework.ASYNC {
		log.Warn().Msg("PageRank sums one superstep of contributions; async runs mix supersteps and only approximate.")
	}
	common.Launch(new(PageRank), lo)
}
