package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

// Plain power iteration with the same update rule.
func powerIteration(g *graph.Graph, iterations int) []float64 {
	n := g.NodeCount()
	rank := make([]float64, n)
	for v := range rank {
		rank[v] = 1.0 / float64(n)
	}
	for i := 0; i < iterations; i++ {
		next := make([]float64, n)
		for v := range next {
			next[v] = (1.0 - DAMPINGFACTOR) / float64(n)
		}
		for u := uint64(0); u < n; u++ {
			deg := g.Degree(u, graph.OUT)
			g.ForEachNeighbor(u, graph.OUT, func(v uint64) bool {
				next[v] += DAMPINGFACTOR * rank[u] / float64(deg)
				return true
			})
		}
		rank = next
	}
	return rank
}

func TestSyncStatic(t *testing.T) {
	g, err := graph.LoadEdgeList("../../data/test.txt", false)
	require.NoError(t, err)
	want := powerIteration(g, 29)

	for tCount := 0; tCount < 10; tCount++ {
		for _, reducer := range []framework.Reducer{nil, framework.SumReducer{}} {
			opts := framework.DefaultOptions()
			opts.MaxIterations = 30
			opts.Concurrency = rand.Intn(8-1) + 1
			opts.MinBatchSize = 1
			opts.Reducer = reducer
			res, err := framework.Run(context.Background(), g, new(PageRank), opts)
			require.NoError(t, err)

			assert.Equal(t, framework.ITERATION_LIMIT, res.Status)
			assert.Equal(t, 30, res.Supersteps)
			got := res.Values.ToSlice()
			assert.InDelta(t, 1.0, utils.Sum(got), 1e-9, "no sinks, so no mass is lost")
			assert.InDeltaSlice(t, want, got, 1e-12, "summation order follows arrival order")
		}
	}
}

func TestUniformCycle(t *testing.T) {
	b := graph.NewBuilder()
	b.AddEdge(0, 1)
	b.AddEdge(1, 2)
	b.AddEdge(2, 0)
	g := b.Build(false)

	opts := framework.DefaultOptions()
	opts.MaxIterations = 5
	opts.Concurrency = 2
	opts.MinBatchSize = 1
	opts.Reducer = framework.SumReducer{}
	res, err := framework.Run(context.Background(), g, new(PageRank), opts)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, res.Values.ToSlice(), 1e-15)
}
