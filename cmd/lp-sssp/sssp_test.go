package main

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
)

var expected = []float64{0, 3, 1, 4, 7, math.Inf(1)}

func loadWeighted(t *testing.T) *graph.Graph {
	g, err := graph.LoadEdgeList("../../data/test_weighted.txt", false)
	require.NoError(t, err)
	require.True(t, g.IsWeighted())
	return g
}

func run(t *testing.T, g *graph.Graph, d framework.Discipline, reducer framework.Reducer) *framework.Result {
	opts := framework.DefaultOptions()
	opts.Concurrency = rand.Intn(8-1) + 1
	opts.MinBatchSize = 1
	opts.MaxIterations = 1000
	opts.Discipline = d
	opts.Reducer = reducer
	source, ok := g.InternalId(0)
	require.True(t, ok)
	res, err := framework.Run(context.Background(), g, &SSSP{Source: source}, opts)
	require.NoError(t, err)
	require.True(t, res.Converged())
	require.NoError(t, CheckCorrectness(g, source, res))
	return res
}

func TestDistances(t *testing.T) {
	g := loadWeighted(t)
	for tCount := 0; tCount < 5; tCount++ {
		for _, d := range []framework.Discipline{framework.SYNC, framework.ASYNC} {
			for _, r := range []framework.Reducer{nil, framework.MinReducer{}} {
				res := run(t, g, d, r)
				for raw, want := range expected {
					node, _ := g.InternalId(uint64(raw))
					got, _ := res.Values.Get(node)
					assert.Equal(t, want, got, "raw %d discipline %s reducer %T", raw, d, r)
				}
			}
		}
	}
}

func TestSyncSuperstepsFollowHops(t *testing.T) {
	g := loadWeighted(t)
	res := run(t, g, framework.SYNC, framework.MinReducer{})
	// Deepest improvement is 0->2->1->3->4 (four hops), then one quiet superstep.
	assert.Equal(t, 5, res.Supersteps)
}

func TestRepeatedEdgeUsesLightest(t *testing.T) {
	b := graph.NewBuilder()
	b.AddWeightedEdge(0, 1, 5)
	b.AddWeightedEdge(0, 1, 1)
	b.AddWeightedEdge(1, 2, 1)
	b.AddWeightedEdge(0, 2, 4)
	g := b.Build(false)
	for _, d := range []framework.Discipline{framework.SYNC, framework.ASYNC} {
		for _, r := range []framework.Reducer{nil, framework.MinReducer{}} {
			res := run(t, g, d, r)
			for raw, want := range []float64{0, 1, 2} {
				node, _ := g.InternalId(uint64(raw))
				got, _ := res.Values.Get(node)
				assert.Equal(t, want, got, "raw %d discipline %s reducer %T", raw, d, r)
			}
		}
	}
}

func TestCheckCorrectnessRejects(t *testing.T) {
	g := loadWeighted(t)
	res := run(t, g, framework.SYNC, nil)
	require.NoError(t, res.Values.Set(4, 100))
	assert.ErrorIs(t, CheckCorrectness(g, 0, res), ErrNotRelaxed)
	require.NoError(t, res.Values.Set(0, 1))
	assert.ErrorIs(t, CheckCorrectness(g, 0, res), ErrNotRelaxed)
}

func TestRandomGraphAgainstDijkstra(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := graph.NewBuilder()
	const n = 200
	for v := uint64(0); v < n; v++ {
		b.AddNode(v)
	}
	for i := 0; i < 800; i++ {
		b.AddWeightedEdge(uint64(rng.Intn(n)), uint64(rng.Intn(n)), float64(rng.Intn(10)+1))
	}
	g := b.Build(false)
	res := run(t, g, framework.ASYNC, framework.MinReducer{})
	assert.Equal(t, dijkstra(g, 0), res.Values.ToSlice())
}

// Quadratic Dijkstra; fine for test sizes.
func dijkstra(g *graph.Graph, source uint64) []float64 {
	n := g.NodeCount()
	dist := make([]float64, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0
	for {
		u, best := uint64(0), math.Inf(1)
		for v := uint64(0); v < n; v++ {
			if !done[v] && dist[v] < best {
				u, best = v, dist[v]
			}
		}
		if math.IsInf(best, 1) {
			return dist
		}
		done[u] = true
		g.ForEachNeighbor(u, graph.OUT, func(v uint64) bool {
			w, _ := g.RelationshipWeight(u, v)
			dist[v] = math.Min(dist[v], best+w)
			return true
		})
	}
}
