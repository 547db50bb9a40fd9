package graph

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/utils"
)

// Immutable compressed sparse row graph. Out and in adjacency are both materialized,
// so IN and BOTH enumeration are as cheap as OUT.
type Graph struct {
	outOffsets []uint64 // len = NodeCount()+1
	outTargets []uint64
	outWeights []float64 // nil when unweighted
	inOffsets  []uint64
	inTargets  []uint64
	inWeights  []float64
	rawIds     []uint64 // Internal -> raw (external) id.
	rawToInt   map[uint64]uint64
	undirected bool
}

var _ View = (*Graph)(nil)
var _ Weighted = (*Graph)(nil)

func (g *Graph) NodeCount() uint64 {
	return uint64(len(g.rawIds))
}

func (g *Graph) EdgeCount() uint64 {
	return uint64(len(g.outTargets))
}

func (g *Graph) IsWeighted() bool {
	return g.outWeights != nil
}

func (g *Graph) IsUndirected() bool {
	return g.undirected
}

// Raw (external) id of an internal node id.
func (g *Graph) RawId(node uint64) uint64 {
	return g.rawIds[node]
}

// Internal id for a raw id.
func (g *Graph) InternalId(raw uint64) (uint64, bool) {
	id, ok := g.rawToInt[raw]
	return id, ok
}

func (g *Graph) adjacency(dir Direction) (offsets []uint64, targets []uint64, weights []float64) {
	if dir == IN {
		return g.inOffsets, g.inTargets, g.inWeights
	}
	return g.outOffsets, g.outTargets, g.outWeights
}

func (g *Graph) Degree(node uint64, dir Direction) uint64 {
	switch dir {
	case OUT:
		return g.outOffsets[node+1] - g.outOffsets[node]
	case IN:
		return g.inOffsets[node+1] - g.inOffsets[node]
	}
	return g.Degree(node, OUT) + g.Degree(node, IN)
}

func (g *Graph) ForEachNeighbor(node uint64, dir Direction, visit func(target uint64) bool) {
	if dir == BOTH {
		cont := true
		g.ForEachNeighbor(node, OUT, func(t uint64) bool {
			cont = visit(t)
			return cont
		})
		if cont {
			g.ForEachNeighbor(node, IN, visit)
		}
		return
	}
	offsets, targets, _ := g.adjacency(dir)
	for _, t := range targets[offsets[node]:offsets[node+1]] {
		if !visit(t) {
			return
		}
	}
}

// Neighbour lists are sorted by target, so lookup is a binary search over the out list.
// Parallel edges report the smallest weight.
func (g *Graph) RelationshipWeight(source, target uint64) (float64, bool) {
	if source >= g.NodeCount() {
		return 0, false
	}
	lo, hi := g.outOffsets[source], g.outOffsets[source+1]
	targets := g.outTargets[lo:hi]
	i := sort.Search(len(targets), func(i int) bool { return targets[i] >= target })
	if i == len(targets) || targets[i] != target {
		return 0, false
	}
	if g.outWeights == nil {
		return 1.0, true
	}
	w := g.outWeights[lo+uint64(i)]
	for j := i + 1; j < len(targets) && targets[j] == target; j++ {
		w = min(w, g.outWeights[lo+uint64(j)])
	}
	return w, true
}

// Logs basic structural statistics.
func (g *Graph) ComputeGraphStats() {
	n := g.NodeCount()
	numSinks := uint64(0)
	numIsolated := uint64(0)
	maxOut, maxIn := uint64(0), uint64(0)
	outDegrees := make([]uint64, n)
	inDegrees := make([]uint64, n)
	for v := uint64(0); v < n; v++ {
		outDegrees[v] = g.Degree(v, OUT)
		inDegrees[v] = g.Degree(v, IN)
		if outDegrees[v] == 0 {
			numSinks++
			if inDegrees[v] == 0 {
				numIsolated++
			}
		}
		maxOut = utils.Max(maxOut, outDegrees[v])
		maxIn = utils.Max(maxIn, inDegrees[v])
	}

	log.Info().Msg("----GraphStats----")
	log.Info().Msg("Vertices: " + utils.V(n) + " Edges: " + utils.V(g.EdgeCount()) + " Weighted: " + utils.V(g.IsWeighted()))
	if n > 0 {
		log.Info().Msg("Sinks: " + utils.V(numSinks) + " pct: " + utils.F("%.3f", float64(numSinks)*100.0/float64(n)) + " Isolated: " + utils.V(numIsolated))
		log.Info().Msg("MaxOutDeg: " + utils.V(maxOut) + " MedianOutDeg: " + utils.V(utils.Median(outDegrees)))
		log.Info().Msg("MaxInDeg: " + utils.V(maxIn) + " MedianInDeg: " + utils.V(utils.Median(inDegrees)))
	}
	log.Info().Msg("----EndStats----")
}
