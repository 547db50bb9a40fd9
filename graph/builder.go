package graph

import (
	"sort"
)

type edge struct {
	src    uint64
	dst    uint64
	weight float64
}

// Accumulates nodes and edges by raw id, then produces an immutable Graph.
// Internal ids are assigned densely in first-seen order.
type Builder struct {
	rawToInt map[uint64]uint64
	rawIds   []uint64
	edges    []edge
	weighted bool
}

func NewBuilder() *Builder {
	return &Builder{rawToInt: make(map[uint64]uint64)}
}

func (b *Builder) mapping(raw uint64) uint64 {
	if id, ok := b.rawToInt[raw]; ok {
		return id
	}
	id := uint64(len(b.rawIds))
	b.rawToInt[raw] = id
	b.rawIds = append(b.rawIds, raw)
	return id
}

// Declares a node, which may have no edges. Returns its internal id.
func (b *Builder) AddNode(raw uint64) uint64 {
	return b.mapping(raw)
}

func (b *Builder) AddEdge(srcRaw, dstRaw uint64) {
	b.edges = append(b.edges, edge{b.mapping(srcRaw), b.mapping(dstRaw), 1.0})
}

// Adding any weighted edge makes the whole graph weighted; unweighted edges get weight 1.
func (b *Builder) AddWeightedEdge(srcRaw, dstRaw uint64, weight float64) {
	b.weighted = true
	b.edges = append(b.edges, edge{b.mapping(srcRaw), b.mapping(dstRaw), weight})
}

func (b *Builder) NodeCount() uint64 {
	return uint64(len(b.rawIds))
}

// Undirected adds the reverse of every edge, so OUT and IN adjacency are identical.
func (b *Builder) Build(undirected bool) *Graph {
	edges := b.edges
	if undirected {
		edges = make([]edge, 0, 2*len(b.edges))
		for _, e := range b.edges {
			edges = append(edges, e)
			if e.src != e.dst {
				edges = append(edges, edge{e.dst, e.src, e.weight})
			}
		}
	}

	n := uint64(len(b.rawIds))
	g := &Graph{
		rawIds:     append([]uint64(nil), b.rawIds...),
		rawToInt:   make(map[uint64]uint64, len(b.rawToInt)),
		undirected: undirected,
	}
	for k, v := range b.rawToInt {
		g.rawToInt[k] = v
	}
	g.outOffsets, g.outTargets, g.outWeights = toCSR(n, edges, b.weighted, false)
	g.inOffsets, g.inTargets, g.inWeights = toCSR(n, edges, b.weighted, true)
	return g
}

func toCSR(n uint64, edges []edge, weighted bool, reverse bool) (offsets []uint64, targets []uint64, weights []float64) {
	offsets = make([]uint64, n+1)
	for _, e := range edges {
		src := e.src
		if reverse {
			src = e.dst
		}
		offsets[src+1]++
	}
	for i := uint64(0); i < n; i++ {
		offsets[i+1] += offsets[i]
	}

	targets = make([]uint64, len(edges))
	if weighted {
		weights = make([]float64, len(edges))
	}
	fill := make([]uint64, n)
	copy(fill, offsets[:n])
	for _, e := range edges {
		src, dst := e.src, e.dst
		if reverse {
			src, dst = dst, src
		}
		pos := fill[src]
		fill[src]++
		targets[pos] = dst
		if weighted {
			weights[pos] = e.weight
		}
	}

	for v := uint64(0); v < n; v++ {
		sort.Stable(adjacencySorter{targets[offsets[v]:offsets[v+1]], sliceOrNil(weights, offsets[v], offsets[v+1])})
	}
	return offsets, targets, weights
}

func sliceOrNil(w []float64, lo, hi uint64) []float64 {
	if w == nil {
		return nil
	}
	return w[lo:hi]
}

type adjacencySorter struct {
	targets []uint64
	weights []float64
}

func (s adjacencySorter) Len() int           { return len(s.targets) }
func (s adjacencySorter) Less(i, j int) bool { return s.targets[i] < s.targets[j] }
func (s adjacencySorter) Swap(i, j int) {
	s.targets[i], s.targets[j] = s.targets[j], s.targets[i]
	if s.weights != nil {
		s.weights[i], s.weights[j] = s.weights[j], s.weights[i]
	}
}
