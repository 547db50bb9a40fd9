package graph

// Direction of adjacency to enumerate.
type Direction uint8

const (
	OUT  Direction = iota // Outgoing edges (source -> target).
	IN                    // Incoming edges (reverse adjacency).
	BOTH                  // Outgoing then incoming.
)

func (d Direction) String() string {
	switch d {
	case OUT:
		return "out"
	case IN:
		return "in"
	case BOTH:
		return "both"
	}
	return "unknown"
}

// Parses "out", "in" or "both".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "out", "":
		return OUT, true
	case "in":
		return IN, true
	case "both":
		return BOTH, true
	}
	return OUT, false
}

// Read-only adjacency access. Node ids are dense, in [0, NodeCount()).
// Implementations must be safe for concurrent readers; the engine never mutates a view.
type View interface {
	NodeCount() uint64
	Degree(node uint64, dir Direction) uint64
	// Visits neighbours of node; stops early if visit returns false.
	ForEachNeighbor(node uint64, dir Direction, visit func(target uint64) bool)
}

// Optional; views with edge weights implement this.
type Weighted interface {
	RelationshipWeight(source, target uint64) (weight float64, ok bool)
}
