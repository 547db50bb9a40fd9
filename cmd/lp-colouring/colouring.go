package main

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

// Greedy colouring in priority order. A node picks the smallest colour not used by any
// neighbour with priority over it, once each of those has sent its colour; it then sends its
// own colour to the neighbours waiting on it. Colours only travel in messages, so the result
// does not depend on scheduling. Messages must not be combined by a reducer.
type Colouring struct {
	G        graph.View  // Neighbour degrees; never written.
	received [][]float64 // Colours heard so far, per node. A slot is only touched by its own node.
}

func NewColouring(g graph.View) *Colouring {
	return &Colouring{G: g, received: make([][]float64, g.NodeCount())}
}

const EMPTY_VAL = -1.0

var ErrBadColouring = errors.New("invalid colouring")

// Returns true if p1 has priority over p2. Higher degree first, then smaller id.
func comparePriority(deg1, deg2 uint64, id1, id2 uint64) bool {
	return deg1 > deg2 || (deg1 == deg2 && id1 < id2)
}

func (alg *Colouring) Compute(nc *framework.NodeContext, node uint64, messages []float64) error {
	if nc.IsInitialSuperstep() {
		nc.SetValue(EMPTY_VAL)
	}
	nc.VoteToHalt() // Each priority neighbour's colour wakes us.
	if nc.Value() != EMPTY_VAL {
		return nil
	}
	alg.received[node] = append(alg.received[node], messages...)

	myDeg := nc.Degree()
	waitingOn := 0
	nc.ForEachNeighbor(func(target uint64) bool {
		if target != node && comparePriority(alg.G.Degree(target, nc.Direction()), myDeg, target, node) {
			waitingOn++
		}
		return true
	})
	if len(alg.received[node]) < waitingOn {
		return nil
	}

	used := make(map[float64]struct{}, len(alg.received[node]))
	for _, c := range alg.received[node] {
		used[c] = struct{}{}
	}
	alg.received[node] = nil

	colour := 0.0
	for {
		if _, ok := used[colour]; !ok {
			break
		}
		colour++
	}
	nc.SetValue(colour)
	nc.ForEachNeighbor(func(target uint64) bool {
		if target != node && comparePriority(myDeg, alg.G.Degree(target, nc.Direction()), node, target) {
			nc.SendTo(target, colour)
		}
		return true
	})
	return nil
}

func (*Colouring) OnFinish(res *framework.Result) error {
	maxColour := EMPTY_VAL
	res.Values.ForEach(func(_ uint64, c float64) {
		maxColour = utils.Max(maxColour, c)
	})
	log.Info().Msg("Colours used: " + utils.V(maxColour+1))
	return nil
}

// Every node coloured, and no edge (other than a self loop) joins two nodes of the same colour.
func CheckCorrectness(g graph.View, res *framework.Result) error {
	var err error
	res.Values.ForEach(func(node uint64, c float64) {
		if err != nil {
			return
		}
		if c == EMPTY_VAL {
			err = errors.Join(ErrBadColouring, errors.New("node "+utils.V(node)+" not coloured"))
			return
		}
		g.ForEachNeighbor(node, graph.BOTH, func(target uint64) bool {
			other, _ := res.Values.Get(target)
			if target != node && other == c {
				err = errors.Join(ErrBadColouring, errors.New("nodes "+utils.V(node)+" and "+utils.V(target)+" share colour "+utils.V(c)))
				return false
			}
			return true
		})
	})
	return err
}
