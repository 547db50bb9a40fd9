package framework

import (
	"github.com/ScottSallinen/superstep/utils"
)

// One bit per node; a set bit means the node has voted to halt.
// All nodes start active.
type VoteBitset struct {
	halted *utils.AtomicBitmap
}

func NewVoteBitset(n uint64) *VoteBitset {
	return &VoteBitset{halted: utils.NewAtomicBitmap(n)}
}

func (vb *VoteBitset) IsActive(node uint64) bool {
	return !vb.halted.Get(node)
}

// Idempotent. Returns true if the node was active before.
func (vb *VoteBitset) VoteToHalt(node uint64) bool {
	return !vb.halted.Set(node)
}

// Returns true if the node was halted before.
func (vb *VoteBitset) Reactivate(node uint64) bool {
	return vb.halted.Clear(node)
}

// Only meaningful between supersteps.
func (vb *VoteBitset) ActiveCount() uint64 {
	return vb.halted.Len() - vb.halted.Count()
}
