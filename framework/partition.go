package framework

import (
	"github.com/ScottSallinen/superstep/utils"
)

// Half-open range of node ids [Start, End).
type Batch struct {
	Start uint64
	End   uint64
}

func (b Batch) Len() uint64 {
	return b.End - b.Start
}

// Splits [0, nodeCount) into consecutive batches of max(minBatchSize, ceil(nodeCount/concurrency))
// nodes; the last batch may be shorter. Deterministic for the same inputs.
func Partition(nodeCount uint64, concurrency int, minBatchSize int) []Batch {
	if nodeCount == 0 {
		return nil
	}
	size := utils.CeilDiv(nodeCount, uint64(utils.Max(concurrency, 1)))
	size = utils.Max(size, uint64(utils.Max(minBatchSize, 1)))

	batches := make([]Batch, 0, utils.CeilDiv(nodeCount, size))
	for start := uint64(0); start < nodeCount; start += size {
		batches = append(batches, Batch{Start: start, End: utils.Min(start+size, nodeCount)})
	}
	return batches
}
