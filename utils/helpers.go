package utils

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
)

// An imprecise float approximate comparison. "optional" variance with ... args strategy
func FloatEquals(a float64, b float64, inputVariance ...float64) bool {
	variance := 0.001
	if len(inputVariance) >= 1 {
		variance = inputVariance[0]
	}
	return math.Abs(a-b) < variance
}

// Integer division rounding up. d must be non-zero.
func CeilDiv[T constraints.Unsigned](n, d T) T {
	if n == 0 {
		return 0
	}
	return 1 + (n-1)/d
}

func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}
	return x
}

func Min[T constraints.Ordered](x, y T) T {
	if y < x {
		return y
	}
	return x
}

func Sum[T constraints.Integer | constraints.Float](slice []T) (sum T) {
	for i := range slice {
		sum += slice[i]
	}
	return sum
}

func Median[T constraints.Integer | constraints.Float](n []T) T {
	return Percentile(n, 50)
}

func Percentile[T constraints.Integer | constraints.Float](n []T, percentile int) T {
	if len(n) == 0 {
		log.Warn().Msg("WARNING: Percentile called on empty slice")
		return 0
	}
	if len(n) == 1 {
		return n[0]
	}

	copyN := make([]T, len(n))
	copy(copyN, n)
	sort.Slice(copyN, func(i, j int) bool { return copyN[i] < copyN[j] })

	idx := int(((float64(percentile) / 100.0) * float64(len(copyN))))
	if idx >= len(copyN) {
		idx = len(copyN) - 1
	}
	if len(copyN)%2 == 0 || idx == 0 || copyN[idx-1] == copyN[idx] {
		return copyN[idx]
	}
	return (copyN[idx-1] + copyN[idx]) / 2
}

func Shuffle[T any](slice []T) {
	for i := range slice {
		j := rand.Intn(i + 1)
		slice[i], slice[j] = slice[j], slice[i]
	}
}

// Compares two arrays: showcases average and L1 differences.
// Returns: Average L1 diff, 50th percentile L1 diff, largest L1 diff.
// Infinite entries that match (e.g. unreachable in both) count as no difference.
func ResultCompare[T constraints.Float | constraints.Integer](a []T, b []T) (avgL1Diff float64, medianL1Diff float64, largestL1Diff float64) {
	if len(a) == 0 || len(a) != len(b) {
		return
	}
	listL1Diff := make([]float64, len(a))

	for i := range a {
		if a[i] == b[i] {
			continue
		}
		l1delta := math.Abs(float64(b[i]) - float64(a[i]))
		listL1Diff[i] = l1delta
		avgL1Diff += l1delta
		largestL1Diff = Max(largestL1Diff, l1delta)
	}
	avgL1Diff = avgL1Diff / float64(len(a))
	medianL1Diff = Median(listL1Diff)

	return avgL1Diff, medianL1Diff, largestL1Diff
}
