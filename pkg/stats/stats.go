// Package stats provides small order statistics over commit percentages.
package stats

// Percentile returns the nearest-rank p-th percentile of sorted, which
// must be in ascending order. It returns 0 for an empty slice.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// Median returns the middle value of sorted, averaging the two middle
// values when the length is even. It returns 0 for an empty slice.
func Median(sorted []float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case n%2 == 1:
		return sorted[n/2]
	default:
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
}
