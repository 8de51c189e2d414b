package stats

import "sort"

// Gini returns the Gini coefficient of values as a dispersion measure.
// For sorted values v_1..v_n it computes
//
//	sum((2i - n - 1) * v_i) / (n^2 * mean)
//
// which is 0 when every value is identical. An empty slice or a zero mean
// yields 0 rather than an error; callers treat that as "no dispersion".
func Gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	total := 0.0
	weighted := 0.0
	for i, v := range sorted {
		total += v
		weighted += v * float64(2*(i+1)-n-1)
	}
	if total == 0 {
		return 0
	}

	// n^2 * mean == n * total
	return weighted / (float64(n) * total)
}
