package stats

// TrendSlope fits an ordinary least-squares line through (i, values[i]) with
// i running 0..n-1 and returns its slope. Fewer than two points have no
// trend and yield 0.
func TrendSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	meanX := float64(n-1) / 2
	meanY := Mean(values)

	num := 0.0
	den := 0.0
	for i, v := range values {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}
