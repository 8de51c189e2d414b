package stats

import "testing"

func TestTrendSlope_TooFewPoints(t *testing.T) {
	if got := TrendSlope(nil); got != 0 {
		t.Errorf("TrendSlope(nil) = %f, want 0", got)
	}
	if got := TrendSlope([]float64{5}); got != 0 {
		t.Errorf("TrendSlope([5]) = %f, want 0", got)
	}
}

func TestTrendSlope_PerfectAscent(t *testing.T) {
	if got := TrendSlope([]float64{1, 2, 3}); !almostEqual(got, 1.0) {
		t.Errorf("TrendSlope = %f, want 1.0", got)
	}
}

func TestTrendSlope_PerfectDescent(t *testing.T) {
	if got := TrendSlope([]float64{3, 2, 1}); !almostEqual(got, -1.0) {
		t.Errorf("TrendSlope = %f, want -1.0", got)
	}
}

func TestTrendSlope_Flat(t *testing.T) {
	if got := TrendSlope([]float64{2, 2, 2, 2}); !almostEqual(got, 0) {
		t.Errorf("TrendSlope = %f, want 0", got)
	}
}

func TestTrendSlope_Alternating(t *testing.T) {
	// 0,1,0,1: num = 1.0, den = 5.0, slope = 0.2
	if got := TrendSlope([]float64{0, 1, 0, 1}); !almostEqual(got, 0.2) {
		t.Errorf("TrendSlope = %f, want 0.2", got)
	}
}
