package stats

import "testing"

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %f, want 0", got)
	}
	if got := Mean([]float64{1, 2, 3}); !almostEqual(got, 2.0) {
		t.Errorf("Mean = %f, want 2.0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{50, 0, 100, 50},
		{-3, 0, 100, 0},
		{104, 0, 100, 100},
		{30, 30, 300, 30},
		{300, 30, 300, 300},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%f, %f, %f) = %f, want %f", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{72.4567, 72.46},
		{72.454, 72.45},
		{100.0, 100.0},
		{0.005, 0.01},
	}
	for _, tc := range tests {
		if got := Round2(tc.v); !almostEqual(got, tc.want) {
			t.Errorf("Round2(%f) = %f, want %f", tc.v, got, tc.want)
		}
	}
}
