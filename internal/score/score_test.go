package score

import (
	"math"
	"strings"
	"testing"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

const epsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.DiversityWeight = 0.5
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "sum") {
		t.Errorf("weights summing to 1.25 passed validation: %v", err)
	}

	bad = DefaultConfig()
	bad.SwitchCeilingSeconds = 30
	if err := bad.Validate(); err == nil {
		t.Error("ceiling equal to floor passed validation")
	}

	bad = DefaultConfig()
	bad.ConsistencyWindowDays = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero consistency window passed validation")
	}
}

func TestDiversity(t *testing.T) {
	c := New(DefaultConfig())

	if got := c.diversity(nil); got != 0 {
		t.Errorf("diversity(no activity) = %f, want 0", got)
	}

	// Same outlet every day: zero dispersion no matter the volume.
	if got := c.diversity([]float64{2, 2, 2, 2, 2}); !almostEqual(got, 0) {
		t.Errorf("diversity(uniform) = %f, want 0", got)
	}

	// Gini of 1,2,3,4 is 0.25, scaled to 25.
	if got := c.diversity([]float64{1, 2, 3, 4}); !almostEqual(got, 25) {
		t.Errorf("diversity = %f, want 25", got)
	}
}

func TestAccuracy(t *testing.T) {
	c := New(DefaultConfig())

	if got := c.accuracy(nil); got != 0 {
		t.Errorf("accuracy(none) = %f, want 0", got)
	}

	responses := []Response{
		{Correct: true}, {Correct: true}, {Correct: true}, {Correct: false},
	}
	if got := c.accuracy(responses); !almostEqual(got, 75) {
		t.Errorf("accuracy = %f, want 75", got)
	}
}

func TestSwitchSpeed_NeutralWithoutData(t *testing.T) {
	c := New(DefaultConfig())
	if got := c.switchSpeed(nil); got != 50 {
		t.Errorf("switchSpeed(none) = %f, want neutral 50", got)
	}
}

func TestSwitchSpeed_Mapping(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		median float64
		want   float64
	}{
		{30, 100},  // at the floor
		{300, 0},   // at the ceiling
		{165, 50},  // midpoint
		{10, 100},  // clamped up to the floor
		{400, 0},   // clamped down to the ceiling
	}
	for _, tc := range tests {
		if got := c.switchSpeed([]float64{tc.median}); !almostEqual(got, tc.want) {
			t.Errorf("switchSpeed(median %0.fs) = %f, want %f", tc.median, got, tc.want)
		}
	}
}

func TestSwitchSpeed_OnlySwitchingTypesCount(t *testing.T) {
	c := New(DefaultConfig())
	in := Inputs{
		Submissions: []Response{
			{Type: models.TypeBiasSwap, Correct: true, TimeSpentSeconds: 30},
			{Type: models.TypeLogicPuzzle, Correct: true, TimeSpentSeconds: 300},
			{Type: models.TypeDataLiteracy, Correct: true, TimeSpentSeconds: 300},
		},
	}
	res := c.Compute(in)
	if !almostEqual(res.Components.SwitchSpeed, 100) {
		t.Errorf("SwitchSpeed = %f, want 100 (slow non-switching responses must not count)",
			res.Components.SwitchSpeed)
	}
	if res.Summary.SwitchResponses != 1 {
		t.Errorf("SwitchResponses = %d, want 1", res.Summary.SwitchResponses)
	}
}

func TestConsistency(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		days int
		want float64
	}{
		{0, 0},
		{7, 50},
		{14, 100},
		{20, 100}, // clamped
	}
	for _, tc := range tests {
		if got := c.consistency(tc.days); !almostEqual(got, tc.want) {
			t.Errorf("consistency(%d) = %f, want %f", tc.days, got, tc.want)
		}
	}
}

func TestImprovement_NeutralUnderMinSamples(t *testing.T) {
	c := New(DefaultConfig())
	responses := []Response{
		{Correct: true, TimeSpentSeconds: 60},
		{Correct: true, TimeSpentSeconds: 50},
		{Correct: true, TimeSpentSeconds: 40},
		{Correct: true, TimeSpentSeconds: 30},
	}
	if got := c.improvement(responses); got != 50 {
		t.Errorf("improvement(4 samples) = %f, want neutral 50", got)
	}
}

func TestImprovement_RisingAccuracy(t *testing.T) {
	c := New(DefaultConfig())
	// Accuracy 0,0,1,1,1 has slope 0.3; constant times contribute no speed
	// trend. 50 + 25*0.3 = 57.5.
	responses := []Response{
		{Correct: false, TimeSpentSeconds: 10},
		{Correct: false, TimeSpentSeconds: 10},
		{Correct: true, TimeSpentSeconds: 10},
		{Correct: true, TimeSpentSeconds: 10},
		{Correct: true, TimeSpentSeconds: 10},
	}
	if got := c.improvement(responses); !almostEqual(got, 57.5) {
		t.Errorf("improvement = %f, want 57.5", got)
	}
}

func TestImprovement_DecliningAccuracy(t *testing.T) {
	c := New(DefaultConfig())
	responses := []Response{
		{Correct: true, TimeSpentSeconds: 10},
		{Correct: true, TimeSpentSeconds: 10},
		{Correct: false, TimeSpentSeconds: 10},
		{Correct: false, TimeSpentSeconds: 10},
		{Correct: false, TimeSpentSeconds: 10},
	}
	if got := c.improvement(responses); !almostEqual(got, 42.5) {
		t.Errorf("improvement = %f, want 42.5", got)
	}
}

func TestImprovement_ZeroSecondResponses(t *testing.T) {
	c := New(DefaultConfig())
	// Zero-second times floor to one second for the inverse; constant speed
	// and constant accuracy leave the component neutral.
	responses := []Response{
		{Correct: true}, {Correct: true}, {Correct: true},
		{Correct: true}, {Correct: true},
	}
	if got := c.improvement(responses); !almostEqual(got, 50) {
		t.Errorf("improvement = %f, want 50", got)
	}
}

func TestCompute_EmptyInputs(t *testing.T) {
	c := New(DefaultConfig())
	res := c.Compute(Inputs{})

	// Neutral switch speed and improvement are the only nonzero components:
	// 0.20*50 + 0.15*50 = 17.5.
	if !almostEqual(res.Total, 17.5) {
		t.Errorf("Total = %f, want 17.5", res.Total)
	}
	if res.Components.Diversity != 0 || res.Components.Accuracy != 0 || res.Components.Consistency != 0 {
		t.Errorf("zero-data components nonzero: %+v", res.Components)
	}
}

func TestCompute_KnownComposite(t *testing.T) {
	c := New(DefaultConfig())
	in := Inputs{
		BiasRatings: []float64{1, 2, 3, 4}, // diversity 25
		Submissions: []Response{            // accuracy 75, no switch data, 4 < min samples
			{Type: models.TypeLogicPuzzle, Correct: true, TimeSpentSeconds: 60},
			{Type: models.TypeSynthesis, Correct: true, TimeSpentSeconds: 60},
			{Type: models.TypeDataLiteracy, Correct: true, TimeSpentSeconds: 60},
			{Type: models.TypeLogicPuzzle, Correct: false, TimeSpentSeconds: 60},
		},
		ActiveDays: 7, // consistency 50
	}
	res := c.Compute(in)

	// 0.25*25 + 0.25*75 + 0.20*50 + 0.15*50 + 0.15*50 = 50.00
	if !almostEqual(res.Total, 50.0) {
		t.Errorf("Total = %f, want 50.0", res.Total)
	}
	if res.Summary.Submissions != 4 || res.Summary.ContentViews != 4 {
		t.Errorf("summary counts wrong: %+v", res.Summary)
	}
	if !almostEqual(res.Summary.CorrectRate, 0.75) {
		t.Errorf("CorrectRate = %f, want 0.75", res.Summary.CorrectRate)
	}
}

func TestCompute_TotalStaysInRange(t *testing.T) {
	c := New(DefaultConfig())

	inputs := []Inputs{
		{},
		{BiasRatings: []float64{-3, 3, -3, 3}, ActiveDays: 14},
		{
			BiasRatings: []float64{0, 0, 0},
			Submissions: []Response{
				{Type: models.TypeBiasSwap, Correct: true, TimeSpentSeconds: 5},
				{Type: models.TypeBiasSwap, Correct: true, TimeSpentSeconds: 5},
				{Type: models.TypeBiasSwap, Correct: true, TimeSpentSeconds: 5},
				{Type: models.TypeBiasSwap, Correct: true, TimeSpentSeconds: 5},
				{Type: models.TypeBiasSwap, Correct: true, TimeSpentSeconds: 5},
			},
			ActiveDays: 30,
		},
	}
	for i, in := range inputs {
		res := c.Compute(in)
		if res.Total < 0 || res.Total > 100 {
			t.Errorf("inputs[%d]: Total = %f, outside [0,100]", i, res.Total)
		}
	}
}
