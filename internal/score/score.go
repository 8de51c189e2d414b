// Package score computes the Echo Score, the composite [0,100] measure of
// how a user engages with opposing viewpoints. Five weighted components are
// each computed independently and each falls back to a defined neutral value
// when its window holds too little data, so a score is always answerable.
package score

import (
	"fmt"
	"math"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/stats"
)

// Config carries the component weights and window sizes. Weights must sum
// to 1.0; Validate enforces it at startup.
type Config struct {
	DiversityWeight   float64
	AccuracyWeight    float64
	SwitchSpeedWeight float64
	ConsistencyWeight float64
	ImprovementWeight float64

	// DiversityWindowDays bounds the content lookback.
	DiversityWindowDays int
	// SubmissionWindowDays bounds the accuracy, switch-speed and improvement
	// lookbacks.
	SubmissionWindowDays int
	// ConsistencyWindowDays is the span the active-day fraction is taken over.
	ConsistencyWindowDays int
	// ImprovementMinSamples is the response count under which the trend
	// component stays neutral.
	ImprovementMinSamples int

	// SwitchFloorSeconds and SwitchCeilingSeconds bound the response-time
	// range that maps onto [100,0].
	SwitchFloorSeconds   float64
	SwitchCeilingSeconds float64

	// NeutralScore is returned by components with insufficient data.
	NeutralScore float64
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() Config {
	return Config{
		DiversityWeight:       0.25,
		AccuracyWeight:        0.25,
		SwitchSpeedWeight:     0.20,
		ConsistencyWeight:     0.15,
		ImprovementWeight:     0.15,
		DiversityWindowDays:   7,
		SubmissionWindowDays:  30,
		ConsistencyWindowDays: 14,
		ImprovementMinSamples: 5,
		SwitchFloorSeconds:    30,
		SwitchCeilingSeconds:  300,
		NeutralScore:          50,
	}
}

// Validate rejects weight sets that do not sum to 1.0 and degenerate
// switch-speed bounds.
func (c Config) Validate() error {
	sum := c.DiversityWeight + c.AccuracyWeight + c.SwitchSpeedWeight + c.ConsistencyWeight + c.ImprovementWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("echo score weights sum to %.4f, want 1.0", sum)
	}
	if c.SwitchCeilingSeconds <= c.SwitchFloorSeconds {
		return fmt.Errorf("switch speed ceiling %.0fs must exceed floor %.0fs",
			c.SwitchCeilingSeconds, c.SwitchFloorSeconds)
	}
	if c.ConsistencyWindowDays <= 0 {
		return fmt.Errorf("consistency window must be positive, got %d", c.ConsistencyWindowDays)
	}
	return nil
}

// Response is one graded submission inside the scoring window, ordered
// oldest first.
type Response struct {
	Type             models.ChallengeType
	Correct          bool
	TimeSpentSeconds int
}

// Inputs collects the histories the calculator reads. The caller owns
// fetching and windowing; everything here is already filtered to the
// configured lookbacks.
type Inputs struct {
	// BiasRatings holds the rating of each content item consumed in the
	// diversity window.
	BiasRatings []float64
	// Submissions holds the responses in the submission window, oldest first.
	Submissions []Response
	// ActiveDays counts distinct calendar days with any recorded activity
	// inside the consistency window.
	ActiveDays int
}

// Components is the five-part score breakdown, each value in [0,100].
type Components struct {
	Diversity   float64 `json:"diversity"`
	Accuracy    float64 `json:"accuracy"`
	SwitchSpeed float64 `json:"switchSpeed"`
	Consistency float64 `json:"consistency"`
	Improvement float64 `json:"improvement"`
}

// Summary reports the inputs a score was derived from, for the API response
// and for debugging surprising scores.
type Summary struct {
	ContentViews        int     `json:"contentViews"`
	Submissions         int     `json:"submissions"`
	CorrectRate         float64 `json:"correctRate"`
	SwitchResponses     int     `json:"switchResponses"`
	MedianSwitchSeconds float64 `json:"medianSwitchSeconds"`
	ActiveDays          int     `json:"activeDays"`
	WindowDays          int     `json:"windowDays"`
}

// Result is a computed Echo Score.
type Result struct {
	Total      float64    `json:"total"`
	Components Components `json:"components"`
	Summary    Summary    `json:"summary"`
}

// Calculator computes Echo Scores from prepared inputs. It is stateless and
// safe for concurrent use.
type Calculator struct {
	cfg Config
}

// New returns a Calculator with the given config.
func New(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute derives the five components and their weighted composite. The
// composite is rounded to two decimals; with valid weights and clamped
// components it always lands in [0,100].
func (c *Calculator) Compute(in Inputs) Result {
	switchTimes := switchResponseTimes(in.Submissions)

	comp := Components{
		Diversity:   c.diversity(in.BiasRatings),
		Accuracy:    c.accuracy(in.Submissions),
		SwitchSpeed: c.switchSpeed(switchTimes),
		Consistency: c.consistency(in.ActiveDays),
		Improvement: c.improvement(in.Submissions),
	}

	total := c.cfg.DiversityWeight*comp.Diversity +
		c.cfg.AccuracyWeight*comp.Accuracy +
		c.cfg.SwitchSpeedWeight*comp.SwitchSpeed +
		c.cfg.ConsistencyWeight*comp.Consistency +
		c.cfg.ImprovementWeight*comp.Improvement

	comp.Diversity = stats.Round2(comp.Diversity)
	comp.Accuracy = stats.Round2(comp.Accuracy)
	comp.SwitchSpeed = stats.Round2(comp.SwitchSpeed)
	comp.Consistency = stats.Round2(comp.Consistency)
	comp.Improvement = stats.Round2(comp.Improvement)

	correctRate := 0.0
	if n := len(in.Submissions); n > 0 {
		correctRate = float64(countCorrect(in.Submissions)) / float64(n)
	}

	return Result{
		Total:      stats.Round2(total),
		Components: comp,
		Summary: Summary{
			ContentViews:        len(in.BiasRatings),
			Submissions:         len(in.Submissions),
			CorrectRate:         stats.Round2(correctRate),
			SwitchResponses:     len(switchTimes),
			MedianSwitchSeconds: stats.Median(switchTimes),
			ActiveDays:          in.ActiveDays,
			WindowDays:          c.cfg.SubmissionWindowDays,
		},
	}
}

// diversity measures dispersion of consumed bias ratings. A reader stuck in
// one corner of the spectrum scores 0 regardless of volume.
func (c *Calculator) diversity(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	return stats.Clamp(stats.Gini(ratings)*100, 0, 100)
}

// accuracy is the percent of correct submissions in the window.
func (c *Calculator) accuracy(responses []Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	return float64(countCorrect(responses)) / float64(len(responses)) * 100
}

// switchSpeed maps the median response time on perspective-switching
// challenges onto [floor, ceiling] seconds, faster scoring higher.
func (c *Calculator) switchSpeed(times []float64) float64 {
	if len(times) == 0 {
		return c.cfg.NeutralScore
	}
	clamped := stats.Clamp(stats.Median(times), c.cfg.SwitchFloorSeconds, c.cfg.SwitchCeilingSeconds)
	return (c.cfg.SwitchCeilingSeconds - clamped) / (c.cfg.SwitchCeilingSeconds - c.cfg.SwitchFloorSeconds) * 100
}

// consistency is the fraction of window days with at least one activity.
func (c *Calculator) consistency(activeDays int) float64 {
	return stats.Clamp(float64(activeDays)/float64(c.cfg.ConsistencyWindowDays)*100, 0, 100)
}

// improvement rescales the combined trend slopes of accuracy and inverse
// response time to center at the neutral score. Sequences shorter than the
// minimum sample count have no trustworthy trend and stay neutral.
func (c *Calculator) improvement(responses []Response) float64 {
	if len(responses) < c.cfg.ImprovementMinSamples {
		return c.cfg.NeutralScore
	}

	acc := make([]float64, len(responses))
	speed := make([]float64, len(responses))
	for i, r := range responses {
		if r.Correct {
			acc[i] = 1
		}
		secs := float64(r.TimeSpentSeconds)
		if secs < 1 {
			secs = 1
		}
		speed[i] = 1 / secs
	}

	combined := stats.TrendSlope(acc) + stats.TrendSlope(speed)
	return stats.Clamp(c.cfg.NeutralScore+25*combined, 0, 100)
}

// perspectiveSwitching reports whether a challenge type exercises switching
// between viewpoints. Bias swaps and counter arguments do; the rest train
// other skills.
func perspectiveSwitching(t models.ChallengeType) bool {
	return t == models.TypeBiasSwap || t == models.TypeCounterArgument
}

func switchResponseTimes(responses []Response) []float64 {
	times := make([]float64, 0, len(responses))
	for _, r := range responses {
		if perspectiveSwitching(r.Type) {
			times = append(times, float64(r.TimeSpentSeconds))
		}
	}
	return times
}

func countCorrect(responses []Response) int {
	n := 0
	for _, r := range responses {
		if r.Correct {
			n++
		}
	}
	return n
}
