// Package selector picks the next challenge for a user. Difficulty adapts
// to recent success, underperforming challenge types pull selection toward
// practice, and a fixed relaxation ladder keeps the picker total: it only
// fails when the active pool itself is empty.
package selector

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

// ErrNoChallengeAvailable means no active challenge exists even after every
// filter has been relaxed.
var ErrNoChallengeAvailable = errors.New("no challenge available")

// Config holds the selection tuning constants. The weak-area bias and rate
// thresholds came out of product experiments; they are configuration, not
// constants baked into the algorithm.
type Config struct {
	// AdvancedRate steps difficulty up when the lifetime success rate
	// exceeds it and the user has been recently active.
	AdvancedRate float64
	// BeginnerRate steps difficulty down when the success rate falls below it.
	BeginnerRate float64
	// MinRecentSubmissions gates the step up: promotions require this many
	// submissions inside the recent window.
	MinRecentSubmissions int
	// WeakAreaRate marks a challenge type as weak when its success rate
	// falls below it.
	WeakAreaRate float64
	// WeakAreaBias is the probability a selection is steered to the weak type.
	WeakAreaBias float64
	// RecentWindowDays bounds both the repeat-exclusion lookback and the
	// recency gate.
	RecentWindowDays int
}

// DefaultConfig returns the production selection parameters.
func DefaultConfig() Config {
	return Config{
		AdvancedRate:         0.8,
		BeginnerRate:         0.4,
		MinRecentSubmissions: 3,
		WeakAreaRate:         0.6,
		WeakAreaBias:         0.6,
		RecentWindowDays:     7,
	}
}

// Selector holds the tuning config and the randomness source. Inject a
// seeded source in tests for reproducible picks. Draws from rng serialize on
// an internal mutex, so one Selector serves concurrent requests.
type Selector struct {
	cfg Config
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Selector using rng for the weak-area coin flip and the
// uniform candidate pick.
func New(cfg Config, rng *rand.Rand) *Selector {
	return &Selector{cfg: cfg, rng: rng}
}

func (s *Selector) coin() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Selector) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Inputs collects everything Decide reads. Stats may be nil for a user with
// no aggregate row yet; RecentChallengeIDs holds the challenge ids attempted
// inside the recent window.
type Inputs struct {
	Stats              *models.UserChallengeStats
	RecentCount        int
	RecentChallengeIDs map[uint]bool
	Pool               []models.Challenge
}

// Decision is the selector's verdict before persistence.
type Decision struct {
	Challenge            *models.Challenge
	Reason               models.SelectionReason
	TargetDifficulty     models.Difficulty
	DifficultyAdjustment int
}

// TargetDifficulty maps lifetime success onto a tier. Users with no history
// start at beginner. Promotion to advanced needs both a high success rate
// and enough recent submissions to trust it; demotion needs only the low
// rate. The returned adjustment is -1, 0 or +1.
func (s *Selector) TargetDifficulty(st *models.UserChallengeStats, recentCount int) (models.Difficulty, int) {
	if st == nil || st.TotalCompleted == 0 {
		return models.DifficultyBeginner, 0
	}
	rate := st.SuccessRate()
	switch {
	case rate > s.cfg.AdvancedRate && recentCount >= s.cfg.MinRecentSubmissions:
		return models.DifficultyAdvanced, 1
	case rate < s.cfg.BeginnerRate:
		return models.DifficultyBeginner, -1
	default:
		return models.DifficultyIntermediate, 0
	}
}

// WeakArea returns the challenge type with the lowest success rate among
// types the user has completed at least once, provided that rate is under
// the weak-area threshold. Ties resolve in catalog order so the result is
// deterministic.
func (s *Selector) WeakArea(byType map[models.ChallengeType]models.BucketStat) (models.ChallengeType, bool) {
	var weakest models.ChallengeType
	lowest := 0.0
	found := false
	for _, t := range models.ChallengeTypes {
		b, ok := byType[t]
		if !ok || b.Completed == 0 {
			continue
		}
		rate := b.SuccessRate()
		if !found || rate < lowest {
			weakest, lowest, found = t, rate, true
		}
	}
	if !found || lowest >= s.cfg.WeakAreaRate {
		return "", false
	}
	return weakest, true
}

// Decide picks one challenge. Candidates are the active pool minus recent
// attempts, narrowed to the weak type (probabilistically) and the target
// difficulty. When a narrowing leaves nothing, filters relax in a fixed
// order until a candidate appears:
//
//	1. drop the weak-type restriction
//	2. drop the difficulty restriction
//	3. drop the recent-attempt exclusion
//
// Only an empty active pool yields ErrNoChallengeAvailable.
func (s *Selector) Decide(in Inputs) (Decision, error) {
	if len(in.Pool) == 0 {
		return Decision{}, ErrNoChallengeAvailable
	}

	tier, adjustment := s.TargetDifficulty(in.Stats, in.RecentCount)

	var weakType models.ChallengeType
	haveWeak := false
	if in.Stats != nil {
		byType, err := in.Stats.TypeBreakdown()
		if err != nil {
			return Decision{}, err
		}
		weakType, haveWeak = s.WeakArea(byType)
	}
	steerWeak := haveWeak && s.coin() < s.cfg.WeakAreaBias

	fresh := make([]models.Challenge, 0, len(in.Pool))
	for _, ch := range in.Pool {
		if !in.RecentChallengeIDs[ch.ID] {
			fresh = append(fresh, ch)
		}
	}

	levels := []struct {
		pool   []models.Challenge
		byType bool
		byTier bool
	}{
		{fresh, steerWeak, true},
		{fresh, false, true},
		{fresh, false, false},
		{in.Pool, false, false},
	}

	for _, lvl := range levels {
		candidates := narrow(lvl.pool, weakType, lvl.byType, tier, lvl.byTier)
		if len(candidates) == 0 {
			continue
		}
		pick := candidates[s.pick(len(candidates))]
		reason := models.ReasonAdaptiveDifficulty
		if lvl.byType {
			reason = models.WeakAreaReason(weakType)
		}
		return Decision{
			Challenge:            &pick,
			Reason:               reason,
			TargetDifficulty:     tier,
			DifficultyAdjustment: adjustment,
		}, nil
	}
	return Decision{}, ErrNoChallengeAvailable
}

func narrow(pool []models.Challenge, typ models.ChallengeType, byType bool, tier models.Difficulty, byTier bool) []models.Challenge {
	out := make([]models.Challenge, 0, len(pool))
	for _, ch := range pool {
		if byType && ch.Type != typ {
			continue
		}
		if byTier && ch.Difficulty != tier {
			continue
		}
		out = append(out, ch)
	}
	return out
}
