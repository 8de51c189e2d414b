package selector

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

func newSelector(cfg Config) *Selector {
	return New(cfg, rand.New(rand.NewSource(42)))
}

func statsWith(completed, correct int, byType map[models.ChallengeType]models.BucketStat) *models.UserChallengeStats {
	st := &models.UserChallengeStats{
		UserID:         1,
		TotalCompleted: completed,
		TotalCorrect:   correct,
	}
	if byType != nil {
		if err := st.SetTypeBreakdown(byType); err != nil {
			panic(err)
		}
	}
	return st
}

func ch(id uint, typ models.ChallengeType, diff models.Difficulty) models.Challenge {
	return models.Challenge{ID: id, Type: typ, Difficulty: diff, IsActive: true}
}

func TestTargetDifficulty(t *testing.T) {
	s := newSelector(DefaultConfig())

	tests := []struct {
		name       string
		stats      *models.UserChallengeStats
		recent     int
		wantTier   models.Difficulty
		wantAdjust int
	}{
		{"no stats row", nil, 0, models.DifficultyBeginner, 0},
		{"zero completed", statsWith(0, 0, nil), 0, models.DifficultyBeginner, 0},
		{"high rate with recent activity", statsWith(10, 9, nil), 3, models.DifficultyAdvanced, 1},
		{"high rate but stale", statsWith(10, 9, nil), 2, models.DifficultyIntermediate, 0},
		{"low rate", statsWith(10, 3, nil), 5, models.DifficultyBeginner, -1},
		{"rate exactly at promotion bound", statsWith(10, 8, nil), 5, models.DifficultyIntermediate, 0},
		{"rate exactly at demotion bound", statsWith(10, 4, nil), 5, models.DifficultyIntermediate, 0},
		{"middling rate", statsWith(10, 6, nil), 5, models.DifficultyIntermediate, 0},
	}
	for _, tc := range tests {
		tier, adjust := s.TargetDifficulty(tc.stats, tc.recent)
		if tier != tc.wantTier || adjust != tc.wantAdjust {
			t.Errorf("%s: TargetDifficulty = (%s, %d), want (%s, %d)",
				tc.name, tier, adjust, tc.wantTier, tc.wantAdjust)
		}
	}
}

func TestWeakArea(t *testing.T) {
	s := newSelector(DefaultConfig())

	t.Run("no completions", func(t *testing.T) {
		if _, ok := s.WeakArea(map[models.ChallengeType]models.BucketStat{}); ok {
			t.Error("empty breakdown produced a weak area")
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		typ, ok := s.WeakArea(map[models.ChallengeType]models.BucketStat{
			models.TypeLogicPuzzle: {Completed: 4, Correct: 2},
		})
		if !ok || typ != models.TypeLogicPuzzle {
			t.Errorf("WeakArea = (%s, %v), want (logic_puzzle, true)", typ, ok)
		}
	})

	t.Run("exactly at threshold is not weak", func(t *testing.T) {
		if _, ok := s.WeakArea(map[models.ChallengeType]models.BucketStat{
			models.TypeLogicPuzzle: {Completed: 5, Correct: 3},
		}); ok {
			t.Error("rate exactly 0.6 counted as weak")
		}
	})

	t.Run("lowest rate wins", func(t *testing.T) {
		typ, ok := s.WeakArea(map[models.ChallengeType]models.BucketStat{
			models.TypeBiasSwap:    {Completed: 4, Correct: 2}, // 0.50
			models.TypeSynthesis:   {Completed: 5, Correct: 1}, // 0.20
			models.TypeLogicPuzzle: {Completed: 8, Correct: 7}, // 0.88
		})
		if !ok || typ != models.TypeSynthesis {
			t.Errorf("WeakArea = (%s, %v), want (synthesis, true)", typ, ok)
		}
	})

	t.Run("unattempted types are ignored", func(t *testing.T) {
		typ, ok := s.WeakArea(map[models.ChallengeType]models.BucketStat{
			models.TypeBiasSwap:  {Completed: 0, Correct: 0},
			models.TypeSynthesis: {Completed: 4, Correct: 1},
		})
		if !ok || typ != models.TypeSynthesis {
			t.Errorf("WeakArea = (%s, %v), want (synthesis, true)", typ, ok)
		}
	})

	t.Run("ties resolve in catalog order", func(t *testing.T) {
		typ, ok := s.WeakArea(map[models.ChallengeType]models.BucketStat{
			models.TypeSynthesis: {Completed: 4, Correct: 1},
			models.TypeBiasSwap:  {Completed: 4, Correct: 1},
		})
		if !ok || typ != models.TypeBiasSwap {
			t.Errorf("WeakArea = (%s, %v), want (bias_swap, true)", typ, ok)
		}
	})
}

func TestDecide_EmptyPool(t *testing.T) {
	s := newSelector(DefaultConfig())
	_, err := s.Decide(Inputs{})
	if !errors.Is(err, ErrNoChallengeAvailable) {
		t.Errorf("err = %v, want ErrNoChallengeAvailable", err)
	}
}

func TestDecide_NewUserGetsBeginner(t *testing.T) {
	s := newSelector(DefaultConfig())
	pool := []models.Challenge{
		ch(1, models.TypeLogicPuzzle, models.DifficultyBeginner),
		ch(2, models.TypeBiasSwap, models.DifficultyAdvanced),
	}

	d, err := s.Decide(Inputs{Pool: pool})
	if err != nil {
		t.Fatal(err)
	}
	if d.Challenge.ID != 1 {
		t.Errorf("picked challenge %d, want the beginner challenge", d.Challenge.ID)
	}
	if d.TargetDifficulty != models.DifficultyBeginner || d.DifficultyAdjustment != 0 {
		t.Errorf("decision = %+v, want beginner tier with adjustment 0", d)
	}
	if d.Reason != models.ReasonAdaptiveDifficulty {
		t.Errorf("Reason = %s, want adaptive_difficulty", d.Reason)
	}
}

func TestDecide_NeverRepeatsRecentWhenAlternativeExists(t *testing.T) {
	s := newSelector(DefaultConfig())
	pool := []models.Challenge{
		ch(1, models.TypeLogicPuzzle, models.DifficultyIntermediate),
		ch(2, models.TypeLogicPuzzle, models.DifficultyIntermediate),
		ch(3, models.TypeSynthesis, models.DifficultyIntermediate),
		ch(4, models.TypeBiasSwap, models.DifficultyIntermediate),
	}
	recent := map[uint]bool{1: true, 3: true}
	in := Inputs{
		Stats:              statsWith(10, 6, nil),
		RecentCount:        5,
		RecentChallengeIDs: recent,
		Pool:               pool,
	}

	for i := 0; i < 200; i++ {
		d, err := s.Decide(in)
		if err != nil {
			t.Fatal(err)
		}
		if recent[d.Challenge.ID] {
			t.Fatalf("iteration %d picked recently attempted challenge %d", i, d.Challenge.ID)
		}
	}
}

func TestDecide_WeakAreaSteering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeakAreaBias = 1.0
	s := newSelector(cfg)

	byType := map[models.ChallengeType]models.BucketStat{
		models.TypeBiasSwap:    {Completed: 5, Correct: 1}, // 0.2, weak
		models.TypeLogicPuzzle: {Completed: 5, Correct: 4},
	}
	pool := []models.Challenge{
		ch(1, models.TypeBiasSwap, models.DifficultyIntermediate),
		ch(2, models.TypeLogicPuzzle, models.DifficultyIntermediate),
		ch(3, models.TypeSynthesis, models.DifficultyIntermediate),
	}
	in := Inputs{
		Stats:       statsWith(10, 5, byType),
		RecentCount: 4,
		Pool:        pool,
	}

	for i := 0; i < 50; i++ {
		d, err := s.Decide(in)
		if err != nil {
			t.Fatal(err)
		}
		if d.Challenge.Type != models.TypeBiasSwap {
			t.Fatalf("bias 1.0 picked type %s, want the weak type", d.Challenge.Type)
		}
		if d.Reason != models.WeakAreaReason(models.TypeBiasSwap) {
			t.Fatalf("Reason = %s, want weak_area_bias_swap", d.Reason)
		}
	}
}

func TestDecide_WeakBiasZeroNeverSteers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeakAreaBias = 0.0
	s := newSelector(cfg)

	byType := map[models.ChallengeType]models.BucketStat{
		models.TypeBiasSwap: {Completed: 5, Correct: 1},
	}
	in := Inputs{
		Stats:       statsWith(10, 5, byType),
		RecentCount: 4,
		Pool: []models.Challenge{
			ch(1, models.TypeBiasSwap, models.DifficultyIntermediate),
			ch(2, models.TypeLogicPuzzle, models.DifficultyIntermediate),
		},
	}

	for i := 0; i < 50; i++ {
		d, err := s.Decide(in)
		if err != nil {
			t.Fatal(err)
		}
		if d.Reason != models.ReasonAdaptiveDifficulty {
			t.Fatalf("bias 0.0 still produced reason %s", d.Reason)
		}
	}
}

func TestDecide_FallbackDropsWeakTypeFirst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeakAreaBias = 1.0
	s := newSelector(cfg)

	byType := map[models.ChallengeType]models.BucketStat{
		models.TypeBiasSwap: {Completed: 5, Correct: 1},
	}
	// No bias_swap challenge in the pool: the weak-type filter must give way
	// but the difficulty filter should hold.
	pool := []models.Challenge{
		ch(1, models.TypeLogicPuzzle, models.DifficultyIntermediate),
		ch(2, models.TypeSynthesis, models.DifficultyAdvanced),
	}
	d, err := s.Decide(Inputs{Stats: statsWith(10, 5, byType), RecentCount: 4, Pool: pool})
	if err != nil {
		t.Fatal(err)
	}
	if d.Challenge.ID != 1 {
		t.Errorf("picked challenge %d, want the intermediate one", d.Challenge.ID)
	}
	if d.Reason != models.ReasonAdaptiveDifficulty {
		t.Errorf("Reason = %s, want adaptive_difficulty after dropping the weak filter", d.Reason)
	}
}

func TestDecide_FallbackDropsDifficultyNext(t *testing.T) {
	s := newSelector(DefaultConfig())

	// Target tier is intermediate but only an advanced challenge is fresh.
	pool := []models.Challenge{
		ch(1, models.TypeSynthesis, models.DifficultyAdvanced),
		ch(2, models.TypeLogicPuzzle, models.DifficultyIntermediate),
	}
	d, err := s.Decide(Inputs{
		Stats:              statsWith(10, 6, nil),
		RecentCount:        4,
		RecentChallengeIDs: map[uint]bool{2: true},
		Pool:               pool,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.Challenge.ID != 1 {
		t.Errorf("picked challenge %d, want the fresh advanced one", d.Challenge.ID)
	}
}

func TestDecide_FallbackServesRepeatLast(t *testing.T) {
	s := newSelector(DefaultConfig())

	// Everything was attempted this week; a repeat beats nothing.
	pool := []models.Challenge{ch(1, models.TypeLogicPuzzle, models.DifficultyIntermediate)}
	d, err := s.Decide(Inputs{
		Stats:              statsWith(10, 6, nil),
		RecentCount:        4,
		RecentChallengeIDs: map[uint]bool{1: true},
		Pool:               pool,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.Challenge.ID != 1 {
		t.Errorf("picked challenge %d, want the only challenge", d.Challenge.ID)
	}
}
