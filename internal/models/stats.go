package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// BucketStat aggregates a user's attempts within one challenge type or one
// difficulty tier.
type BucketStat struct {
	Completed        int `json:"completed"`
	Correct          int `json:"correct"`
	TotalTimeSeconds int `json:"totalTimeSeconds"`
}

// SuccessRate returns correct/completed in [0,1], or 0 for an empty bucket.
func (b BucketStat) SuccessRate() float64 {
	if b.Completed == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Completed)
}

// AvgTimeSeconds returns the mean time per attempt, or 0 for an empty bucket.
func (b BucketStat) AvgTimeSeconds() float64 {
	if b.Completed == 0 {
		return 0
	}
	return float64(b.TotalTimeSeconds) / float64(b.Completed)
}

// Record folds one graded attempt into the bucket.
func (b *BucketStat) Record(correct bool, timeSpentSeconds int) {
	b.Completed++
	if correct {
		b.Correct++
	}
	b.TotalTimeSeconds += timeSpentSeconds
}

// UserChallengeStats is the per-user aggregate row behind streaks, adaptive
// selection and the profile screen. There is exactly one row per user; writers
// must lock it FOR UPDATE so concurrent submissions serialize.
type UserChallengeStats struct {
	ID               uint `gorm:"primaryKey"`
	UserID           uint `gorm:"uniqueIndex;not null"`
	TotalCompleted   int  `gorm:"not null;default:0"`
	TotalCorrect     int  `gorm:"not null;default:0"`
	TotalXP          int  `gorm:"not null;default:0"`
	CurrentStreak    int  `gorm:"not null;default:0"`
	LongestStreak    int  `gorm:"not null;default:0"`
	LastSubmissionAt *time.Time
	ByType           datatypes.JSON `gorm:"not null;default:'{}'"`
	ByDifficulty     datatypes.JSON `gorm:"not null;default:'{}'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SuccessRate returns the user's lifetime correct/completed ratio in [0,1].
func (s *UserChallengeStats) SuccessRate() float64 {
	if s.TotalCompleted == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalCompleted)
}

// TypeBreakdown decodes the per-type buckets. A missing or empty column
// decodes to an empty map.
func (s *UserChallengeStats) TypeBreakdown() (map[ChallengeType]BucketStat, error) {
	out := make(map[ChallengeType]BucketStat)
	if len(s.ByType) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(s.ByType, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetTypeBreakdown encodes the per-type buckets back into the JSON column.
func (s *UserChallengeStats) SetTypeBreakdown(m map[ChallengeType]BucketStat) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	s.ByType = raw
	return nil
}

// DifficultyBreakdown decodes the per-tier buckets. A missing or empty column
// decodes to an empty map.
func (s *UserChallengeStats) DifficultyBreakdown() (map[Difficulty]BucketStat, error) {
	out := make(map[Difficulty]BucketStat)
	if len(s.ByDifficulty) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(s.ByDifficulty, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetDifficultyBreakdown encodes the per-tier buckets back into the JSON column.
func (s *UserChallengeStats) SetDifficultyBreakdown(m map[Difficulty]BucketStat) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	s.ByDifficulty = raw
	return nil
}
