package models

import "time"

// SelectionReason records why the selector picked a challenge, so the client
// can surface "targeting your weak area" style copy and analysts can audit
// the adaptive loop.
type SelectionReason string

const ReasonAdaptiveDifficulty SelectionReason = "adaptive_difficulty"

// WeakAreaReason tags a pick made to train an underperforming type.
func WeakAreaReason(t ChallengeType) SelectionReason {
	return SelectionReason("weak_area_" + string(t))
}

// DailyChallengeSelection pins one challenge per user per calendar day.
// SelectionDate is a YYYY-MM-DD key in the engine timezone; the composite
// unique index makes concurrent selection idempotent.
type DailyChallengeSelection struct {
	ID                   uint            `gorm:"primaryKey"`
	UserID               uint            `gorm:"not null;uniqueIndex:idx_daily_selections_user_date"`
	ChallengeID          uint            `gorm:"not null"`
	SelectionDate        string          `gorm:"size:10;not null;uniqueIndex:idx_daily_selections_user_date"`
	SelectionReason      SelectionReason `gorm:"size:64;not null"`
	DifficultyAdjustment int             `gorm:"not null;default:0"`
	CreatedAt            time.Time

	Challenge *Challenge `gorm:"foreignKey:ChallengeID"`
}
