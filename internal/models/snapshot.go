package models

import "time"

// EchoScoreSnapshot is one persisted Echo Score with its component values.
// ScoreDate is a YYYY-MM-DD key in the engine timezone; at most one snapshot
// exists per user per day and re-saving the same day is a no-op.
type EchoScoreSnapshot struct {
	ID          uint    `gorm:"primaryKey"`
	UserID      uint    `gorm:"not null;uniqueIndex:idx_echo_snapshots_user_date"`
	Total       float64 `gorm:"not null"`
	Diversity   float64 `gorm:"not null"`
	Accuracy    float64 `gorm:"not null"`
	SwitchSpeed float64 `gorm:"not null"`
	Consistency float64 `gorm:"not null"`
	Improvement float64 `gorm:"not null"`
	ScoreDate   string  `gorm:"size:10;not null;uniqueIndex:idx_echo_snapshots_user_date"`
	CreatedAt   time.Time
}
