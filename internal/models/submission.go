package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one graded attempt at a challenge. Rows are append-only;
// grading results are denormalized here so score computation never has to
// re-evaluate answers.
type Submission struct {
	ID               uint64         `gorm:"primaryKey"`
	UserID           uint           `gorm:"not null;index:idx_submissions_user_created"`
	ChallengeID      uint           `gorm:"not null;index"`
	ChallengeType    ChallengeType  `gorm:"size:32;not null"`
	Difficulty       Difficulty     `gorm:"size:16;not null"`
	Answer           datatypes.JSON `gorm:"not null"`
	IsCorrect        bool           `gorm:"not null"`
	TimeSpentSeconds int            `gorm:"not null"`
	XPEarned         int            `gorm:"not null"`
	CreatedAt        time.Time      `gorm:"index:idx_submissions_user_created"`

	Challenge *Challenge `gorm:"foreignKey:ChallengeID"`
}
