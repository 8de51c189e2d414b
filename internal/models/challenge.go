package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChallengeType identifies the exercise format of a challenge.
type ChallengeType string

const (
	TypeBiasSwap        ChallengeType = "bias_swap"
	TypeLogicPuzzle     ChallengeType = "logic_puzzle"
	TypeDataLiteracy    ChallengeType = "data_literacy"
	TypeCounterArgument ChallengeType = "counter_argument"
	TypeSynthesis       ChallengeType = "synthesis"
	TypeEthicalDilemma  ChallengeType = "ethical_dilemma"
)

// ChallengeTypes lists every known type in catalog order.
var ChallengeTypes = []ChallengeType{
	TypeBiasSwap,
	TypeLogicPuzzle,
	TypeDataLiteracy,
	TypeCounterArgument,
	TypeSynthesis,
	TypeEthicalDilemma,
}

// Valid reports whether t is one of the known challenge types.
func (t ChallengeType) Valid() bool {
	for _, known := range ChallengeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Structured reports whether answers of this type are compared as a single
// value. Bias swaps are tag selections; counter arguments, syntheses and
// ethical dilemmas are graded as free text.
func (t ChallengeType) Structured() bool {
	switch t {
	case TypeLogicPuzzle, TypeDataLiteracy:
		return true
	}
	return false
}

// Difficulty is the tier a challenge is authored at.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists the tiers from easiest to hardest.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Rank orders tiers for adjustment arithmetic: beginner 0 through advanced 2.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	}
	return -1
}

// DifficultyByRank returns the tier for a rank, clamping out-of-range values
// to the nearest tier.
func DifficultyByRank(rank int) Difficulty {
	if rank <= 0 {
		return DifficultyBeginner
	}
	if rank >= 2 {
		return DifficultyAdvanced
	}
	return DifficultyIntermediate
}

// Challenge is one exercise from the catalog. CorrectAnswer holds the
// type-specific grading payload and is never serialized to clients.
type Challenge struct {
	ID                   uint           `gorm:"primaryKey"`
	Slug                 string         `gorm:"size:100;uniqueIndex;not null"`
	Type                 ChallengeType  `gorm:"size:32;index;not null"`
	Difficulty           Difficulty     `gorm:"size:16;index;not null"`
	Title                string         `gorm:"size:200;not null"`
	Prompt               string         `gorm:"type:text;not null"`
	Explanation          string         `gorm:"type:text"`
	CorrectAnswer        datatypes.JSON `gorm:"not null" json:"-"`
	XPReward             int            `gorm:"not null"`
	EstimatedTimeMinutes int            `gorm:"not null;default:5"`
	IsActive             bool           `gorm:"default:true;index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
