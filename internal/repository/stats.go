package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

// GetStats returns a user's aggregate row, or gorm.ErrRecordNotFound when
// the user has never submitted.
func GetStats(ctx context.Context, userID uint) (*models.UserChallengeStats, error) {
	var st models.UserChallengeStats
	result := database.DB.WithContext(ctx).Where("user_id = ?", userID).First(&st)
	return &st, result.Error
}

// GetStatsForUpdateTx locks a user's aggregate row FOR UPDATE inside the
// caller's transaction, creating it first if the user has none. Concurrent
// submissions for one user serialize on this lock, so streak and breakdown
// updates never lose writes. The create races benignly: on conflict the row
// already exists and the second lock attempt finds it.
func GetStatsForUpdateTx(tx *gorm.DB, userID uint) (*models.UserChallengeStats, error) {
	var st models.UserChallengeStats
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&st).Error
	if err == nil {
		return &st, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := models.UserChallengeStats{
		UserID:       userID,
		ByType:       datatypes.JSON("{}"),
		ByDifficulty: datatypes.JSON("{}"),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, err
	}

	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveStatsTx writes the updated aggregate row inside the caller's
// transaction. The row must have been locked by GetStatsForUpdateTx.
func SaveStatsTx(tx *gorm.DB, st *models.UserChallengeStats) error {
	return tx.Save(st).Error
}
