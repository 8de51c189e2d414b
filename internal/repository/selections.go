package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

// GetSelection returns the pinned selection for (user, day), or
// gorm.ErrRecordNotFound when no selection exists yet. The challenge is
// preloaded since every caller renders it.
func GetSelection(ctx context.Context, userID uint, dayKey string) (*models.DailyChallengeSelection, error) {
	var sel models.DailyChallengeSelection
	result := database.DB.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ? AND selection_date = ?", userID, dayKey).
		First(&sel)
	return &sel, result.Error
}

// CreateSelectionIfAbsent pins a selection for (user, day). When a
// concurrent request already pinned one, the insert is a no-op and the
// caller re-reads the winner; the one-row-per-day invariant holds either
// way.
func CreateSelectionIfAbsent(ctx context.Context, sel *models.DailyChallengeSelection) error {
	return database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "selection_date"}},
		DoNothing: true,
	}).Create(sel).Error
}
