package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

func GetChallengeByID(ctx context.Context, id uint) (*models.Challenge, error) {
	var ch models.Challenge
	result := database.DB.WithContext(ctx).First(&ch, id)
	return &ch, result.Error
}

// ListActiveChallenges returns the full active pool. The catalog is small
// (tens of rows), so the selector filters in memory rather than pushing its
// relaxation ladder into SQL.
func ListActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	var pool []models.Challenge
	err := database.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&pool).Error
	return pool, err
}

func CountActiveChallenges(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Challenge{}).
		Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// UpsertChallengeBySlug writes one catalog entry, keyed by slug so repeated
// seeding converges instead of duplicating rows.
func UpsertChallengeBySlug(ctx context.Context, ch *models.Challenge) error {
	return database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"type", "difficulty", "title", "prompt", "explanation",
			"correct_answer", "xp_reward", "estimated_time_minutes", "is_active", "updated_at",
		}),
	}).Create(ch).Error
}
