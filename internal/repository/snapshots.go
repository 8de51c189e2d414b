package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

// GetSnapshot returns the persisted Echo Score for (user, day), or
// gorm.ErrRecordNotFound.
func GetSnapshot(ctx context.Context, userID uint, dayKey string) (*models.EchoScoreSnapshot, error) {
	var snap models.EchoScoreSnapshot
	result := database.DB.WithContext(ctx).
		Where("user_id = ? AND score_date = ?", userID, dayKey).
		First(&snap)
	return &snap, result.Error
}

// GetLatestSnapshot returns the most recent persisted Echo Score for a user.
func GetLatestSnapshot(ctx context.Context, userID uint) (*models.EchoScoreSnapshot, error) {
	var snap models.EchoScoreSnapshot
	result := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score_date DESC").
		First(&snap)
	return &snap, result.Error
}

// ListSnapshots returns a user's score history, newest first.
func ListSnapshots(ctx context.Context, userID uint, limit int) ([]models.EchoScoreSnapshot, error) {
	var snaps []models.EchoScoreSnapshot
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score_date DESC").
		Limit(limit).
		Find(&snaps).Error
	return snaps, err
}

// CreateSnapshotIfAbsent persists one Echo Score per (user, day). A
// concurrent save for the same day wins silently; the caller re-reads the
// stored row.
func CreateSnapshotIfAbsent(ctx context.Context, snap *models.EchoScoreSnapshot) error {
	return database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "score_date"}},
		DoNothing: true,
	}).Create(snap).Error
}
