package repository

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

func GetContentItemByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	var item models.ContentItem
	result := database.DB.WithContext(ctx).First(&item, id)
	return &item, result.Error
}

// ListActiveContent returns the reading feed, newest first.
func ListActiveContent(ctx context.Context, limit, offset int) ([]models.ContentItem, error) {
	var items []models.ContentItem
	err := database.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

// UpsertContentByURL writes one feed entry, keyed by URL so repeated seeding
// converges.
func UpsertContentByURL(ctx context.Context, item *models.ContentItem) error {
	return database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"headline", "source", "summary", "topics", "bias_rating", "published_at", "is_active",
		}),
	}).Create(item).Error
}

// CreateContentActivity records one article view with its bias rating
// denormalized at write time.
func CreateContentActivity(ctx context.Context, activity *models.ContentActivity) error {
	return database.DB.WithContext(ctx).Create(activity).Error
}

// BiasRatingsSince returns the bias rating of every item a user viewed
// after the cutoff, one entry per view.
func BiasRatingsSince(ctx context.Context, userID uint, since time.Time) ([]float64, error) {
	var ratings []float64
	err := database.DB.WithContext(ctx).Model(&models.ContentActivity{}).
		Where("user_id = ? AND viewed_at >= ?", userID, since).
		Pluck("bias_rating", &ratings).Error
	return ratings, err
}

// ViewTimesSince returns the timestamps of a user's article views after the
// cutoff, for active-day counting.
func ViewTimesSince(ctx context.Context, userID uint, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := database.DB.WithContext(ctx).Model(&models.ContentActivity{}).
		Where("user_id = ? AND viewed_at >= ?", userID, since).
		Pluck("viewed_at", &times).Error
	return times, err
}

// UserIDsActiveBetween returns the ids of users with any submission or
// content view inside [start, end). The snapshot job uses it to bound its
// nightly sweep to users who did something that day.
func UserIDsActiveBetween(ctx context.Context, start, end time.Time) ([]uint, error) {
	var fromSubmissions []uint
	err := database.DB.WithContext(ctx).Model(&models.Submission{}).
		Distinct("user_id").
		Where("created_at >= ? AND created_at < ?", start, end).
		Pluck("user_id", &fromSubmissions).Error
	if err != nil {
		return nil, err
	}

	var fromViews []uint
	err = database.DB.WithContext(ctx).Model(&models.ContentActivity{}).
		Distinct("user_id").
		Where("viewed_at >= ? AND viewed_at < ?", start, end).
		Pluck("user_id", &fromViews).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(fromSubmissions)+len(fromViews))
	merged := make([]uint, 0, len(fromSubmissions)+len(fromViews))
	for _, id := range fromSubmissions {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range fromViews {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged, nil
}
