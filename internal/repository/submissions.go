package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

// CreateSubmissionTx appends a submission inside the caller's transaction.
// Submissions are append-only; nothing ever updates one.
func CreateSubmissionTx(tx *gorm.DB, sub *models.Submission) error {
	return tx.Create(sub).Error
}

// RecentChallengeIDs returns the distinct challenge ids a user attempted
// since the cutoff.
func RecentChallengeIDs(ctx context.Context, userID uint, since time.Time) ([]uint, error) {
	var ids []uint
	err := database.DB.WithContext(ctx).Model(&models.Submission{}).
		Distinct("challenge_id").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Pluck("challenge_id", &ids).Error
	return ids, err
}

// CountSubmissionsSince counts a user's submissions after the cutoff.
func CountSubmissionsSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Submission{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// CountSubmissionsBetween counts a user's submissions in [start, end). The
// reminder scheduler uses it to skip users who already played today.
func CountSubmissionsBetween(ctx context.Context, userID uint, start, end time.Time) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Submission{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Count(&count).Error
	return count, err
}

// ListSubmissionsSince returns a user's submissions after the cutoff,
// oldest first. The score engine needs the original order for its trend
// slopes.
func ListSubmissionsSince(ctx context.Context, userID uint, since time.Time) ([]models.Submission, error) {
	var subs []models.Submission
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&subs).Error
	return subs, err
}

// SubmissionTimesSince returns only the timestamps of a user's submissions
// after the cutoff, for active-day counting.
func SubmissionTimesSince(ctx context.Context, userID uint, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := database.DB.WithContext(ctx).Model(&models.Submission{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Pluck("created_at", &times).Error
	return times, err
}
