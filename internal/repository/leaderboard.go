package repository

import (
	"context"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
)

// LeaderboardEntry is one row of the XP ranking.
type LeaderboardEntry struct {
	UserID        uint   `json:"userId"`
	FirstName     string `json:"-"`
	LastName      string `json:"-"`
	Email         string `json:"-"`
	DisplayName   string `json:"displayName" gorm:"-"`
	TotalXP       int    `json:"totalXp"`
	CurrentStreak int    `json:"currentStreak"`
}

// TopUsersByXP ranks users by lifetime XP. Ties break on the longer current
// streak, then on the earlier user id so the order is stable.
func TopUsersByXP(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := database.DB.WithContext(ctx).
		Table("user_challenge_stats").
		Select("user_challenge_stats.user_id, users.first_name, users.last_name, users.email, user_challenge_stats.total_xp, user_challenge_stats.current_streak").
		Joins("JOIN users ON users.id = user_challenge_stats.user_id").
		Order("user_challenge_stats.total_xp DESC, user_challenge_stats.current_streak DESC, user_challenge_stats.user_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
