package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
)

// LeaderboardService ranks users by lifetime XP, with a short-lived Redis
// cache in front of the ranking query. The cache is best effort: without
// Redis every request hits the database and the ranking stays correct.
type LeaderboardService struct {
	log *zap.Logger
	ttl time.Duration
}

func NewLeaderboardService(log *zap.Logger, ttl time.Duration) *LeaderboardService {
	return &LeaderboardService{log: log, ttl: ttl}
}

// Top returns the limit highest-XP users. Entries come from the cache when
// fresh; otherwise the database is queried and the result cached per limit.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	key := fmt.Sprintf("leaderboard:top:%d", limit)

	if database.RDB != nil {
		cached, err := database.RDB.Get(ctx, key).Result()
		if err == nil {
			var entries []repository.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
			s.log.Warn("Discarding undecodable leaderboard cache entry", zap.String("key", key))
		}
	}

	entries, err := repository.TopUsersByXP(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		u := models.User{
			Email:     entries[i].Email,
			FirstName: entries[i].FirstName,
			LastName:  entries[i].LastName,
		}
		entries[i].DisplayName = u.DisplayName()
	}

	if database.RDB != nil {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := database.RDB.Set(ctx, key, payload, s.ttl).Err(); err != nil {
				s.log.Warn("Failed to cache leaderboard", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return entries, nil
}
