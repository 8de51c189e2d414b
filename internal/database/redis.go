package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/config"
)

// RDB is the shared Redis client. It backs only the leaderboard cache, so a
// failed connection degrades that endpoint to direct queries instead of
// taking the server down.
var RDB *redis.Client

// InitRedis connects the leaderboard cache. Returns false when Redis is
// unreachable; callers treat the cache as absent.
func InitRedis(log *zap.Logger) bool {
	rdConf := config.Conf.Redis
	RDB = redis.NewClient(&redis.Options{
		Addr:     rdConf.Addr,
		Password: rdConf.Password,
		DB:       rdConf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Warn("Redis unreachable, leaderboard cache disabled", zap.Error(err))
		RDB = nil
		return false
	}

	log.Info("Redis connection established successfully.")
	return true
}
