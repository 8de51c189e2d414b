package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
)

type HealthHandler struct {
	log *zap.Logger
}

func NewHealthHandler(log *zap.Logger) *HealthHandler {
	return &HealthHandler{log: log}
}

// Check reports liveness of the process and its dependencies. The endpoint
// stays 200 when only the cache is down, since the API degrades rather than
// fails without Redis.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK

	dbStatus := "up"
	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.PingContext(c) != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "disabled"
	if database.RDB != nil {
		redisStatus = "up"
		ctx, cancel := context.WithTimeout(c, 2*time.Second)
		defer cancel()
		if err := database.RDB.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}
	}

	// An empty pool is the one state where /challenge/today cannot serve,
	// so surface it before users do.
	catalogStatus := "ok"
	if dbStatus == "up" {
		count, err := repository.CountActiveChallenges(c)
		if err != nil || count == 0 {
			catalogStatus = "empty"
		}
	} else {
		catalogStatus = "unknown"
	}

	word := "ok"
	if status != http.StatusOK {
		word = "degraded"
	}
	c.JSON(status, gin.H{
		"status":   word,
		"database": dbStatus,
		"redis":    redisStatus,
		"catalog":  catalogStatus,
	})
}
