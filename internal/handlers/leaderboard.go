package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/services"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type LeaderboardHandler struct {
	log         *zap.Logger
	leaderboard *services.LeaderboardService
}

func NewLeaderboardHandler(log *zap.Logger, leaderboard *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{log: log, leaderboard: leaderboard}
}

// Top serves the XP ranking.
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := h.leaderboard.Top(c, limit)
	if err != nil {
		h.log.Error("Failed to load leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
