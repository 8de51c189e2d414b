package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/services"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

type EchoScoreHandler struct {
	log  *zap.Logger
	echo *services.EchoScoreService
}

func NewEchoScoreHandler(log *zap.Logger, echo *services.EchoScoreService) *EchoScoreHandler {
	return &EchoScoreHandler{log: log, echo: echo}
}

// Get serves the Echo Score. mode=current (default) computes live;
// mode=latest prefers the newest snapshot.
func (h *EchoScoreHandler) Get(c *gin.Context) {
	userID := MustUserID(c)

	mode := c.DefaultQuery("mode", "current")
	var (
		view *services.EchoScoreView
		err  error
	)
	switch mode {
	case "current":
		view, err = h.echo.Current(c, userID)
	case "latest":
		view, err = h.echo.Latest(c, userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be current or latest"})
		return
	}
	if err != nil {
		h.log.Error("Failed to compute echo score", zap.Uint("userID", userID), zap.String("mode", mode), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute echo score"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Save snapshots today's score. Saving twice on one day returns the stored
// snapshot unchanged.
func (h *EchoScoreHandler) Save(c *gin.Context) {
	userID := MustUserID(c)

	view, err := h.echo.Save(c, userID)
	if err != nil {
		h.log.Error("Failed to save echo score snapshot", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save snapshot"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// History lists persisted snapshots, newest first.
func (h *EchoScoreHandler) History(c *gin.Context) {
	userID := MustUserID(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	views, err := h.echo.History(c, userID, limit)
	if err != nil {
		h.log.Error("Failed to list echo score history", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": views})
}
