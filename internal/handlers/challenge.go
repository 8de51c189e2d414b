package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/evaluator"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/selector"
	"github.com/jrf25906/perspective-app-sub000/internal/services"
)

type ChallengeHandler struct {
	log         *zap.Logger
	daily       *services.DailyChallengeService
	submissions *services.SubmissionService
}

func NewChallengeHandler(log *zap.Logger, daily *services.DailyChallengeService, submissions *services.SubmissionService) *ChallengeHandler {
	return &ChallengeHandler{log: log, daily: daily, submissions: submissions}
}

// challengeView is the client-facing challenge shape. The grading payload
// and the explanation stay server-side until the answer is graded.
type challengeView struct {
	ID                   uint   `json:"id"`
	Slug                 string `json:"slug"`
	Type                 string `json:"type"`
	Difficulty           string `json:"difficulty"`
	Title                string `json:"title"`
	Prompt               string `json:"prompt"`
	XPReward             int    `json:"xpReward"`
	EstimatedTimeMinutes int    `json:"estimatedTimeMinutes"`
}

type dailyChallengeResponse struct {
	Challenge            challengeView `json:"challenge"`
	SelectionDate        string        `json:"selectionDate"`
	SelectionReason      string        `json:"selectionReason"`
	DifficultyAdjustment int           `json:"difficultyAdjustment"`
}

type submitRequest struct {
	ChallengeID      uint            `json:"challengeId" binding:"required"`
	Answer           json.RawMessage `json:"answer" binding:"required"`
	TimeSpentSeconds *int            `json:"timeSpentSeconds" binding:"required"`
}

func challengeViewOf(ch *models.Challenge) challengeView {
	return challengeView{
		ID:                   ch.ID,
		Slug:                 ch.Slug,
		Type:                 string(ch.Type),
		Difficulty:           string(ch.Difficulty),
		Title:                ch.Title,
		Prompt:               ch.Prompt,
		XPReward:             ch.XPReward,
		EstimatedTimeMinutes: ch.EstimatedTimeMinutes,
	}
}

// Today serves the user's pinned challenge for the current day.
func (h *ChallengeHandler) Today(c *gin.Context) {
	userID := MustUserID(c)

	sel, err := h.daily.Today(c, userID)
	if err != nil {
		if errors.Is(err, selector.ErrNoChallengeAvailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no challenge available"})
			return
		}
		h.log.Error("Failed to resolve daily challenge", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load today's challenge"})
		return
	}
	if sel.Challenge == nil {
		h.log.Error("Daily selection has no challenge row", zap.Uint("userID", userID), zap.Uint("challengeID", sel.ChallengeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load today's challenge"})
		return
	}

	c.JSON(http.StatusOK, dailyChallengeResponse{
		Challenge:            challengeViewOf(sel.Challenge),
		SelectionDate:        sel.SelectionDate,
		SelectionReason:      string(sel.SelectionReason),
		DifficultyAdjustment: sel.DifficultyAdjustment,
	})
}

// Submit grades an answer and returns the verdict with streak state.
func (h *ChallengeHandler) Submit(c *gin.Context) {
	userID := MustUserID(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challengeId, answer and timeSpentSeconds are required"})
		return
	}
	if *req.TimeSpentSeconds < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timeSpentSeconds must be non-negative"})
		return
	}

	result, err := h.submissions.Submit(c, userID, req.ChallengeID, req.Answer, *req.TimeSpentSeconds)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		case errors.Is(err, evaluator.ErrMalformedAnswer):
			c.JSON(http.StatusBadRequest, gin.H{"error": "answer does not match the challenge's expected shape"})
		default:
			h.log.Error("Failed to grade submission",
				zap.Uint("userID", userID),
				zap.Uint("challengeID", req.ChallengeID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to grade submission"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
