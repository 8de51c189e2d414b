package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
	"github.com/jrf25906/perspective-app-sub000/internal/utils"
)

type ProfileHandler struct {
	log *zap.Logger
}

func NewProfileHandler(log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{log: log}
}

type bucketView struct {
	Completed      int     `json:"completed"`
	Correct        int     `json:"correct"`
	SuccessRate    float64 `json:"successRate"`
	AvgTimeSeconds float64 `json:"avgTimeSeconds"`
}

type statsView struct {
	TotalCompleted   int                                 `json:"totalCompleted"`
	TotalCorrect     int                                 `json:"totalCorrect"`
	SuccessRate      float64                             `json:"successRate"`
	TotalXP          int                                 `json:"totalXp"`
	CurrentStreak    int                                 `json:"currentStreak"`
	LongestStreak    int                                 `json:"longestStreak"`
	LastSubmissionAt *time.Time                          `json:"lastSubmissionAt,omitempty"`
	ByType           map[models.ChallengeType]bucketView `json:"byType"`
	ByDifficulty     map[models.Difficulty]bucketView    `json:"byDifficulty"`
}

type profileResponse struct {
	User             userView   `json:"user"`
	RemindersEnabled bool       `json:"remindersEnabled"`
	ReminderTime     string     `json:"reminderTime,omitempty"`
	Stats            *statsView `json:"stats"`
}

type updateInfoRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type updateRemindersRequest struct {
	Enabled      bool   `json:"enabled"`
	ReminderTime string `json:"reminderTime" binding:"omitempty,remindertime"`
}

func bucketViewOf(b models.BucketStat) bucketView {
	return bucketView{
		Completed:      b.Completed,
		Correct:        b.Correct,
		SuccessRate:    b.SuccessRate(),
		AvgTimeSeconds: b.AvgTimeSeconds(),
	}
}

func statsViewOf(st *models.UserChallengeStats) (*statsView, error) {
	byType, err := st.TypeBreakdown()
	if err != nil {
		return nil, err
	}
	byDifficulty, err := st.DifficultyBreakdown()
	if err != nil {
		return nil, err
	}

	typeViews := make(map[models.ChallengeType]bucketView, len(byType))
	for t, b := range byType {
		typeViews[t] = bucketViewOf(b)
	}
	diffViews := make(map[models.Difficulty]bucketView, len(byDifficulty))
	for d, b := range byDifficulty {
		diffViews[d] = bucketViewOf(b)
	}

	return &statsView{
		TotalCompleted:   st.TotalCompleted,
		TotalCorrect:     st.TotalCorrect,
		SuccessRate:      st.SuccessRate(),
		TotalXP:          st.TotalXP,
		CurrentStreak:    st.CurrentStreak,
		LongestStreak:    st.LongestStreak,
		LastSubmissionAt: st.LastSubmissionAt,
		ByType:           typeViews,
		ByDifficulty:     diffViews,
	}, nil
}

// Me serves the profile with aggregate stats. Stats is null for users who
// have never submitted.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := MustUserID(c)

	user, err := repository.GetUserByID(c, userID)
	if err != nil {
		h.log.Error("Failed to load user", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	resp := profileResponse{
		User:             viewOf(user),
		RemindersEnabled: user.RemindersEnabled,
		ReminderTime:     user.ReminderTime,
	}

	st, err := repository.GetStats(c, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.log.Error("Failed to load stats", zap.Uint("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}
	} else {
		view, err := statsViewOf(st)
		if err != nil {
			h.log.Error("Failed to decode stat breakdowns", zap.Uint("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}
		resp.Stats = view
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateInfo(c *gin.Context) {
	userID := MustUserID(c)

	var req updateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := repository.UpdateUser(c, userID, req.FirstName, req.LastName); err != nil {
		h.log.Error("Failed to update user info", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	userID := MustUserID(c)

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentPassword and newPassword are required"})
		return
	}

	user, err := repository.GetUserByID(c, userID)
	if err != nil {
		h.log.Error("Failed to load user", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}
	if !user.CheckPassword(req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		return
	}
	if !utils.IsComplexPassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters with upper, lower, number and special"})
		return
	}

	if err := repository.UpdateUserPassword(c, userID, req.NewPassword); err != nil {
		h.log.Error("Failed to update password", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ProfileHandler) UpdateReminders(c *gin.Context) {
	userID := MustUserID(c)

	var req updateRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Enabled && !utils.IsValidReminderTime(req.ReminderTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reminderTime must be HH:MM (24h, UTC)"})
		return
	}

	if err := repository.UpdateReminderPreferences(c, userID, req.Enabled, req.ReminderTime); err != nil {
		h.log.Error("Failed to update reminder preferences", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
