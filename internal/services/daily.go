package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jrf25906/perspective-app-sub000/internal/metrics"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
	"github.com/jrf25906/perspective-app-sub000/internal/selector"
	"github.com/jrf25906/perspective-app-sub000/internal/streak"
)

// DailyChallengeService serves each user one pinned challenge per calendar
// day. The first request of the day runs the adaptive selector and persists
// its pick; every later request that day returns the same row.
type DailyChallengeService struct {
	log *zap.Logger
	sel *selector.Selector
	cfg selector.Config
	loc *time.Location
}

func NewDailyChallengeService(log *zap.Logger, sel *selector.Selector, cfg selector.Config, loc *time.Location) *DailyChallengeService {
	return &DailyChallengeService{log: log, sel: sel, cfg: cfg, loc: loc}
}

// Today returns the user's challenge for the current calendar day, selecting
// and pinning one if none exists yet. Two racing first requests both try the
// insert; the unique (user, date) index lets one win and the re-read returns
// the winner to both, so the day's pick is stable.
func (s *DailyChallengeService) Today(ctx context.Context, userID uint) (*models.DailyChallengeSelection, error) {
	now := time.Now().In(s.loc)
	dayKey := streak.DayKey(now, s.loc)

	existing, err := repository.GetSelection(ctx, userID, dayKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	decision, err := s.decide(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	sel := &models.DailyChallengeSelection{
		UserID:               userID,
		ChallengeID:          decision.Challenge.ID,
		SelectionDate:        dayKey,
		SelectionReason:      decision.Reason,
		DifficultyAdjustment: decision.DifficultyAdjustment,
	}
	if err := repository.CreateSelectionIfAbsent(ctx, sel); err != nil {
		return nil, err
	}

	metrics.SelectionsServed.WithLabelValues(string(decision.Reason)).Inc()
	s.log.Info("Daily challenge selected",
		zap.Uint("userID", userID),
		zap.Uint("challengeID", decision.Challenge.ID),
		zap.String("date", dayKey),
		zap.String("reason", string(decision.Reason)),
		zap.Int("adjustment", decision.DifficultyAdjustment),
	)

	return repository.GetSelection(ctx, userID, dayKey)
}

// decide gathers the selector's inputs and runs it once.
func (s *DailyChallengeService) decide(ctx context.Context, userID uint, now time.Time) (selector.Decision, error) {
	pool, err := repository.ListActiveChallenges(ctx)
	if err != nil {
		return selector.Decision{}, err
	}

	st, err := repository.GetStats(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return selector.Decision{}, err
		}
		st = nil
	}

	since := now.AddDate(0, 0, -s.cfg.RecentWindowDays)
	ids, err := repository.RecentChallengeIDs(ctx, userID, since)
	if err != nil {
		return selector.Decision{}, err
	}
	recent := make(map[uint]bool, len(ids))
	for _, id := range ids {
		recent[id] = true
	}

	count, err := repository.CountSubmissionsSince(ctx, userID, since)
	if err != nil {
		return selector.Decision{}, err
	}

	return s.sel.Decide(selector.Inputs{
		Stats:              st,
		RecentCount:        int(count),
		RecentChallengeIDs: recent,
		Pool:               pool,
	})
}
