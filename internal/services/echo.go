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
	"github.com/jrf25906/perspective-app-sub000/internal/score"
	"github.com/jrf25906/perspective-app-sub000/internal/streak"
)

// EchoScoreView is the API shape for a score, live or persisted. Summary is
// only present on live computations; ScoreDate only on snapshots.
type EchoScoreView struct {
	Total      float64          `json:"total"`
	Components score.Components `json:"components"`
	Summary    *score.Summary   `json:"summary,omitempty"`
	ScoreDate  string           `json:"scoreDate,omitempty"`
	Persisted  bool             `json:"persisted"`
}

// EchoScoreService computes Echo Scores over a user's recorded history and
// manages the daily snapshot trail.
type EchoScoreService struct {
	log  *zap.Logger
	calc *score.Calculator
	cfg  score.Config
	loc  *time.Location
}

func NewEchoScoreService(log *zap.Logger, calc *score.Calculator, cfg score.Config, loc *time.Location) *EchoScoreService {
	return &EchoScoreService{log: log, calc: calc, cfg: cfg, loc: loc}
}

// Current computes the live score from the windows ending now.
func (s *EchoScoreService) Current(ctx context.Context, userID uint) (*EchoScoreView, error) {
	in, err := s.gatherInputs(ctx, userID, time.Now().In(s.loc))
	if err != nil {
		return nil, err
	}
	r := s.calc.Compute(in)
	return &EchoScoreView{
		Total:      r.Total,
		Components: r.Components,
		Summary:    &r.Summary,
	}, nil
}

// Latest returns the most recent snapshot, falling back to a live
// computation for users who have never been snapshotted.
func (s *EchoScoreService) Latest(ctx context.Context, userID uint) (*EchoScoreView, error) {
	snap, err := repository.GetLatestSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.Current(ctx, userID)
		}
		return nil, err
	}
	v := snapshotView(snap)
	return &v, nil
}

// Save computes the live score and persists it under today's date. A second
// save on the same day keeps the first snapshot; the view returned always
// reflects the stored row.
func (s *EchoScoreService) Save(ctx context.Context, userID uint) (*EchoScoreView, error) {
	now := time.Now().In(s.loc)
	dayKey := streak.DayKey(now, s.loc)

	in, err := s.gatherInputs(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	r := s.calc.Compute(in)

	snap := &models.EchoScoreSnapshot{
		UserID:      userID,
		Total:       r.Total,
		Diversity:   r.Components.Diversity,
		Accuracy:    r.Components.Accuracy,
		SwitchSpeed: r.Components.SwitchSpeed,
		Consistency: r.Components.Consistency,
		Improvement: r.Components.Improvement,
		ScoreDate:   dayKey,
	}
	if err := repository.CreateSnapshotIfAbsent(ctx, snap); err != nil {
		return nil, err
	}

	stored, err := repository.GetSnapshot(ctx, userID, dayKey)
	if err != nil {
		return nil, err
	}

	metrics.SnapshotSaves.Inc()
	s.log.Info("Echo score snapshot saved",
		zap.Uint("userID", userID),
		zap.String("date", dayKey),
		zap.Float64("total", stored.Total),
	)

	v := snapshotView(stored)
	return &v, nil
}

// History returns up to limit snapshots, newest first.
func (s *EchoScoreService) History(ctx context.Context, userID uint, limit int) ([]EchoScoreView, error) {
	snaps, err := repository.ListSnapshots(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	views := make([]EchoScoreView, len(snaps))
	for i := range snaps {
		views[i] = snapshotView(&snaps[i])
	}
	return views, nil
}

// gatherInputs fetches the three score windows ending at now. Active days
// are counted over calendar days in the engine timezone, from both
// submissions and content views.
func (s *EchoScoreService) gatherInputs(ctx context.Context, userID uint, now time.Time) (score.Inputs, error) {
	diversitySince := now.AddDate(0, 0, -s.cfg.DiversityWindowDays)
	submissionSince := now.AddDate(0, 0, -s.cfg.SubmissionWindowDays)
	consistencySince := now.AddDate(0, 0, -s.cfg.ConsistencyWindowDays)

	ratings, err := repository.BiasRatingsSince(ctx, userID, diversitySince)
	if err != nil {
		return score.Inputs{}, err
	}

	subs, err := repository.ListSubmissionsSince(ctx, userID, submissionSince)
	if err != nil {
		return score.Inputs{}, err
	}
	responses := make([]score.Response, len(subs))
	for i, sub := range subs {
		responses[i] = score.Response{
			Type:             sub.ChallengeType,
			Correct:          sub.IsCorrect,
			TimeSpentSeconds: sub.TimeSpentSeconds,
		}
	}

	subTimes, err := repository.SubmissionTimesSince(ctx, userID, consistencySince)
	if err != nil {
		return score.Inputs{}, err
	}
	viewTimes, err := repository.ViewTimesSince(ctx, userID, consistencySince)
	if err != nil {
		return score.Inputs{}, err
	}

	days := make(map[int]bool)
	for _, t := range subTimes {
		days[streak.DayNumber(t, s.loc)] = true
	}
	for _, t := range viewTimes {
		days[streak.DayNumber(t, s.loc)] = true
	}

	return score.Inputs{
		BiasRatings: ratings,
		Submissions: responses,
		ActiveDays:  len(days),
	}, nil
}

func snapshotView(snap *models.EchoScoreSnapshot) EchoScoreView {
	return EchoScoreView{
		Total: snap.Total,
		Components: score.Components{
			Diversity:   snap.Diversity,
			Accuracy:    snap.Accuracy,
			SwitchSpeed: snap.SwitchSpeed,
			Consistency: snap.Consistency,
			Improvement: snap.Improvement,
		},
		ScoreDate: snap.ScoreDate,
		Persisted: true,
	}
}
