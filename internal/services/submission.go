package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/evaluator"
	"github.com/jrf25906/perspective-app-sub000/internal/metrics"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
	"github.com/jrf25906/perspective-app-sub000/internal/streak"
)

// ErrChallengeNotFound is returned when a submission references a challenge
// id that does not exist.
var ErrChallengeNotFound = errors.New("challenge not found")

// StreakInfo reports the streak state after a submission.
type StreakInfo struct {
	CurrentStreak int  `json:"currentStreak"`
	LongestStreak int  `json:"longestStreak"`
	Maintained    bool `json:"maintained"`
	IsNewRecord   bool `json:"isNewRecord"`
}

// SubmitResult is everything the client learns from grading one answer.
type SubmitResult struct {
	IsCorrect  bool       `json:"isCorrect"`
	Feedback   string     `json:"feedback"`
	XPEarned   int        `json:"xpEarned"`
	StreakInfo StreakInfo `json:"streakInfo"`
}

// SubmissionService grades answers and records their effects: the submission
// row, the per-user aggregates and the streak.
type SubmissionService struct {
	log  *zap.Logger
	eval *evaluator.Evaluator
	loc  *time.Location
}

func NewSubmissionService(log *zap.Logger, eval *evaluator.Evaluator, loc *time.Location) *SubmissionService {
	return &SubmissionService{log: log, eval: eval, loc: loc}
}

// Submit grades one answer and persists it. Grading runs before any write,
// so an unknown challenge or malformed answer leaves no trace. The writes
// run in one transaction with the user's stats row locked FOR UPDATE;
// concurrent submissions for the same user serialize there, which keeps the
// streak's read-modify-write from double-counting.
func (s *SubmissionService) Submit(ctx context.Context, userID, challengeID uint, answer json.RawMessage, timeSpentSeconds int) (*SubmitResult, error) {
	ch, err := repository.GetChallengeByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	if timeSpentSeconds < 0 {
		timeSpentSeconds = 0
	}

	correct, err := s.eval.CheckAnswer(ch, answer)
	if err != nil {
		return nil, err
	}
	xp := s.eval.XP(ch, correct, timeSpentSeconds)
	feedback := s.eval.Feedback(ch, correct)

	now := time.Now().In(s.loc)
	sub := &models.Submission{
		UserID:           userID,
		ChallengeID:      ch.ID,
		ChallengeType:    ch.Type,
		Difficulty:       ch.Difficulty,
		Answer:           datatypes.JSON(answer),
		IsCorrect:        correct,
		TimeSpentSeconds: timeSpentSeconds,
		XPEarned:         xp,
		CreatedAt:        now,
	}

	var adv streak.Result
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repository.GetStatsForUpdateTx(tx, userID)
		if err != nil {
			return err
		}

		if err := repository.CreateSubmissionTx(tx, sub); err != nil {
			return err
		}

		adv = streak.Advance(st.LastSubmissionAt, now, st.CurrentStreak, st.LongestStreak, s.loc)

		byType, err := st.TypeBreakdown()
		if err != nil {
			return err
		}
		bt := byType[ch.Type]
		bt.Record(correct, timeSpentSeconds)
		byType[ch.Type] = bt
		if err := st.SetTypeBreakdown(byType); err != nil {
			return err
		}

		byDifficulty, err := st.DifficultyBreakdown()
		if err != nil {
			return err
		}
		bd := byDifficulty[ch.Difficulty]
		bd.Record(correct, timeSpentSeconds)
		byDifficulty[ch.Difficulty] = bd
		if err := st.SetDifficultyBreakdown(byDifficulty); err != nil {
			return err
		}

		st.TotalCompleted++
		if correct {
			st.TotalCorrect++
		}
		st.TotalXP += xp
		st.CurrentStreak = adv.CurrentStreak
		st.LongestStreak = adv.LongestStreak
		st.LastSubmissionAt = &now

		return repository.SaveStatsTx(tx, st)
	})
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsGraded.WithLabelValues(string(ch.Type), metrics.Verdict(correct)).Inc()
	s.log.Info("Submission graded",
		zap.Uint("userID", userID),
		zap.Uint("challengeID", challengeID),
		zap.String("type", string(ch.Type)),
		zap.Bool("correct", correct),
		zap.Int("xp", xp),
		zap.Int("streak", adv.CurrentStreak),
	)

	return &SubmitResult{
		IsCorrect: correct,
		Feedback:  feedback,
		XPEarned:  xp,
		StreakInfo: StreakInfo{
			CurrentStreak: adv.CurrentStreak,
			LongestStreak: adv.LongestStreak,
			Maintained:    adv.Maintained,
			IsNewRecord:   adv.IsNewRecord,
		},
	}, nil
}
