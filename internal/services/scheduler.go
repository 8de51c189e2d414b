package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
)

// Scheduler drives the two background duties: streak reminder emails for
// users who have not played today, and the nightly Echo Score snapshot for
// everyone active today.
type Scheduler struct {
	log          *zap.Logger
	emailService *EmailService
	echoService  *EchoScoreService
	loc          *time.Location
	snapshotTime string // "HH:MM" wall time in loc
}

func NewScheduler(log *zap.Logger, emailService *EmailService, echoService *EchoScoreService, loc *time.Location, snapshotTime string) *Scheduler {
	return &Scheduler{
		log:          log,
		emailService: emailService,
		echoService:  echoService,
		loc:          loc,
		snapshotTime: snapshotTime,
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting background scheduler...",
		zap.String("snapshot_time", s.snapshotTime))
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runReminderCheck()
			s.runSnapshotJob()
		}
	}()
}

func (s *Scheduler) runReminderCheck() {
	// Reminder times are stored as UTC wall times in the DB.
	currentTime := time.Now().UTC().Format("15:04")
	s.log.Debug("Running reminder check", zap.String("utc_time", currentTime))

	users, err := repository.GetUsersForStreakReminder(currentTime)
	if err != nil {
		s.log.Error("Failed to get users for streak reminder", zap.Error(err))
		return
	}

	for _, user := range users {
		played, err := s.hasSubmittedToday(user.ID)
		if err != nil {
			s.log.Error("Failed to check submission status", zap.Uint("userID", user.ID), zap.Error(err))
			continue
		}

		if !played {
			go s.sendReminder(user)
		}
	}
}

func (s *Scheduler) hasSubmittedToday(userID uint) (bool, error) {
	now := time.Now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	count, err := repository.CountSubmissionsBetween(context.Background(), userID, dayStart, now)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Scheduler) sendReminder(user models.User) {
	currentStreak := 0
	if st, err := repository.GetStats(context.Background(), user.ID); err == nil {
		currentStreak = st.CurrentStreak
	}
	s.emailService.SendStreakReminder(user, currentStreak)
}

// runSnapshotJob persists an Echo Score snapshot for every user active
// today. The unique (user, date) index on snapshots makes reruns and double
// ticks no-ops.
func (s *Scheduler) runSnapshotJob() {
	now := time.Now().In(s.loc)
	if now.Format("15:04") != s.snapshotTime {
		return
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	userIDs, err := repository.UserIDsActiveBetween(context.Background(), dayStart, now)
	if err != nil {
		s.log.Error("Failed to list active users for snapshots", zap.Error(err))
		return
	}

	saved := 0
	for _, id := range userIDs {
		if _, err := s.echoService.Save(context.Background(), id); err != nil {
			s.log.Error("Failed to save echo score snapshot", zap.Uint("userID", id), zap.Error(err))
			continue
		}
		saved++
	}
	s.log.Info("Nightly snapshot job finished",
		zap.Int("active_users", len(userIDs)),
		zap.Int("saved", saved),
	)
}
