package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

// EmailService is a placeholder for a real email sending service.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendStreakReminder simulates sending a streak reminder email.
func (s *EmailService) SendStreakReminder(user models.User, currentStreak int) {
	s.log.Info("Sending streak reminder email",
		zap.String("to", user.Email),
		zap.Int("currentStreak", currentStreak),
	)

	subject := "Reminder to complete today's challenge"
	if currentStreak > 0 {
		subject = fmt.Sprintf("Your %d-day streak is on the line", currentStreak)
	}
	// In a real application, you would use an SMTP client like go-mail
	// to send a templated HTML email here. // TODO
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: %s\nHi %s,\nComplete today's challenge to keep your streak going.\n\n", user.Email, subject, user.DisplayName())
}
