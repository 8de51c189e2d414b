package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account in the training app. Passwords are stored as bcrypt
// hashes; the plaintext never leaves the auth handler.
type User struct {
	ID               uint   `gorm:"primaryKey"`
	Email            string `gorm:"size:255;uniqueIndex;not null"`
	Password         string `gorm:"size:255;not null"`
	FirstName        string `gorm:"size:100"`
	LastName         string `gorm:"size:100"`
	RemindersEnabled bool   `gorm:"default:false"`
	ReminderTime     string `gorm:"size:5"` // "HH:MM" in UTC
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// DisplayName returns the user's name for greetings and the leaderboard,
// falling back to the mailbox part of the email when no name is set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
