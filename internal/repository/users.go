package repository

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jrf25906/perspective-app-sub000/internal/config"
	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

func CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	cost := bcrypt.DefaultCost
	if config.Conf != nil && config.Conf.Auth.BcryptCost > 0 {
		cost = config.Conf.Auth.BcryptCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
	}
	result := database.DB.Create(user)
	return user, result.Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	return &user, result.Error
}

func UpdateUser(ctx context.Context, userID uint, firstName, lastName string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"first_name": firstName, "last_name": lastName}).Error
}

func UpdateUserPassword(ctx context.Context, userID uint, newPassword string) error {
	cost := bcrypt.DefaultCost
	if config.Conf != nil && config.Conf.Auth.BcryptCost > 0 {
		cost = config.Conf.Auth.BcryptCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), cost)
	if err != nil {
		return err
	}
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("password", string(hashedPassword)).Error
}

func TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", at).Error
}

// UpdateReminderPreferences updates a user's streak reminder settings.
func UpdateReminderPreferences(ctx context.Context, userID uint, enabled bool, reminderTime string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reminders_enabled": enabled,
			"reminder_time":     reminderTime,
		}).Error
}

// GetUsersForStreakReminder finds users whose reminder fires at the given
// HH:MM wall time.
func GetUsersForStreakReminder(reminderTime string) ([]models.User, error) {
	var users []models.User
	err := database.DB.Where("reminders_enabled = ? AND reminder_time = ?", true, reminderTime).
		Find(&users).Error
	return users, err
}
