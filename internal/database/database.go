package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jrf25906/perspective-app-sub000/internal/config"
	logging "github.com/jrf25906/perspective-app-sub000/internal/logging"
	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port, dbConf.SSLMode)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	RunMigrations(log)
}

// RunMigrations creates or updates the schema. GORM's AutoMigrate handles
// tables, columns, foreign keys and tagged indexes; composite indexes beyond
// its reach are created explicitly.
func RunMigrations(log *zap.Logger) {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Submission{},
		&models.UserChallengeStats{},
		&models.DailyChallengeSelection{},
		&models.EchoScoreSnapshot{},
		&models.ContentItem{},
		&models.ContentActivity{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// The selector excludes recent attempts per user and the score engine
	// scans per-user windows; both hit (user_id, created_at DESC) constantly.
	submissionsIndex := `CREATE INDEX IF NOT EXISTS idx_submissions_user_recent ON submissions (user_id, created_at DESC);`
	if err := DB.Exec(submissionsIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on submissions table", zap.Error(err))
	}
	activityIndex := `CREATE INDEX IF NOT EXISTS idx_content_activity_user_recent ON content_activities (user_id, viewed_at DESC);`
	if err := DB.Exec(activityIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on content activity table", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
