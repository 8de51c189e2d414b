package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
}

// ServerConfig holds server-related settings. Timezone fixes the calendar
// day used for streaks, daily selections and snapshots.
type ServerConfig struct {
	Port     string `mapstructure:"port"`
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the configured timezone.
func (s ServerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid server timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds settings for the leaderboard cache.
type RedisConfig struct {
	Addr                  string `mapstructure:"addr"`
	Password              string `mapstructure:"password"`
	DB                    int    `mapstructure:"db"`
	LeaderboardTTLMinutes int    `mapstructure:"leaderboard_ttl_minutes"`
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// EngineConfig groups the scoring and selection tuning. Every value has a
// production default; overrides exist so product experiments do not require
// a rebuild.
type EngineConfig struct {
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
	Selector  SelectorConfig  `mapstructure:"selector"`
	Score     ScoreConfig     `mapstructure:"score"`
}

// EvaluatorConfig holds answer grading knobs.
type EvaluatorConfig struct {
	BiasSwapThreshold  float64 `mapstructure:"bias_swap_threshold"`
	MinWordCount       int     `mapstructure:"min_word_count"`
	DefaultMinKeywords int     `mapstructure:"default_min_keywords"`
	PartialCreditRatio float64 `mapstructure:"partial_credit_ratio"`
	SpeedBonusRatio    float64 `mapstructure:"speed_bonus_ratio"`
	SpeedBonusWindow   float64 `mapstructure:"speed_bonus_window"`
}

// SelectorConfig holds adaptive selection knobs.
type SelectorConfig struct {
	AdvancedRate         float64 `mapstructure:"advanced_rate"`
	BeginnerRate         float64 `mapstructure:"beginner_rate"`
	MinRecentSubmissions int     `mapstructure:"min_recent_submissions"`
	WeakAreaRate         float64 `mapstructure:"weak_area_rate"`
	WeakAreaBias         float64 `mapstructure:"weak_area_bias"`
	RecentWindowDays     int     `mapstructure:"recent_window_days"`
}

// ScoreConfig holds Echo Score weights and windows.
type ScoreConfig struct {
	DiversityWeight   float64 `mapstructure:"diversity_weight"`
	AccuracyWeight    float64 `mapstructure:"accuracy_weight"`
	SwitchSpeedWeight float64 `mapstructure:"switch_speed_weight"`
	ConsistencyWeight float64 `mapstructure:"consistency_weight"`
	ImprovementWeight float64 `mapstructure:"improvement_weight"`

	DiversityWindowDays   int `mapstructure:"diversity_window_days"`
	SubmissionWindowDays  int `mapstructure:"submission_window_days"`
	ConsistencyWindowDays int `mapstructure:"consistency_window_days"`
	ImprovementMinSamples int `mapstructure:"improvement_min_samples"`

	SwitchFloorSeconds   float64 `mapstructure:"switch_floor_seconds"`
	SwitchCeilingSeconds float64 `mapstructure:"switch_ceiling_seconds"`
	NeutralScore         float64 `mapstructure:"neutral_score"`
}

// SchedulerConfig holds the background job settings. SnapshotTime is the
// HH:MM wall time (server timezone) at which daily Echo Score snapshots are
// written for users active that day.
type SchedulerConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SnapshotTime string `mapstructure:"snapshot_time"`
}

// CatalogConfig points at the seed files for challenges and content.
type CatalogConfig struct {
	ChallengesPath string `mapstructure:"challenges_path"`
	ContentPath    string `mapstructure:"content_path"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timezone", "UTC")

	// Database defaults
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "perspective")
	v.SetDefault("database.password", "perspective")
	v.SetDefault("database.dbname", "perspective")
	v.SetDefault("database.sslmode", "disable")

	// Redis defaults
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.leaderboard_ttl_minutes", 5)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "dev-only-secret-change-me")
	v.SetDefault("auth.token_ttl_hours", 72)
	v.SetDefault("auth.bcrypt_cost", 10)

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	// Answer grading
	v.SetDefault("engine.evaluator.bias_swap_threshold", 0.7)
	v.SetDefault("engine.evaluator.min_word_count", 50)
	v.SetDefault("engine.evaluator.default_min_keywords", 1)
	v.SetDefault("engine.evaluator.partial_credit_ratio", 0.3)
	v.SetDefault("engine.evaluator.speed_bonus_ratio", 1.2)
	v.SetDefault("engine.evaluator.speed_bonus_window", 0.5)

	// Adaptive selection
	v.SetDefault("engine.selector.advanced_rate", 0.8)
	v.SetDefault("engine.selector.beginner_rate", 0.4)
	v.SetDefault("engine.selector.min_recent_submissions", 3)
	v.SetDefault("engine.selector.weak_area_rate", 0.6)
	v.SetDefault("engine.selector.weak_area_bias", 0.6)
	v.SetDefault("engine.selector.recent_window_days", 7)

	// Echo Score weights and windows
	v.SetDefault("engine.score.diversity_weight", 0.25)
	v.SetDefault("engine.score.accuracy_weight", 0.25)
	v.SetDefault("engine.score.switch_speed_weight", 0.20)
	v.SetDefault("engine.score.consistency_weight", 0.15)
	v.SetDefault("engine.score.improvement_weight", 0.15)
	v.SetDefault("engine.score.diversity_window_days", 7)
	v.SetDefault("engine.score.submission_window_days", 30)
	v.SetDefault("engine.score.consistency_window_days", 14)
	v.SetDefault("engine.score.improvement_min_samples", 5)
	v.SetDefault("engine.score.switch_floor_seconds", 30)
	v.SetDefault("engine.score.switch_ceiling_seconds", 300)
	v.SetDefault("engine.score.neutral_score", 50)

	// Scheduler defaults
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.snapshot_time", "23:55")

	// Catalog defaults
	v.SetDefault("catalog.challenges_path", "config/challenges.yaml")
	v.SetDefault("catalog.content_path", "config/content.yaml")
}

// Init initializes the configuration with Viper. The hot-reload callback
// logs through the zap global, which the caller installs right after the
// real logger exists.
func Init(projectRoot string) error {
	// A local .env can supply PERSPECTIVE_* variables during development.
	// Missing files are fine; deployed environments set real env vars.
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))

	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("PERSPECTIVE") // e.g., PERSPECTIVE_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the initial configuration from the file.
	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal the config into our global Conf variable
	if err := v.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Set up a watch for configuration changes for hot-reloading
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		if err := v.Unmarshal(&Conf); err != nil {
			zap.L().Error("Error reloading configuration", zap.Error(err))
		}
	})

	return nil
}
