package cmd

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/config"
	"github.com/jrf25906/perspective-app-sub000/internal/database"
	"github.com/jrf25906/perspective-app-sub000/internal/evaluator"
	logger "github.com/jrf25906/perspective-app-sub000/internal/logging"
	"github.com/jrf25906/perspective-app-sub000/internal/router"
	"github.com/jrf25906/perspective-app-sub000/internal/score"
	"github.com/jrf25906/perspective-app-sub000/internal/selector"
	"github.com/jrf25906/perspective-app-sub000/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// bootstrap initializes config, logging and the database, in that order. The
// zap global is replaced so config hot-reload events reach the real logger.
func bootstrap() (*zap.Logger, error) {
	if err := config.Init(projectRoot); err != nil {
		return nil, err
	}

	log, err := logger.Init(projectRoot, config.Conf.Logging)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)

	database.Init(log)
	return log, nil
}

func runServe() error {
	log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	loc, err := config.Conf.Server.Location()
	if err != nil {
		log.Fatal("Invalid server timezone", zap.Error(err))
	}

	database.InitRedis(log)

	scoreCfg := scoreConfig(config.Conf.Engine.Score)
	if err := scoreCfg.Validate(); err != nil {
		log.Fatal("Invalid echo score configuration", zap.Error(err))
	}
	selCfg := selectorConfig(config.Conf.Engine.Selector)

	eval := evaluator.New(evaluatorConfig(config.Conf.Engine.Evaluator))
	sel := selector.New(selCfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	calc := score.New(scoreCfg)

	echoService := services.NewEchoScoreService(log, calc, scoreCfg, loc)
	svc := router.Services{
		Daily:       services.NewDailyChallengeService(log, sel, selCfg, loc),
		Submissions: services.NewSubmissionService(log, eval, loc),
		Echo:        echoService,
		Content:     services.NewContentService(log),
		Leaderboard: services.NewLeaderboardService(log, time.Duration(config.Conf.Redis.LeaderboardTTLMinutes)*time.Minute),
	}

	if config.Conf.Scheduler.Enabled {
		emailService := services.NewEmailService(log)
		scheduler := services.NewScheduler(log, emailService, echoService, loc, config.Conf.Scheduler.SnapshotTime)
		scheduler.Start()
	}

	r := router.Setup(log, svc)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
	return nil
}

func evaluatorConfig(c config.EvaluatorConfig) evaluator.Config {
	return evaluator.Config{
		BiasSwapThreshold:  c.BiasSwapThreshold,
		MinWordCount:       c.MinWordCount,
		DefaultMinKeywords: c.DefaultMinKeywords,
		PartialCreditRatio: c.PartialCreditRatio,
		SpeedBonusRatio:    c.SpeedBonusRatio,
		SpeedBonusWindow:   c.SpeedBonusWindow,
	}
}

func selectorConfig(c config.SelectorConfig) selector.Config {
	return selector.Config{
		AdvancedRate:         c.AdvancedRate,
		BeginnerRate:         c.BeginnerRate,
		MinRecentSubmissions: c.MinRecentSubmissions,
		WeakAreaRate:         c.WeakAreaRate,
		WeakAreaBias:         c.WeakAreaBias,
		RecentWindowDays:     c.RecentWindowDays,
	}
}

func scoreConfig(c config.ScoreConfig) score.Config {
	return score.Config{
		DiversityWeight:       c.DiversityWeight,
		AccuracyWeight:        c.AccuracyWeight,
		SwitchSpeedWeight:     c.SwitchSpeedWeight,
		ConsistencyWeight:     c.ConsistencyWeight,
		ImprovementWeight:     c.ImprovementWeight,
		DiversityWindowDays:   c.DiversityWindowDays,
		SubmissionWindowDays:  c.SubmissionWindowDays,
		ConsistencyWindowDays: c.ConsistencyWindowDays,
		ImprovementMinSamples: c.ImprovementMinSamples,
		SwitchFloorSeconds:    c.SwitchFloorSeconds,
		SwitchCeilingSeconds:  c.SwitchCeilingSeconds,
		NeutralScore:          c.NeutralScore,
	}
}
