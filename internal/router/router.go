package router

import (
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/handlers"
	"github.com/jrf25906/perspective-app-sub000/internal/metrics"
	"github.com/jrf25906/perspective-app-sub000/internal/services"
	"github.com/jrf25906/perspective-app-sub000/internal/utils"
)

// Services bundles everything the route handlers need.
type Services struct {
	Daily       *services.DailyChallengeService
	Submissions *services.SubmissionService
	Echo        *services.EchoScoreService
	Content     *services.ContentService
	Leaderboard *services.LeaderboardService
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(429, gin.H{"error": "too many requests, try again later"})
}

func Setup(log *zap.Logger, svc Services) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(metrics.Middleware())

	// Custom binding rule for "HH:MM" reminder times.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("remindertime", func(fl validator.FieldLevel) bool {
			return utils.IsValidReminderTime(fl.Field().String())
		})
	}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log)
	challengeHandler := handlers.NewChallengeHandler(log, svc.Daily, svc.Submissions)
	echoHandler := handlers.NewEchoScoreHandler(log, svc.Echo)
	profileHandler := handlers.NewProfileHandler(log)
	contentHandler := handlers.NewContentHandler(log, svc.Content)
	leaderboardHandler := handlers.NewLeaderboardHandler(log, svc.Leaderboard)
	healthHandler := handlers.NewHealthHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", limiter, authHandler.Register)
			auth.POST("/login", limiter, authHandler.Login)
		}

		authorized := api.Group("/")
		authorized.Use(AuthRequired())
		{
			challengeRoutes := authorized.Group("/challenge")
			{
				challengeRoutes.GET("/today", challengeHandler.Today)
				challengeRoutes.POST("/submit", challengeHandler.Submit)
			}

			echoRoutes := authorized.Group("/echo-score")
			{
				echoRoutes.GET("", echoHandler.Get)
				echoRoutes.POST("/snapshot", echoHandler.Save)
				echoRoutes.GET("/history", echoHandler.History)
			}

			profileRoutes := authorized.Group("/profile")
			{
				profileRoutes.GET("", profileHandler.Me)
				profileRoutes.PUT("/info", profileHandler.UpdateInfo)
				profileRoutes.PUT("/password", profileHandler.UpdatePassword)
				profileRoutes.PUT("/reminders", profileHandler.UpdateReminders)
			}

			contentRoutes := authorized.Group("/content")
			{
				contentRoutes.GET("", contentHandler.Feed)
				contentRoutes.POST("/:id/view", contentHandler.RecordView)
			}

			authorized.GET("/leaderboard", leaderboardHandler.Top)
		}
	}

	return router
}
