// @title AI Quizzer API
// @version 1.0
// @description AI generated quizzes with grading, retries, history, hints and result emails.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "ai-quizzer/cmd/api/docs"
	"ai-quizzer/internal/adapter"
	"ai-quizzer/internal/adapter/notify"
	"ai-quizzer/internal/adapter/quizgen"
	"ai-quizzer/internal/cache"
	"ai-quizzer/internal/config"
	"ai-quizzer/internal/database"
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/handler"
	"ai-quizzer/internal/logger"
	"ai-quizzer/internal/metrics"
	"ai-quizzer/internal/middleware"
	"ai-quizzer/internal/repository"
	"ai-quizzer/internal/service"
	"ai-quizzer/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = middleware.StatusFor(err)
		}
		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	applied, err := database.RunMigrations(startupCtx, db, cfg.DB.Driver)
	cancelStartup()
	if err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Migrations up to date", zap.Int("applied", applied))

	// Initialize repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	submissionRepository := repository.NewSubmissionDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Redis is optional; without it quizzes are read straight from the database.
	var quizCacheBackend domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, quiz cache disabled", zap.Error(err))
	} else if redisClient != nil {
		defer redisClient.Close()
		quizCacheBackend = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	}
	quizCache := service.NewQuizCacheService(quizCacheBackend, cfg.CacheTTLs.Quiz)

	generator, err := quizgen.NewFromConfig(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	appLogger.Info("Quiz generator initialized", zap.String("generator", generator.Name()))

	notifier := notify.NewEmailNotifier(cfg.Email)

	// Initialize services
	quizService := service.NewQuizService(quizRepository, txManager, generator, quizCache)
	suggestionService := service.NewSuggestionService(generator, cfg.LLM.SuggestionTimeout)
	notificationService := service.NewNotificationService(notifier, cfg.Email.SendTimeout)
	submissionService := service.NewSubmissionService(quizRepository, submissionRepository, quizCache, suggestionService, notificationService)
	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Init(registry)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		status := fiber.Map{"status": "ok", "database": "ok"}
		code := fiber.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status["status"], status["database"] = "degraded", err.Error()
			code = fiber.StatusServiceUnavailable
		}
		if quizCacheBackend != nil {
			status["cache"] = "ok"
			if err := quizCacheBackend.Ping(ctx); err != nil {
				status["cache"] = err.Error()
			}
		}
		return c.Status(code).JSON(status)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", swagger.HandlerDefault)

	validator := validation.NewValidator()
	handler.RegisterRoutes(app, handler.Routes{
		Auth:        authService,
		Quizzes:     handler.NewQuizHandler(quizService, validator),
		Submissions: handler.NewSubmissionHandler(submissionService, notificationService, validator),
		Validation:  middleware.NewValidationMiddleware(validator),
		RateLimit:   cfg.RateLimit,
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let queued result emails finish before the process exits.
	drained := make(chan struct{})
	go func() {
		notificationService.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		appLogger.Warn("Pending notifications abandoned at shutdown")
	}
	appLogger.Info("Server exited gracefully")
}
