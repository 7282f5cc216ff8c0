package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ai-quizzer/internal/adapter"
	"ai-quizzer/internal/adapter/quizgen"
	"ai-quizzer/internal/cache"
	"ai-quizzer/internal/config"
	"ai-quizzer/internal/database"
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/logger"
	"ai-quizzer/internal/repository"
	"ai-quizzer/internal/service"

	"go.uber.org/zap"
)

func main() {
	planPath := flag.String("plan", "configs/batch/quiz_plan.json", "JSON file listing the quizzes to generate")
	concurrency := flag.Int("concurrency", 2, "generator calls in flight")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Batch process starting up...", zap.String("plan", *planPath))

	raw, err := os.ReadFile(*planPath)
	if err != nil {
		log.Fatal("Failed to read batch plan", zap.Error(err))
	}
	var items []service.BatchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Fatal("Failed to parse batch plan", zap.Error(err))
	}

	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Cache Adapter
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, generated quizzes will not be pre-cached", zap.Error(err))
	} else if redisClient != nil {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	generator, err := quizgen.NewFromConfig(cfg.LLM)
	if err != nil {
		log.Fatal("Failed to initialize QuizGenerator", zap.Error(err))
	}

	quizService := service.NewQuizService(
		repository.NewQuizDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		generator,
		service.NewQuizCacheService(cacheAdapter, cfg.CacheTTLs.Quiz),
	)
	batchSvc := service.NewBatchService(quizService, *concurrency, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := batchSvc.GenerateQuizzes(ctx, items)
	if err != nil {
		log.Fatal("Batch process interrupted", zap.Error(err))
	}
	log.Info("Batch process completed",
		zap.Strings("quiz_ids", report.QuizIDs),
		zap.Int("failed", report.Failed))
	if report.Failed > 0 {
		os.Exit(2)
	}
}
