package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"ai-quizzer/cmd/seed_quizzes/internal/seedmodels"
	"ai-quizzer/internal/config"
	"ai-quizzer/internal/database"
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/logger"
	"ai-quizzer/internal/repository"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const seedAuthor = "seed"

func main() {
	seedFilePath := flag.String("file", "configs/seed_data/sample_quizzes.json", "seed quizzes JSON file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting quiz seeding process...")
	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var seedQuizzes []seedmodels.SeedQuiz
	if err := json.Unmarshal(byteValue, &seedQuizzes); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("quizzes_loaded", len(seedQuizzes)))

	failed := 0
	for _, sq := range seedQuizzes {
		if err := seedQuiz(ctx, db, log, sq); err != nil {
			failed++
			log.Error("Error seeding quiz, transaction rolled back", zap.String("title", sq.Title), zap.Error(err))
		}
	}
	log.Info("Quiz seeding process completed", zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(2)
	}
}

// buildQuiz validates every seed question. Unlike generated quizzes a single
// bad seed question rejects the whole quiz, since the file is hand-written.
func buildQuiz(sq seedmodels.SeedQuiz) (*domain.Quiz, error) {
	questions := make([]*domain.Question, 0, len(sq.Questions))
	for i, q := range sq.Questions {
		switch c := domain.ValidateGeneratedQuestion(i, q.Generated()).(type) {
		case domain.AcceptedQuestion:
			questions = append(questions, c.Question)
		case domain.RejectedQuestion:
			return nil, fmt.Errorf("question %d: %s", c.Index, c.Reason)
		}
	}
	quiz := domain.NewQuiz(sq.Title, sq.Subject, sq.GradeLevel, seedAuthor, questions)
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	return quiz, nil
}

func seedQuiz(ctx context.Context, db *sqlx.DB, log *zap.Logger, sq seedmodels.SeedQuiz) (err error) {
	quiz, err := buildQuiz(sq)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for quiz %s: %w", sq.Title, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = cErr
		}
	}()

	if err = repository.NewQuizDatabaseAdapter(tx).SaveQuiz(ctx, quiz); err != nil {
		return fmt.Errorf("failed to save quiz %s: %w", sq.Title, err)
	}
	log.Info("Seeded quiz",
		zap.String("quiz_id", quiz.ID),
		zap.String("title", quiz.Title),
		zap.Int("questions", len(quiz.Questions)))
	return nil
}
