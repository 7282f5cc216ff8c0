package service

import (
	"context"
	"sync"
	"time"

	"ai-quizzer/internal/dto"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchItem describes one quiz to generate in a batch run.
type BatchItem struct {
	Title        string `json:"title"`
	Subject      string `json:"subject"`
	GradeLevel   string `json:"gradeLevel"`
	NumQuestions int    `json:"numQuestions"`
}

// BatchReport summarizes a batch run.
type BatchReport struct {
	QuizIDs []string
	Failed  int
}

// BatchService generates many quizzes in one run.
type BatchService interface {
	GenerateQuizzes(ctx context.Context, items []BatchItem) (BatchReport, error)
}

type batchService struct {
	quizService QuizService
	concurrency int
	logger      *zap.Logger
}

// NewBatchService creates a new instance of batchService. concurrency caps
// the number of generator calls in flight.
func NewBatchService(quizService QuizService, concurrency int, logger *zap.Logger) BatchService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &batchService{quizService: quizService, concurrency: concurrency, logger: logger}
}

// GenerateQuizzes generates every item, logging and skipping failures. It
// only returns an error when ctx is cancelled.
func (s *batchService) GenerateQuizzes(ctx context.Context, items []BatchItem) (BatchReport, error) {
	s.logger.Info("Starting batch quiz generation", zap.Int("items", len(items)), zap.Time("start_time", time.Now()))

	var (
		mu     sync.Mutex
		report BatchReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			quiz, err := s.quizService.GenerateQuiz(gctx, &dto.GenerateQuizRequest{
				Title:        item.Title,
				Subject:      item.Subject,
				GradeLevel:   item.GradeLevel,
				NumQuestions: item.NumQuestions,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				s.logger.Error("Failed to generate quiz",
					zap.String("title", item.Title),
					zap.String("subject", item.Subject),
					zap.Error(err))
				return nil
			}
			report.QuizIDs = append(report.QuizIDs, quiz.ID)
			s.logger.Info("Generated quiz",
				zap.String("quiz_id", quiz.ID),
				zap.String("title", quiz.Title),
				zap.Int("questions", len(quiz.Questions)))
			return nil
		})
	}

	err := g.Wait()
	s.logger.Info("Batch quiz generation finished",
		zap.Int("generated", len(report.QuizIDs)),
		zap.Int("failed", report.Failed),
		zap.Time("end_time", time.Now()))
	return report, err
}
