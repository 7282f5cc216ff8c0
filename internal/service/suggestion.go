package service

import (
	"context"
	"time"

	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/logger"
	"ai-quizzer/internal/metrics"

	"go.uber.org/zap"
)

// SuggestionService turns a student's mistakes into improvement tips.
// It never fails: any generator problem yields nil.
type SuggestionService interface {
	Suggest(ctx context.Context, incorrect []domain.IncorrectAnswerDetail) []string
}

type suggestionService struct {
	generator domain.QuizGenerator
	timeout   time.Duration
}

// NewSuggestionService returns a service that gives up after timeout.
// A zero timeout leaves the call bounded only by ctx.
func NewSuggestionService(generator domain.QuizGenerator, timeout time.Duration) SuggestionService {
	return &suggestionService{generator: generator, timeout: timeout}
}

func (s *suggestionService) Suggest(ctx context.Context, incorrect []domain.IncorrectAnswerDetail) []string {
	if len(incorrect) == 0 || s.generator == nil {
		return nil
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	suggestions, err := s.generator.GenerateSuggestions(ctx, incorrect)
	metrics.LLMCalls.WithLabelValues("suggestions", metrics.Outcome(err)).Inc()
	if err != nil {
		logger.Get().Warn("improvement suggestions unavailable",
			zap.Error(err),
			zap.Int("incorrect", len(incorrect)))
		return nil
	}
	if len(suggestions) == 0 {
		return nil
	}
	return suggestions
}
