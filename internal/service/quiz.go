package service

import (
	"context"
	"strings"

	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/logger"
	"ai-quizzer/internal/metrics"
	"ai-quizzer/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	GetQuizByID(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	GetOrGenerateHint(ctx context.Context, quizID, questionID string) (*dto.HintResponse, error)
}

type quizService struct {
	repo      domain.QuizRepository
	txManager domain.TransactionManager
	generator domain.QuizGenerator
	quizCache QuizCacheService
	hints     singleflight.Group
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	txManager domain.TransactionManager,
	generator domain.QuizGenerator,
	quizCache QuizCacheService,
) QuizService {
	if quizCache == nil {
		quizCache = noopQuizCacheService{}
	}
	return &quizService{
		repo:      repo,
		txManager: txManager,
		generator: generator,
		quizCache: quizCache,
	}
}

// GenerateQuiz asks the generator for questions, drops the ones that fail
// structural validation and stores the rest as a new quiz.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	l := logger.Get()
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = dto.DefaultNumQuestions
	}

	generated, err := s.generator.GenerateQuestions(ctx, domain.QuizGenerationRequest{
		Subject:      req.Subject,
		GradeLevel:   req.GradeLevel,
		NumQuestions: numQuestions,
	})
	metrics.LLMCalls.WithLabelValues("quiz", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, domain.NewUpstreamError("Error generating quiz from AI service", err)
	}

	questions := make([]*domain.Question, 0, len(generated))
	for i, g := range generated {
		switch c := domain.ValidateGeneratedQuestion(i, g).(type) {
		case domain.AcceptedQuestion:
			questions = append(questions, c.Question)
		case domain.RejectedQuestion:
			metrics.RejectedQuestions.Inc()
			l.Warn("dropping generated question", zap.Int("index", c.Index), zap.String("reason", c.Reason))
		}
	}
	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}
	if len(questions) == 0 {
		return nil, domain.NewUpstreamError("AI service returned no usable questions", nil)
	}

	quiz := domain.NewQuiz(
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Subject),
		strings.TrimSpace(req.GradeLevel),
		s.generator.Name(),
		questions,
	)
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.SaveQuiz(txCtx, quiz)
	})
	if err != nil {
		l.Error("failed to save generated quiz", zap.Error(err))
		return nil, domain.NewPersistenceError("failed to save quiz", err)
	}

	metrics.QuizzesGenerated.Inc()
	s.quizCache.Put(ctx, quiz)
	l.Info("quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.String("subject", quiz.Subject),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("rejected", len(generated)-len(questions)))
	return dto.ToQuizResponse(quiz), nil
}

// GetQuizByID implements QuizService
func (s *quizService) GetQuizByID(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	if !util.IsULID(quizID) {
		return nil, domain.NewValidationError("invalid quiz id").WithContext("quizId", quizID)
	}
	quiz, err := loadQuiz(ctx, s.repo, s.quizCache, quizID)
	if err != nil {
		return nil, err
	}
	return dto.ToQuizResponse(quiz), nil
}

// GetOrGenerateHint returns the stored hint or generates, stores and returns
// a new one. Concurrent requests for the same question share one generator
// call; if another writer stored a hint first, that hint wins.
func (s *quizService) GetOrGenerateHint(ctx context.Context, quizID, questionID string) (*dto.HintResponse, error) {
	if !util.IsULID(quizID) {
		return nil, domain.NewValidationError("invalid quiz id").WithContext("quizId", quizID)
	}
	quiz, err := loadQuiz(ctx, s.repo, s.quizCache, quizID)
	if err != nil {
		return nil, err
	}
	question := quiz.QuestionByID(questionID)
	if question == nil {
		return nil, domain.NewNotFoundError("Question not found in this quiz.").WithContext("questionId", questionID)
	}
	if question.Hint != "" {
		return &dto.HintResponse{Hint: question.Hint}, nil
	}

	v, err, _ := s.hints.Do(quizID+"/"+questionID, func() (interface{}, error) {
		return s.generateHint(ctx, quizID, question)
	})
	if err != nil {
		return nil, err
	}
	return &dto.HintResponse{Hint: v.(string)}, nil
}

func (s *quizService) generateHint(ctx context.Context, quizID string, question *domain.Question) (string, error) {
	l := logger.Get()

	hint, err := s.generator.GenerateHint(ctx, question)
	metrics.LLMCalls.WithLabelValues("hint", metrics.Outcome(err)).Inc()
	if err != nil {
		return "", domain.NewUpstreamError("Error generating hint from AI service", err)
	}
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", domain.NewNotFoundError("No hint available or could be generated for this question.")
	}

	stored, err := s.repo.SaveHint(ctx, quizID, question.ID, hint)
	if err != nil {
		// The hint is still useful to this caller; the next request retries the write.
		l.Error("failed to store generated hint", zap.Error(err), zap.String("question_id", question.ID))
		return hint, nil
	}
	s.quizCache.Invalidate(ctx, quizID)

	if !stored {
		fresh, err := s.repo.GetQuizByID(ctx, quizID)
		if err == nil && fresh != nil {
			if q := fresh.QuestionByID(question.ID); q != nil && q.Hint != "" {
				return q.Hint, nil
			}
		}
	}
	return hint, nil
}
