package service

import (
	"context"
	"errors"
	"time"

	"ai-quizzer/internal/cache"
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/logger"

	"go.uber.org/zap"
)

// ErrQuizNotCached is returned by QuizCacheService.Get on a miss.
var ErrQuizNotCached = errors.New("quiz not found in cache")

// QuizCacheService is a read-through cache of stored quizzes. Cache errors
// never fail a request; callers fall back to the repository.
type QuizCacheService interface {
	Put(ctx context.Context, quiz *domain.Quiz)
	Get(ctx context.Context, quizID string) (*domain.Quiz, error)
	Invalidate(ctx context.Context, quizID string)
}

type quizCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewQuizCacheService returns a no-op implementation when c is nil.
func NewQuizCacheService(c domain.Cache, ttl time.Duration) QuizCacheService {
	if c == nil {
		logger.Get().Warn("quiz cache disabled, no cache backend configured")
		return noopQuizCacheService{}
	}
	return &quizCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *quizCacheServiceImpl) Put(ctx context.Context, quiz *domain.Quiz) {
	key := cache.QuizKey(quiz.ID)
	if err := cache.SetJSON(ctx, s.cache, key, quiz, s.ttl); err != nil {
		logger.Get().Warn("failed to cache quiz", zap.Error(err), zap.String("key", key))
	}
}

func (s *quizCacheServiceImpl) Get(ctx context.Context, quizID string) (*domain.Quiz, error) {
	key := cache.QuizKey(quizID)
	var quiz domain.Quiz
	if err := cache.GetJSON(ctx, s.cache, key, &quiz); err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("quiz cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil, ErrQuizNotCached
	}
	return &quiz, nil
}

func (s *quizCacheServiceImpl) Invalidate(ctx context.Context, quizID string) {
	key := cache.QuizKey(quizID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("failed to invalidate cached quiz", zap.Error(err), zap.String("key", key))
	}
}

type noopQuizCacheService struct{}

func (noopQuizCacheService) Put(context.Context, *domain.Quiz) {}

func (noopQuizCacheService) Get(context.Context, string) (*domain.Quiz, error) {
	return nil, ErrQuizNotCached
}

func (noopQuizCacheService) Invalidate(context.Context, string) {}

// loadQuiz reads a quiz through the cache. A missing quiz yields NotFound.
func loadQuiz(ctx context.Context, repo domain.QuizRepository, quizCache QuizCacheService, quizID string) (*domain.Quiz, error) {
	if quiz, err := quizCache.Get(ctx, quizID); err == nil {
		return quiz, nil
	}

	quiz, err := repo.GetQuizByID(ctx, quizID)
	if err != nil {
		logger.Get().Error("failed to load quiz", zap.Error(err), zap.String("quiz_id", quizID))
		return nil, domain.NewPersistenceError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found").WithContext("quizId", quizID)
	}
	quizCache.Put(ctx, quiz)
	return quiz, nil
}
