package service

import (
	"context"
	"sync"
	"time"

	"ai-quizzer/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) SaveHint(ctx context.Context, quizID, questionID, hint string) (bool, error) {
	args := m.Called(ctx, quizID, questionID, hint)
	return args.Bool(0), args.Error(1)
}

// --- MockSubmissionRepository ---
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) FindHistory(ctx context.Context, studentID string, filter domain.HistoryFilter) ([]*domain.Submission, error) {
	args := m.Called(ctx, studentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn directly unless an error is configured.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuestions(ctx context.Context, req domain.QuizGenerationRequest) ([]domain.GeneratedQuestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuestion), args.Error(1)
}

func (m *MockQuizGenerator) GenerateHint(ctx context.Context, question *domain.Question) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *MockQuizGenerator) GenerateSuggestions(ctx context.Context, mistakes []domain.IncorrectAnswerDetail) ([]string, error) {
	args := m.Called(ctx, mistakes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuizGenerator) Name() string {
	return "mock-llm"
}

// --- MockNotifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendQuizResults(ctx context.Context, n domain.ResultNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotifier) SendTest(ctx context.Context, to string) error {
	args := m.Called(ctx, to)
	return args.Error(0)
}

func (m *MockNotifier) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// --- memoryCache ---
// In-memory domain.Cache used where exact call expectations would only add noise.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

// --- stubSuggestions ---
type stubSuggestions struct {
	out   []string
	calls int
}

func (s *stubSuggestions) Suggest(context.Context, []domain.IncorrectAnswerDetail) []string {
	s.calls++
	return s.out
}

// --- recordingNotifications ---
type recordingNotifications struct {
	sent []domain.ResultNotification
}

func (r *recordingNotifications) NotifyResults(_ context.Context, n domain.ResultNotification) bool {
	r.sent = append(r.sent, n)
	return true
}

func (r *recordingNotifications) SendTestEmail(context.Context, string) error { return nil }

func (r *recordingNotifications) Wait() {}
