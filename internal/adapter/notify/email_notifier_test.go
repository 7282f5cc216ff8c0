package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m...)
	return f.err
}

func sampleSubmission(score float64) *domain.Submission {
	return &domain.Submission{
		ID:                  "01SUB",
		QuizTitle:           "Fractions",
		Subject:             "Maths",
		GradeLevel:          "5",
		Score:               score,
		TotalQuestions:      4,
		CorrectAnswersCount: 3,
		CompletedDate:       time.Date(2026, 3, 10, 14, 5, 0, 0, time.UTC),
	}
}

func TestNewEmailNotifier_DisabledWithoutHost(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{User: "me@example.com"})
	assert.False(t, n.Enabled())
	assert.ErrorIs(t, n.SendTest(context.Background(), "x@example.com"), ErrDisabled)
	assert.ErrorIs(t, n.SendQuizResults(context.Background(), domain.ResultNotification{}), ErrDisabled)

	n = NewEmailNotifier(config.EmailConfig{Host: "smtp.example.com", Port: 587, User: "me@example.com"})
	assert.True(t, n.Enabled())
	assert.Equal(t, "me@example.com", n.from)
}

func TestSendQuizResults(t *testing.T) {
	sender := &fakeSender{}
	n := newEmailNotifierWithSender(sender, "quizzer@example.com", time.Second)

	err := n.SendQuizResults(context.Background(), domain.ResultNotification{
		To:          "student@example.com",
		Submission:  sampleSubmission(75),
		Suggestions: []string{"Review equivalent fractions."},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, []string{"Quiz Results: Fractions"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"student@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"quizzer@example.com"}, m.GetHeader("From"))
}

func TestSendQuizResults_RequiresRecipient(t *testing.T) {
	n := newEmailNotifierWithSender(&fakeSender{}, "q@example.com", 0)
	assert.Error(t, n.SendQuizResults(context.Background(), domain.ResultNotification{Submission: sampleSubmission(10)}))
}

func TestSend_ErrorAndTimeout(t *testing.T) {
	n := newEmailNotifierWithSender(&fakeSender{err: errors.New("535 auth failed")}, "q@example.com", time.Second)
	err := n.SendTest(context.Background(), "a@example.com")
	assert.ErrorContains(t, err, "535 auth failed")

	block := make(chan struct{})
	defer close(block)
	n = newEmailNotifierWithSender(&fakeSender{block: block}, "q@example.com", 20*time.Millisecond)
	err = n.SendTest(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSendTest(t *testing.T) {
	sender := &fakeSender{}
	n := newEmailNotifierWithSender(sender, "q@example.com", 0)
	require.NoError(t, n.SendTest(context.Background(), "a@example.com"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{testSubject}, sender.sent[0].GetHeader("Subject"))
}

func TestRenderResults(t *testing.T) {
	tests := []struct {
		score       float64
		performance string
		color       string
		scoreText   string
	}{
		{100, "Excellent work!", "#4CAF50", "100%"},
		{80, "Excellent work!", "#4CAF50", "80%"},
		{66.67, "Good job!", "#FF9800", "66.67%"},
		{25, "Keep practicing!", "#F44336", "25%"},
	}
	for _, tt := range tests {
		html, text, err := renderResults(domain.ResultNotification{Submission: sampleSubmission(tt.score)})
		require.NoError(t, err)
		assert.Contains(t, html, tt.performance)
		assert.Contains(t, html, tt.color)
		assert.Contains(t, text, "Score: "+tt.scoreText+" (3/4)")
		assert.NotContains(t, text, "Suggestions")
	}

	html, text, err := renderResults(domain.ResultNotification{
		Submission:  sampleSubmission(50),
		Suggestions: []string{"Use <b>visual</b> models.", "Practice daily."},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Suggestion 2:</strong> Practice daily.")
	assert.Contains(t, html, "Use &lt;b&gt;visual&lt;/b&gt; models.")
	assert.Contains(t, text, "1. Use <b>visual</b> models.\n2. Practice daily.\n")
	assert.Contains(t, text, "Completed: 2026-03-10 14:05 UTC")
}
