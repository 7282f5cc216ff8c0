package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-quizzer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotifyResults_DispatchesAsync(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Enabled").Return(true)
	note := domain.ResultNotification{To: "kid@example.com", Submission: &domain.Submission{ID: "S1", Score: 40}}
	notifier.On("SendQuizResults", mock.Anything, note).Return(nil)

	svc := NewNotificationService(notifier, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	queued := svc.NotifyResults(ctx, note)
	cancel() // the response is gone; delivery must continue
	svc.Wait()

	assert.True(t, queued)
	notifier.AssertExpectations(t)
}

func TestNotifyResults_FailureIsSwallowed(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Enabled").Return(true)
	notifier.On("SendQuizResults", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := NewNotificationService(notifier, time.Second)
	assert.True(t, svc.NotifyResults(context.Background(), domain.ResultNotification{To: "a@b.c", Submission: &domain.Submission{ID: "S"}}))
	svc.Wait()
	notifier.AssertNumberOfCalls(t, "SendQuizResults", 1)
}

func TestNotifyResults_NotQueued(t *testing.T) {
	disabled := new(MockNotifier)
	disabled.On("Enabled").Return(false)
	svc := NewNotificationService(disabled, time.Second)
	assert.False(t, svc.NotifyResults(context.Background(), domain.ResultNotification{To: "a@b.c", Submission: &domain.Submission{}}))

	enabled := new(MockNotifier)
	enabled.On("Enabled").Return(true)
	svc = NewNotificationService(enabled, time.Second)
	assert.False(t, svc.NotifyResults(context.Background(), domain.ResultNotification{Submission: &domain.Submission{}}))
	svc.Wait()
	enabled.AssertNotCalled(t, "SendQuizResults", mock.Anything, mock.Anything)

	assert.False(t, NewNotificationService(nil, 0).NotifyResults(context.Background(), domain.ResultNotification{To: "a@b.c"}))
}

func TestSendTestEmail(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Enabled").Return(true)
	notifier.On("SendTest", mock.Anything, "ok@example.com").Return(nil)
	notifier.On("SendTest", mock.Anything, "bad@example.com").Return(errors.New("550 mailbox unavailable"))
	svc := NewNotificationService(notifier, time.Second)

	assert.NoError(t, svc.SendTestEmail(context.Background(), "ok@example.com"))
	err := svc.SendTestEmail(context.Background(), "bad@example.com")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))

	disabled := new(MockNotifier)
	disabled.On("Enabled").Return(false)
	err = NewNotificationService(disabled, 0).SendTestEmail(context.Background(), "ok@example.com")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))
}
