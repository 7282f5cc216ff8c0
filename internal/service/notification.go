package service

import (
	"context"
	"sync"
	"time"

	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/logger"
	"ai-quizzer/internal/metrics"

	"go.uber.org/zap"
)

// NotificationService dispatches result emails off the request path.
type NotificationService interface {
	// NotifyResults queues a results email and reports whether it was queued.
	NotifyResults(ctx context.Context, n domain.ResultNotification) bool
	SendTestEmail(ctx context.Context, to string) error
	// Wait blocks until every queued notification has finished.
	Wait()
}

type notificationService struct {
	notifier domain.Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewNotificationService(notifier domain.Notifier, timeout time.Duration) NotificationService {
	return &notificationService{notifier: notifier, timeout: timeout}
}

func (s *notificationService) NotifyResults(ctx context.Context, n domain.ResultNotification) bool {
	if s.notifier == nil || !s.notifier.Enabled() || n.To == "" || n.Submission == nil {
		return false
	}

	// The request context ends with the response; the email must outlive it.
	sendCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		var cancel context.CancelFunc = func() {}
		if s.timeout > 0 {
			sendCtx, cancel = context.WithTimeout(sendCtx, s.timeout)
		}
		defer cancel()

		err := s.notifier.SendQuizResults(sendCtx, n)
		metrics.NotificationsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
		if err != nil {
			logger.Get().Error("failed to send results email",
				zap.Error(err),
				zap.String("submission_id", n.Submission.ID))
		}
	}()
	return true
}

func (s *notificationService) SendTestEmail(ctx context.Context, to string) error {
	if s.notifier == nil || !s.notifier.Enabled() {
		return domain.NewInternalError("Email service not configured", nil)
	}
	if err := s.notifier.SendTest(ctx, to); err != nil {
		logger.Get().Error("test email failed", zap.Error(err), zap.String("to", to))
		return domain.NewInternalError("Failed to send test email", err)
	}
	return nil
}

func (s *notificationService) Wait() {
	s.wg.Wait()
}
