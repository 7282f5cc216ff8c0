package domain

import "context"

// ResultNotification is the payload of a results email.
type ResultNotification struct {
	To          string
	Submission  *Submission
	Suggestions []string
}

// Notifier delivers messages to students. Delivery is best effort.
type Notifier interface {
	SendQuizResults(ctx context.Context, n ResultNotification) error
	SendTest(ctx context.Context, to string) error
	Enabled() bool
}
