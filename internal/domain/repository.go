package domain

import "context"

// QuizRepository persists generated quizzes.
type QuizRepository interface {
	// SaveQuiz assigns IDs to the quiz and its questions and stores them.
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	// GetQuizByID returns nil, nil when the quiz does not exist.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	// SaveHint stores a hint only if the question has none yet. It reports
	// whether the row was updated.
	SaveHint(ctx context.Context, quizID, questionID, hint string) (bool, error)
}

// SubmissionRepository stores graded submissions. Rows are never updated.
type SubmissionRepository interface {
	// CreateSubmission assigns the ID and completion time and inserts the row.
	CreateSubmission(ctx context.Context, submission *Submission) error
	// GetSubmissionByID returns nil, nil when the submission does not exist.
	GetSubmissionByID(ctx context.Context, id string) (*Submission, error)
	// FindHistory returns the student's submissions matching filter, newest first.
	FindHistory(ctx context.Context, studentID string, filter HistoryFilter) ([]*Submission, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
