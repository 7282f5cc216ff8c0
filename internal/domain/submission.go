package domain

import "time"

// SubmittedAnswer is one answer as sent by the student.
type SubmittedAnswer struct {
	QuestionID        string `json:"questionId"`
	SelectedAnswerKey string `json:"selectedAnswerKey"`
}

// Answer is a graded answer embedded in a submission. IsCorrect is fixed at
// grading time and never recomputed.
type Answer struct {
	QuestionID        string `json:"questionId"`
	QuestionText      string `json:"questionText"`
	SelectedAnswerKey string `json:"selectedAnswerKey"`
	CorrectAnswerKey  string `json:"correctAnswerKey"`
	IsCorrect         bool   `json:"isCorrect"`
}

// Submission is one graded attempt. Submissions are append-only.
type Submission struct {
	ID                   string
	StudentID            string
	QuizID               string
	QuizTitle            string
	Subject              string
	GradeLevel           string
	Answers              []Answer
	Score                float64
	TotalQuestions       int
	CorrectAnswersCount  int
	CompletedDate        time.Time
	IsRetry              bool
	OriginalSubmissionID string

	// Quiz is populated on history reads when the quiz still exists.
	Quiz *QuizRef
}

// NewSubmission builds an unsaved submission from a grading result.
func NewSubmission(studentID string, quiz *Quiz, result GradeResult) *Submission {
	return &Submission{
		StudentID:           studentID,
		QuizID:              quiz.ID,
		QuizTitle:           quiz.Title,
		Subject:             quiz.Subject,
		GradeLevel:          quiz.GradeLevel,
		Answers:             result.Answers,
		Score:               result.Score,
		TotalQuestions:      result.TotalQuestions,
		CorrectAnswersCount: result.CorrectCount,
	}
}

// MarkRetryOf links s to the submission it retries.
func (s *Submission) MarkRetryOf(original *Submission) {
	s.IsRetry = true
	s.OriginalSubmissionID = original.ID
}

// IsChainRoot reports whether s has no predecessor.
func (s *Submission) IsChainRoot() bool {
	return s.OriginalSubmissionID == ""
}

// HistoryFilter holds the optional history constraints after parsing.
// A nil pointer or zero time means the filter is absent.
type HistoryFilter struct {
	Grade    string
	Subject  string
	MarksGTE *int
	MarksLTE *int
	From     time.Time
	To       time.Time
	Date     time.Time
}

// CompletedRange resolves the date filters into a half-open range
// [start, end). Date takes precedence over From and To; To is widened to
// include its whole day. Zero values mean unbounded.
func (f HistoryFilter) CompletedRange() (start, end time.Time) {
	if !f.Date.IsZero() {
		day := truncateDay(f.Date)
		return day, day.AddDate(0, 0, 1)
	}
	if !f.From.IsZero() {
		start = f.From
	}
	if !f.To.IsZero() {
		end = truncateDay(f.To).AddDate(0, 0, 1)
	}
	return start, end
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
