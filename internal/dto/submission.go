package dto

import (
	"time"

	"ai-quizzer/internal/domain"
)

// AnswerRequest is one submitted answer
type AnswerRequest struct {
	QuestionID        string `json:"questionId" validate:"required"`
	SelectedAnswerKey string `json:"selectedAnswerKey" validate:"required"`
}

// SubmitQuizRequest is the body of POST /api/quizzes/submit
// @Description Request body for submitting quiz answers
type SubmitQuizRequest struct {
	QuizID  string          `json:"quizId" validate:"required,ulid"`
	Answers []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
	Email   string          `json:"email,omitempty" validate:"omitempty,email"`
}

// RetryQuizRequest is the body of POST /api/quizzes/retry
// @Description Request body for retrying a previous submission
type RetryQuizRequest struct {
	OriginalSubmissionID string          `json:"originalSubmissionId" validate:"required,ulid"`
	Answers              []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
	Email                string          `json:"email,omitempty" validate:"omitempty,email"`
}

// TestEmailRequest is the body of POST /api/quizzes/test-email
type TestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HistoryQuery holds the raw history query parameters before parsing.
type HistoryQuery struct {
	Grade    string `query:"grade"`
	Subject  string `query:"subject"`
	MarksGTE string `query:"marks_gte"`
	MarksLTE string `query:"marks_lte"`
	From     string `query:"from"`
	To       string `query:"to"`
	Date     string `query:"date"`
}

// AnswerResponse is a graded answer
type AnswerResponse struct {
	QuestionID        string `json:"questionId"`
	QuestionText      string `json:"questionText"`
	SelectedAnswerKey string `json:"selectedAnswerKey"`
	CorrectAnswerKey  string `json:"correctAnswerKey"`
	IsCorrect         bool   `json:"isCorrect"`
}

// QuizRefResponse is the quiz summary attached to history entries
type QuizRefResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	GradeLevel string `json:"gradeLevel"`
}

// SubmissionResponse represents a graded submission
// @Description Graded quiz submission
type SubmissionResponse struct {
	ID                   string           `json:"id"`
	StudentID            string           `json:"studentId"`
	QuizID               string           `json:"quizId"`
	QuizTitle            string           `json:"quizTitle"`
	Subject              string           `json:"subject"`
	GradeLevel           string           `json:"gradeLevel"`
	Answers              []AnswerResponse `json:"answers"`
	Score                float64          `json:"score"`
	TotalQuestions       int              `json:"totalQuestions"`
	CorrectAnswersCount  int              `json:"correctAnswersCount"`
	CompletedDate        time.Time        `json:"completedDate"`
	IsRetry              bool             `json:"isRetry"`
	OriginalSubmissionID *string          `json:"originalSubmissionId"`
	Quiz                 *QuizRefResponse `json:"quiz,omitempty"`
}

// SubmissionResultResponse is returned by submit and retry.
// EmailSent reports that a results email was queued.
type SubmissionResultResponse struct {
	Message                string             `json:"message"`
	Submission             SubmissionResponse `json:"submission"`
	ImprovementSuggestions []string           `json:"improvementSuggestions"`
	EmailSent              bool               `json:"emailSent"`
}

// ToSubmissionResponse converts a domain submission for the API.
func ToSubmissionResponse(s *domain.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:                  s.ID,
		StudentID:           s.StudentID,
		QuizID:              s.QuizID,
		QuizTitle:           s.QuizTitle,
		Subject:             s.Subject,
		GradeLevel:          s.GradeLevel,
		Answers:             make([]AnswerResponse, 0, len(s.Answers)),
		Score:               s.Score,
		TotalQuestions:      s.TotalQuestions,
		CorrectAnswersCount: s.CorrectAnswersCount,
		CompletedDate:       s.CompletedDate,
		IsRetry:             s.IsRetry,
	}
	for _, a := range s.Answers {
		resp.Answers = append(resp.Answers, AnswerResponse(a))
	}
	if s.OriginalSubmissionID != "" {
		original := s.OriginalSubmissionID
		resp.OriginalSubmissionID = &original
	}
	if s.Quiz != nil {
		resp.Quiz = &QuizRefResponse{
			ID:         s.Quiz.ID,
			Title:      s.Quiz.Title,
			Subject:    s.Quiz.Subject,
			GradeLevel: s.Quiz.GradeLevel,
		}
	}
	return resp
}

// ToSubmissionResponses converts a list, never returning nil.
func ToSubmissionResponses(list []*domain.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSubmissionResponse(s))
	}
	return out
}

// ToSubmittedAnswers converts request answers for grading.
func ToSubmittedAnswers(answers []AnswerRequest) []domain.SubmittedAnswer {
	out := make([]domain.SubmittedAnswer, 0, len(answers))
	for _, a := range answers {
		out = append(out, domain.SubmittedAnswer{QuestionID: a.QuestionID, SelectedAnswerKey: a.SelectedAnswerKey})
	}
	return out
}
