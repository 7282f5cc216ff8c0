package dto

import (
	"time"

	"ai-quizzer/internal/domain"
)

// DefaultNumQuestions is used when a generate request omits numQuestions.
const DefaultNumQuestions = 5

// GenerateQuizRequest is the body of POST /api/quizzes/generate
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Subject      string `json:"subject" validate:"required,max=100"`
	GradeLevel   string `json:"gradeLevel" validate:"required,max=50"`
	NumQuestions int    `json:"numQuestions" validate:"omitempty,min=1,max=20"`
}

// OptionResponse is one answer option of a question
type OptionResponse struct {
	OptionKey   string `json:"optionKey"`
	OptionValue string `json:"optionValue"`
}

// QuestionResponse represents a quiz question in the API response
type QuestionResponse struct {
	ID               string           `json:"id"`
	QuestionText     string           `json:"questionText"`
	Options          []OptionResponse `json:"options"`
	CorrectAnswerKey string           `json:"correctAnswerKey"`
	Hint             string           `json:"hint,omitempty"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information
type QuizResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Subject         string             `json:"subject"`
	GradeLevel      string             `json:"gradeLevel"`
	Questions       []QuestionResponse `json:"questions"`
	CreatedByAITool string             `json:"createdByAiTool,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// HintResponse is returned by the hint endpoint
type HintResponse struct {
	Hint string `json:"hint"`
}

// ToQuizResponse converts a domain quiz for the API.
func ToQuizResponse(q *domain.Quiz) *QuizResponse {
	resp := &QuizResponse{
		ID:              q.ID,
		Title:           q.Title,
		Subject:         q.Subject,
		GradeLevel:      q.GradeLevel,
		Questions:       make([]QuestionResponse, 0, len(q.Questions)),
		CreatedByAITool: q.CreatedByAITool,
		CreatedAt:       q.CreatedAt,
	}
	for _, question := range q.Questions {
		options := make([]OptionResponse, 0, len(question.Options))
		for _, o := range question.Options {
			options = append(options, OptionResponse{OptionKey: o.Key, OptionValue: o.Value})
		}
		resp.Questions = append(resp.Questions, QuestionResponse{
			ID:               question.ID,
			QuestionText:     question.Text,
			Options:          options,
			CorrectAnswerKey: question.CorrectAnswerKey,
			Hint:             question.Hint,
		})
	}
	return resp
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MessageResponse carries a human readable status message
type MessageResponse struct {
	Message string `json:"message"`
}
