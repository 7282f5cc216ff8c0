package seedmodels

import "ai-quizzer/internal/domain"

// SeedQuestion mirrors the question shape the generator produces, so
// hand-written seed files go through the same validation.
type SeedQuestion struct {
	QuestionText     string          `json:"questionText"`
	Options          []domain.Option `json:"options"`
	CorrectAnswerKey string          `json:"correctAnswerKey"`
	Hint             string          `json:"hint,omitempty"`
}

type SeedQuiz struct {
	Title      string         `json:"title"`
	Subject    string         `json:"subject"`
	GradeLevel string         `json:"gradeLevel"`
	Questions  []SeedQuestion `json:"questions"`
}

// Generated converts the seed question for domain.ValidateGeneratedQuestion.
func (q SeedQuestion) Generated() domain.GeneratedQuestion {
	return domain.GeneratedQuestion{
		Text:             q.QuestionText,
		Options:          q.Options,
		CorrectAnswerKey: q.CorrectAnswerKey,
		Hint:             q.Hint,
	}
}
