package domain

import "context"

// IncorrectAnswerDetail is what the generator needs to explain a mistake.
type IncorrectAnswerDetail struct {
	QuestionText      string
	SelectedAnswerKey string
	CorrectAnswerKey  string
}

// QuizGenerationRequest describes the quiz content to produce.
type QuizGenerationRequest struct {
	Subject      string
	GradeLevel   string
	NumQuestions int
}

// QuizGenerator is the boundary to the external AI content generator.
type QuizGenerator interface {
	// GenerateQuestions returns raw question candidates; callers validate them.
	GenerateQuestions(ctx context.Context, req QuizGenerationRequest) ([]GeneratedQuestion, error)
	// GenerateHint returns a short hint that does not reveal the answer.
	// An empty string means the generator produced nothing usable.
	GenerateHint(ctx context.Context, question *Question) (string, error)
	// GenerateSuggestions returns short remediation texts for the mistakes.
	GenerateSuggestions(ctx context.Context, mistakes []IncorrectAnswerDetail) ([]string, error)
	// Name identifies the generator; it is recorded on generated quizzes.
	Name() string
}

// IncorrectDetails converts graded answers into generator input.
func IncorrectDetails(answers []Answer) []IncorrectAnswerDetail {
	out := make([]IncorrectAnswerDetail, 0, len(answers))
	for _, a := range answers {
		out = append(out, IncorrectAnswerDetail{
			QuestionText:      a.QuestionText,
			SelectedAnswerKey: a.SelectedAnswerKey,
			CorrectAnswerKey:  a.CorrectAnswerKey,
		})
	}
	return out
}
