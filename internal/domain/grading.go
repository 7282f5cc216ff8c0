package domain

import "ai-quizzer/internal/util"

// GradeResult is the outcome of grading one set of answers against a quiz.
type GradeResult struct {
	Answers        []Answer
	CorrectCount   int
	TotalQuestions int
	Score          float64
}

// Incorrect returns the graded answers that did not match the key.
func (r GradeResult) Incorrect() []Answer {
	var out []Answer
	for _, a := range r.Answers {
		if !a.IsCorrect {
			out = append(out, a)
		}
	}
	return out
}

// Grade reconciles submitted answers against the quiz's answer key.
//
// Answers naming an unknown question are dropped. When a question is
// answered more than once only the first answer counts. The score is
// computed over every question in the quiz, so unanswered questions count
// as wrong.
func Grade(quiz *Quiz, submitted []SubmittedAnswer) GradeResult {
	result := GradeResult{TotalQuestions: len(quiz.Questions)}
	answered := make(map[string]struct{}, len(submitted))

	for _, s := range submitted {
		question := quiz.QuestionByID(s.QuestionID)
		if question == nil {
			continue
		}
		if _, dup := answered[question.ID]; dup {
			continue
		}
		answered[question.ID] = struct{}{}

		isCorrect := s.SelectedAnswerKey == question.CorrectAnswerKey
		if isCorrect {
			result.CorrectCount++
		}
		result.Answers = append(result.Answers, Answer{
			QuestionID:        question.ID,
			QuestionText:      question.Text,
			SelectedAnswerKey: s.SelectedAnswerKey,
			CorrectAnswerKey:  question.CorrectAnswerKey,
			IsCorrect:         isCorrect,
		})
	}

	result.Score = util.Percentage(result.CorrectCount, result.TotalQuestions)
	return result
}
