package domain

import (
	"strings"
	"time"
)

// MinOptionsPerQuestion is the smallest option set a multiple-choice question may carry.
const MinOptionsPerQuestion = 2

// Option is one selectable answer of a question.
type Option struct {
	Key   string `json:"optionKey"`
	Value string `json:"optionValue"`
}

// Question is a single multiple-choice item inside a quiz.
type Question struct {
	ID               string   `json:"id"`
	Text             string   `json:"questionText"`
	Options          []Option `json:"options"`
	CorrectAnswerKey string   `json:"correctAnswerKey"`
	Hint             string   `json:"hint,omitempty"`
}

// HasOption reports whether key is one of the question's option keys.
func (q *Question) HasOption(key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// Quiz represents a generated quiz. It is immutable once stored, except
// that a question's hint may be filled in later.
type Quiz struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Subject         string      `json:"subject"`
	GradeLevel      string      `json:"gradeLevel"`
	Questions       []*Question `json:"questions"`
	CreatedByAITool string      `json:"createdByAiTool"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// NewQuiz creates a new Quiz instance
func NewQuiz(title, subject, gradeLevel, aiTool string, questions []*Question) *Quiz {
	return &Quiz{
		Title:           title,
		Subject:         subject,
		GradeLevel:      gradeLevel,
		Questions:       questions,
		CreatedByAITool: aiTool,
		CreatedAt:       time.Now().UTC(),
	}
}

// QuestionByID returns the question with id, or nil.
func (q *Quiz) QuestionByID(id string) *Question {
	for _, question := range q.Questions {
		if question.ID == id {
			return question
		}
	}
	return nil
}

// Ref returns the lightweight reference stored alongside submissions.
func (q *Quiz) Ref() *QuizRef {
	return &QuizRef{ID: q.ID, Title: q.Title, Subject: q.Subject, GradeLevel: q.GradeLevel}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return NewValidationError("title is required")
	}
	if strings.TrimSpace(q.Subject) == "" {
		return NewValidationError("subject is required")
	}
	if strings.TrimSpace(q.GradeLevel) == "" {
		return NewValidationError("grade level is required")
	}
	if len(q.Questions) == 0 {
		return NewValidationError("at least one question is required")
	}
	return nil
}

// QuizRef is the quiz summary joined onto history results.
type QuizRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	GradeLevel string `json:"gradeLevel"`
}

// GeneratedQuestion is an unvalidated question as produced by a quiz generator.
type GeneratedQuestion struct {
	Text             string   `json:"questionText"`
	Options          []Option `json:"options"`
	CorrectAnswerKey string   `json:"correctAnswerKey"`
	Hint             string   `json:"hint"`
}

// QuestionCandidate is the outcome of validating a GeneratedQuestion:
// either an AcceptedQuestion or a RejectedQuestion.
type QuestionCandidate interface {
	candidate()
}

// AcceptedQuestion carries a question that satisfies every structural rule.
type AcceptedQuestion struct {
	Question *Question
}

// RejectedQuestion records why a generated question was dropped.
type RejectedQuestion struct {
	Index  int
	Reason string
}

func (AcceptedQuestion) candidate() {}
func (RejectedQuestion) candidate() {}

// ValidateGeneratedQuestion checks a generated question. Options missing a
// key or value are discarded before the remaining rules are applied.
func ValidateGeneratedQuestion(index int, g GeneratedQuestion) QuestionCandidate {
	text := strings.TrimSpace(g.Text)
	if text == "" {
		return RejectedQuestion{Index: index, Reason: "question text is empty"}
	}
	correct := strings.TrimSpace(g.CorrectAnswerKey)
	if correct == "" {
		return RejectedQuestion{Index: index, Reason: "correct answer key is empty"}
	}

	seen := make(map[string]struct{}, len(g.Options))
	options := make([]Option, 0, len(g.Options))
	for _, o := range g.Options {
		key, value := strings.TrimSpace(o.Key), strings.TrimSpace(o.Value)
		if key == "" || value == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			return RejectedQuestion{Index: index, Reason: "duplicate option key " + key}
		}
		seen[key] = struct{}{}
		options = append(options, Option{Key: key, Value: value})
	}
	if len(options) < MinOptionsPerQuestion {
		return RejectedQuestion{Index: index, Reason: "fewer than two valid options"}
	}
	if _, ok := seen[correct]; !ok {
		return RejectedQuestion{Index: index, Reason: "correct answer key " + correct + " is not an option"}
	}

	return AcceptedQuestion{Question: &Question{
		Text:             text,
		Options:          options,
		CorrectAnswerKey: correct,
		Hint:             strings.TrimSpace(g.Hint),
	}}
}
