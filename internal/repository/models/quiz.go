package models

import (
	"database/sql"
	"time"
)

// Quiz is a row of QUIZZES.
type Quiz struct {
	ID              string         `db:"ID"`
	Title           string         `db:"TITLE"`
	Subject         string         `db:"SUBJECT"`
	GradeLevel      string         `db:"GRADE_LEVEL"`
	CreatedByAITool sql.NullString `db:"CREATED_BY_AI_TOOL"`
	CreatedAt       time.Time      `db:"CREATED_AT"`
}

// QuizQuestion is a row of QUIZ_QUESTIONS. POSITION keeps question order.
type QuizQuestion struct {
	ID               string         `db:"ID"`
	QuizID           string         `db:"QUIZ_ID"`
	Position         int            `db:"POSITION"`
	QuestionText     string         `db:"QUESTION_TEXT"`
	Options          OptionList     `db:"OPTIONS"`
	CorrectAnswerKey string         `db:"CORRECT_ANSWER_KEY"`
	Hint             sql.NullString `db:"HINT"`
}
