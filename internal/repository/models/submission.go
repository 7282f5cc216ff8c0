package models

import (
	"database/sql"
	"time"
)

// QuizSubmission is a row of QUIZ_SUBMISSIONS.
type QuizSubmission struct {
	ID                   string         `db:"ID"`
	StudentID            string         `db:"STUDENT_ID"`
	QuizID               string         `db:"QUIZ_ID"`
	QuizTitle            string         `db:"QUIZ_TITLE"`
	Subject              string         `db:"SUBJECT"`
	GradeLevel           string         `db:"GRADE_LEVEL"`
	Answers              AnswerList     `db:"ANSWERS"`
	Score                float64        `db:"SCORE"`
	TotalQuestions       int            `db:"TOTAL_QUESTIONS"`
	CorrectAnswersCount  int            `db:"CORRECT_ANSWERS_COUNT"`
	CompletedDate        time.Time      `db:"COMPLETED_DATE"`
	IsRetry              int            `db:"IS_RETRY"` // NUMBER(1)
	OriginalSubmissionID sql.NullString `db:"ORIGINAL_SUBMISSION_ID"`
}

// SubmissionHistoryRow is a submission joined with its (possibly deleted) quiz.
type SubmissionHistoryRow struct {
	QuizSubmission
	RefQuizID     sql.NullString `db:"REF_QUIZ_ID"`
	RefTitle      sql.NullString `db:"REF_TITLE"`
	RefSubject    sql.NullString `db:"REF_SUBJECT"`
	RefGradeLevel sql.NullString `db:"REF_GRADE_LEVEL"`
}
