package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/repository/models"
	"ai-quizzer/internal/util"
)

const submissionColumns = `s.ID, s.STUDENT_ID, s.QUIZ_ID, s.QUIZ_TITLE, s.SUBJECT, s.GRADE_LEVEL, s.ANSWERS,
	s.SCORE, s.TOTAL_QUESTIONS, s.CORRECT_ANSWERS_COUNT, s.COMPLETED_DATE, s.IS_RETRY, s.ORIGINAL_SUBMISSION_ID`

// SubmissionDatabaseAdapter implements domain.SubmissionRepository.
type SubmissionDatabaseAdapter struct {
	db DBTX
}

// NewSubmissionDatabaseAdapter creates a new instance of SubmissionDatabaseAdapter
func NewSubmissionDatabaseAdapter(db DBTX) domain.SubmissionRepository {
	return &SubmissionDatabaseAdapter{db: db}
}

func toModelSubmission(s *domain.Submission) *models.QuizSubmission {
	answers := make(models.AnswerList, 0, len(s.Answers))
	for _, a := range s.Answers {
		answers = append(answers, models.Answer{
			QuestionID:        a.QuestionID,
			QuestionText:      a.QuestionText,
			SelectedAnswerKey: a.SelectedAnswerKey,
			CorrectAnswerKey:  a.CorrectAnswerKey,
			IsCorrect:         a.IsCorrect,
		})
	}
	return &models.QuizSubmission{
		ID:                   s.ID,
		StudentID:            s.StudentID,
		QuizID:               s.QuizID,
		QuizTitle:            s.QuizTitle,
		Subject:              s.Subject,
		GradeLevel:           s.GradeLevel,
		Answers:              answers,
		Score:                s.Score,
		TotalQuestions:       s.TotalQuestions,
		CorrectAnswersCount:  s.CorrectAnswersCount,
		CompletedDate:        s.CompletedDate,
		IsRetry:              util.BoolToInt(s.IsRetry),
		OriginalSubmissionID: util.StringToNullString(s.OriginalSubmissionID),
	}
}

func toDomainSubmission(m *models.QuizSubmission) *domain.Submission {
	answers := make([]domain.Answer, 0, len(m.Answers))
	for _, a := range m.Answers {
		answers = append(answers, domain.Answer{
			QuestionID:        a.QuestionID,
			QuestionText:      a.QuestionText,
			SelectedAnswerKey: a.SelectedAnswerKey,
			CorrectAnswerKey:  a.CorrectAnswerKey,
			IsCorrect:         a.IsCorrect,
		})
	}
	return &domain.Submission{
		ID:                   m.ID,
		StudentID:            m.StudentID,
		QuizID:               m.QuizID,
		QuizTitle:            m.QuizTitle,
		Subject:              m.Subject,
		GradeLevel:           m.GradeLevel,
		Answers:              answers,
		Score:                m.Score,
		TotalQuestions:       m.TotalQuestions,
		CorrectAnswersCount:  m.CorrectAnswersCount,
		CompletedDate:        m.CompletedDate.UTC(),
		IsRetry:              m.IsRetry != 0,
		OriginalSubmissionID: m.OriginalSubmissionID.String,
	}
}

// CreateSubmission implements domain.SubmissionRepository. ID and
// CompletedDate are assigned here.
func (a *SubmissionDatabaseAdapter) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	if submission == nil {
		return fmt.Errorf("cannot save nil submission")
	}
	submission.ID = util.NewULID()
	submission.CompletedDate = time.Now().UTC()

	exec := GetExecutor(ctx, a.db)
	m := toModelSubmission(submission)

	query := exec.Rebind(`INSERT INTO QUIZ_SUBMISSIONS (
		ID, STUDENT_ID, QUIZ_ID, QUIZ_TITLE, SUBJECT, GRADE_LEVEL, ANSWERS,
		SCORE, TOTAL_QUESTIONS, CORRECT_ANSWERS_COUNT, COMPLETED_DATE, IS_RETRY, ORIGINAL_SUBMISSION_ID
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		m.ID,
		m.StudentID,
		m.QuizID,
		m.QuizTitle,
		m.Subject,
		m.GradeLevel,
		m.Answers,
		m.Score,
		m.TotalQuestions,
		m.CorrectAnswersCount,
		m.CompletedDate,
		m.IsRetry,
		m.OriginalSubmissionID,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// GetSubmissionByID implements domain.SubmissionRepository
func (a *SubmissionDatabaseAdapter) GetSubmissionByID(ctx context.Context, id string) (*domain.Submission, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.QuizSubmission
	query := exec.Rebind(`SELECT ` + submissionColumns + ` FROM QUIZ_SUBMISSIONS s WHERE s.ID = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission by ID %s: %w", id, err)
	}
	return toDomainSubmission(&m), nil
}

// buildHistoryQuery renders the history SELECT for a student with every
// present filter ANDed together. Placeholders are unbound.
func buildHistoryQuery(studentID string, filter domain.HistoryFilter) (string, []interface{}) {
	conditions := []string{"s.STUDENT_ID = ?"}
	args := []interface{}{studentID}

	if filter.Grade != "" {
		conditions = append(conditions, "s.GRADE_LEVEL = ?")
		args = append(args, filter.Grade)
	}
	if filter.Subject != "" {
		conditions = append(conditions, "s.SUBJECT = ?")
		args = append(args, filter.Subject)
	}
	if filter.MarksGTE != nil {
		conditions = append(conditions, "s.SCORE >= ?")
		args = append(args, *filter.MarksGTE)
	}
	if filter.MarksLTE != nil {
		conditions = append(conditions, "s.SCORE <= ?")
		args = append(args, *filter.MarksLTE)
	}
	start, end := filter.CompletedRange()
	if !start.IsZero() {
		conditions = append(conditions, "s.COMPLETED_DATE >= ?")
		args = append(args, start.UTC())
	}
	if !end.IsZero() {
		conditions = append(conditions, "s.COMPLETED_DATE < ?")
		args = append(args, end.UTC())
	}

	query := `SELECT ` + submissionColumns + `,
	q.ID AS REF_QUIZ_ID, q.TITLE AS REF_TITLE, q.SUBJECT AS REF_SUBJECT, q.GRADE_LEVEL AS REF_GRADE_LEVEL
	FROM QUIZ_SUBMISSIONS s
	LEFT JOIN QUIZZES q ON q.ID = s.QUIZ_ID
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY s.COMPLETED_DATE DESC, s.ID DESC`
	return query, args
}

// FindHistory implements domain.SubmissionRepository. The result is never nil.
func (a *SubmissionDatabaseAdapter) FindHistory(ctx context.Context, studentID string, filter domain.HistoryFilter) ([]*domain.Submission, error) {
	exec := GetExecutor(ctx, a.db)

	query, args := buildHistoryQuery(studentID, filter)
	var rows []models.SubmissionHistoryRow
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query submission history for student %s: %w", studentID, err)
	}

	submissions := make([]*domain.Submission, 0, len(rows))
	for i := range rows {
		s := toDomainSubmission(&rows[i].QuizSubmission)
		if rows[i].RefQuizID.Valid {
			s.Quiz = &domain.QuizRef{
				ID:         rows[i].RefQuizID.String,
				Title:      rows[i].RefTitle.String,
				Subject:    rows[i].RefSubject.String,
				GradeLevel: rows[i].RefGradeLevel.String,
			}
		}
		submissions = append(submissions, s)
	}
	return submissions, nil
}
