package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/repository/models"
	"ai-quizzer/internal/util"
)

// QuizDatabaseAdapter implements domain.QuizRepository. Questions live in
// QUIZ_QUESTIONS, ordered by POSITION.
type QuizDatabaseAdapter struct {
	db DBTX
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db DBTX) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

func toModelQuiz(quiz *domain.Quiz) (*models.Quiz, []*models.QuizQuestion) {
	modelQuiz := &models.Quiz{
		ID:              quiz.ID,
		Title:           quiz.Title,
		Subject:         quiz.Subject,
		GradeLevel:      quiz.GradeLevel,
		CreatedByAITool: util.StringToNullString(quiz.CreatedByAITool),
		CreatedAt:       quiz.CreatedAt,
	}
	questions := make([]*models.QuizQuestion, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		options := make(models.OptionList, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, models.Option{Key: o.Key, Value: o.Value})
		}
		questions = append(questions, &models.QuizQuestion{
			ID:               q.ID,
			QuizID:           quiz.ID,
			Position:         i,
			QuestionText:     q.Text,
			Options:          options,
			CorrectAnswerKey: q.CorrectAnswerKey,
			Hint:             util.StringToNullString(q.Hint),
		})
	}
	return modelQuiz, questions
}

func toDomainQuiz(modelQuiz *models.Quiz, rows []models.QuizQuestion) *domain.Quiz {
	quiz := &domain.Quiz{
		ID:              modelQuiz.ID,
		Title:           modelQuiz.Title,
		Subject:         modelQuiz.Subject,
		GradeLevel:      modelQuiz.GradeLevel,
		CreatedByAITool: modelQuiz.CreatedByAITool.String,
		CreatedAt:       modelQuiz.CreatedAt,
		Questions:       make([]*domain.Question, 0, len(rows)),
	}
	for _, row := range rows {
		options := make([]domain.Option, 0, len(row.Options))
		for _, o := range row.Options {
			options = append(options, domain.Option{Key: o.Key, Value: o.Value})
		}
		quiz.Questions = append(quiz.Questions, &domain.Question{
			ID:               row.ID,
			Text:             row.QuestionText,
			Options:          options,
			CorrectAnswerKey: row.CorrectAnswerKey,
			Hint:             row.Hint.String,
		})
	}
	return quiz
}

// SaveQuiz implements domain.QuizRepository. Callers wanting atomicity wrap
// it in TransactionManager.WithTransaction.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	quiz.ID = util.NewULID()
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	for _, q := range quiz.Questions {
		q.ID = util.NewULID()
	}

	exec := GetExecutor(ctx, a.db)
	modelQuiz, questions := toModelQuiz(quiz)

	query := exec.Rebind(`INSERT INTO QUIZZES (ID, TITLE, SUBJECT, GRADE_LEVEL, CREATED_BY_AI_TOOL, CREATED_AT)
	VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.Title,
		modelQuiz.Subject,
		modelQuiz.GradeLevel,
		modelQuiz.CreatedByAITool,
		modelQuiz.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	questionQuery := exec.Rebind(`INSERT INTO QUIZ_QUESTIONS (ID, QUIZ_ID, POSITION, QUESTION_TEXT, OPTIONS, CORRECT_ANSWER_KEY, HINT)
	VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for _, q := range questions {
		_, err := exec.ExecContext(ctx, questionQuery,
			q.ID,
			q.QuizID,
			q.Position,
			q.QuestionText,
			q.Options,
			q.CorrectAnswerKey,
			q.Hint,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d of quiz %s: %w", q.Position, modelQuiz.ID, err)
		}
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := exec.Rebind(`SELECT ID, TITLE, SUBJECT, GRADE_LEVEL, CREATED_BY_AI_TOOL, CREATED_AT
	FROM QUIZZES
	WHERE ID = ?`)
	if err := exec.GetContext(ctx, &modelQuiz, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	var rows []models.QuizQuestion
	questionQuery := exec.Rebind(`SELECT ID, QUIZ_ID, POSITION, QUESTION_TEXT, OPTIONS, CORRECT_ANSWER_KEY, HINT
	FROM QUIZ_QUESTIONS
	WHERE QUIZ_ID = ?
	ORDER BY POSITION`)
	if err := exec.SelectContext(ctx, &rows, questionQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", id, err)
	}

	return toDomainQuiz(&modelQuiz, rows), nil
}

// SaveHint implements domain.QuizRepository. The HINT IS NULL guard makes
// concurrent backfills first-writer-wins.
func (a *QuizDatabaseAdapter) SaveHint(ctx context.Context, quizID, questionID, hint string) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`UPDATE QUIZ_QUESTIONS SET HINT = ? WHERE QUIZ_ID = ? AND ID = ? AND HINT IS NULL`)
	res, err := exec.ExecContext(ctx, query, hint, quizID, questionID)
	if err != nil {
		return false, fmt.Errorf("failed to save hint for question %s: %w", questionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Some Oracle drivers do not report affected rows reliably.
		return true, nil
	}
	return n > 0, nil
}
