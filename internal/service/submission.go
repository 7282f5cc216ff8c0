package service

import (
	"context"

	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/logger"
	"ai-quizzer/internal/metrics"

	"go.uber.org/zap"
)

const (
	submitMessage = "Quiz submitted successfully"
	retryMessage  = "Quiz retry submitted successfully"

	// maxChainDepth bounds RetryChain against corrupt self-referencing rows.
	maxChainDepth = 100
)

// SubmissionService grades attempts and serves a student's history.
type SubmissionService interface {
	// Submit grades answers against a quiz. fallbackEmail is used when the
	// request carries no email of its own.
	Submit(ctx context.Context, studentID, fallbackEmail string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error)
	// Retry grades a new attempt linked to one of the student's earlier submissions.
	Retry(ctx context.Context, studentID, fallbackEmail string, req *dto.RetryQuizRequest) (*dto.SubmissionResultResponse, error)
	History(ctx context.Context, studentID string, filter domain.HistoryFilter) ([]dto.SubmissionResponse, error)
	// RetryChain returns the submission and its predecessors, newest first.
	RetryChain(ctx context.Context, studentID, submissionID string) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	quizRepo       domain.QuizRepository
	submissionRepo domain.SubmissionRepository
	quizCache      QuizCacheService
	suggestions    SuggestionService
	notifications  NotificationService
}

func NewSubmissionService(
	quizRepo domain.QuizRepository,
	submissionRepo domain.SubmissionRepository,
	quizCache QuizCacheService,
	suggestions SuggestionService,
	notifications NotificationService,
) SubmissionService {
	if quizCache == nil {
		quizCache = noopQuizCacheService{}
	}
	return &submissionService{
		quizRepo:       quizRepo,
		submissionRepo: submissionRepo,
		quizCache:      quizCache,
		suggestions:    suggestions,
		notifications:  notifications,
	}
}

func (s *submissionService) Submit(ctx context.Context, studentID, fallbackEmail string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
	if len(req.Answers) == 0 {
		return nil, domain.NewValidationError("Answers are required")
	}
	quiz, err := loadQuiz(ctx, s.quizRepo, s.quizCache, req.QuizID)
	if err != nil {
		return nil, err
	}

	result := domain.Grade(quiz, dto.ToSubmittedAnswers(req.Answers))
	submission := domain.NewSubmission(studentID, quiz, result)
	if err := s.submissionRepo.CreateSubmission(ctx, submission); err != nil {
		logger.Get().Error("failed to save submission", zap.Error(err), zap.String("quiz_id", quiz.ID))
		return nil, domain.NewPersistenceError("failed to save submission", err)
	}
	metrics.SubmissionsTotal.WithLabelValues("submit").Inc()

	return s.finish(ctx, submission, result, pickEmail(req.Email, fallbackEmail), submitMessage), nil
}

func (s *submissionService) Retry(ctx context.Context, studentID, fallbackEmail string, req *dto.RetryQuizRequest) (*dto.SubmissionResultResponse, error) {
	if len(req.Answers) == 0 {
		return nil, domain.NewValidationError("Answers are required")
	}
	original, err := s.ownedSubmission(ctx, studentID, req.OriginalSubmissionID, "Original submission not found")
	if err != nil {
		return nil, err
	}
	quiz, err := loadQuiz(ctx, s.quizRepo, s.quizCache, original.QuizID)
	if err != nil {
		return nil, err
	}

	result := domain.Grade(quiz, dto.ToSubmittedAnswers(req.Answers))
	submission := domain.NewSubmission(studentID, quiz, result)
	submission.MarkRetryOf(original)
	if err := s.submissionRepo.CreateSubmission(ctx, submission); err != nil {
		logger.Get().Error("failed to save retry", zap.Error(err), zap.String("original_id", original.ID))
		return nil, domain.NewPersistenceError("failed to save submission", err)
	}
	metrics.SubmissionsTotal.WithLabelValues("retry").Inc()

	return s.finish(ctx, submission, result, pickEmail(req.Email, fallbackEmail), retryMessage), nil
}

// finish runs the best-effort tail after the submission is stored. Nothing
// here can fail the request.
func (s *submissionService) finish(ctx context.Context, submission *domain.Submission, result domain.GradeResult, email, message string) *dto.SubmissionResultResponse {
	var suggestions []string
	if s.suggestions != nil {
		suggestions = s.suggestions.Suggest(ctx, domain.IncorrectDetails(result.Incorrect()))
	}

	emailSent := false
	if email != "" && s.notifications != nil && (suggestions != nil || submission.Score < 100) {
		emailSent = s.notifications.NotifyResults(ctx, domain.ResultNotification{
			To:          email,
			Submission:  submission,
			Suggestions: suggestions,
		})
	}

	logger.Get().Info("submission graded",
		zap.String("submission_id", submission.ID),
		zap.String("quiz_id", submission.QuizID),
		zap.Bool("is_retry", submission.IsRetry),
		zap.Float64("score", submission.Score))

	return &dto.SubmissionResultResponse{
		Message:                message,
		Submission:             dto.ToSubmissionResponse(submission),
		ImprovementSuggestions: suggestions,
		EmailSent:              emailSent,
	}
}

func (s *submissionService) History(ctx context.Context, studentID string, filter domain.HistoryFilter) ([]dto.SubmissionResponse, error) {
	list, err := s.submissionRepo.FindHistory(ctx, studentID, filter)
	if err != nil {
		logger.Get().Error("failed to load history", zap.Error(err), zap.String("student_id", studentID))
		return nil, domain.NewPersistenceError("failed to load quiz history", err)
	}
	return dto.ToSubmissionResponses(list), nil
}

func (s *submissionService) RetryChain(ctx context.Context, studentID, submissionID string) ([]dto.SubmissionResponse, error) {
	current, err := s.ownedSubmission(ctx, studentID, submissionID, "Submission not found")
	if err != nil {
		return nil, err
	}

	chain := []*domain.Submission{current}
	seen := map[string]struct{}{current.ID: {}}
	for !current.IsChainRoot() && len(chain) < maxChainDepth {
		if _, loop := seen[current.OriginalSubmissionID]; loop {
			logger.Get().Warn("retry chain contains a cycle", zap.String("submission_id", current.ID))
			break
		}
		prev, err := s.submissionRepo.GetSubmissionByID(ctx, current.OriginalSubmissionID)
		if err != nil {
			return nil, domain.NewPersistenceError("failed to load submission", err)
		}
		if prev == nil {
			break
		}
		seen[prev.ID] = struct{}{}
		chain = append(chain, prev)
		current = prev
	}
	return dto.ToSubmissionResponses(chain), nil
}

func (s *submissionService) ownedSubmission(ctx context.Context, studentID, submissionID, notFound string) (*domain.Submission, error) {
	sub, err := s.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		logger.Get().Error("failed to load submission", zap.Error(err), zap.String("submission_id", submissionID))
		return nil, domain.NewPersistenceError("failed to load submission", err)
	}
	if sub == nil {
		return nil, domain.NewNotFoundError(notFound).WithContext("submissionId", submissionID)
	}
	if sub.StudentID != studentID {
		return nil, domain.NewForbiddenError("You do not have access to this submission")
	}
	return sub, nil
}

func pickEmail(requested, fallback string) string {
	if requested != "" {
		return requested
	}
	return fallback
}
