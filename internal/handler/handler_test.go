package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/middleware"
	"ai-quizzer/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testQuizID       = "01HZX3K7M2Q8RJ5V6T9W0YBCDE"
	testSubmissionID = "01HZX3K7M2Q8RJ5V6T9W0YBCDF"
)

type stubAuth struct{}

func (stubAuth) ValidateJWT(_ context.Context, token string) (*dto.AuthClaims, error) {
	if token != "valid" {
		return nil, errors.New("invalid jwt token")
	}
	return &dto.AuthClaims{UserID: "student-1", Email: "kid@example.com"}, nil
}

func (stubAuth) IssueToken(context.Context, string, string) (string, error) { return "valid", nil }

type MockQuizService struct{ mock.Mock }

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuizByID(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetOrGenerateHint(ctx context.Context, quizID, questionID string) (*dto.HintResponse, error) {
	args := m.Called(quizID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HintResponse), args.Error(1)
}

type MockSubmissionService struct{ mock.Mock }

func (m *MockSubmissionService) Submit(ctx context.Context, studentID, fallbackEmail string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
	args := m.Called(studentID, fallbackEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmissionResultResponse), args.Error(1)
}

func (m *MockSubmissionService) Retry(ctx context.Context, studentID, fallbackEmail string, req *dto.RetryQuizRequest) (*dto.SubmissionResultResponse, error) {
	args := m.Called(studentID, fallbackEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmissionResultResponse), args.Error(1)
}

func (m *MockSubmissionService) History(ctx context.Context, studentID string, filter domain.HistoryFilter) ([]dto.SubmissionResponse, error) {
	args := m.Called(studentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SubmissionResponse), args.Error(1)
}

func (m *MockSubmissionService) RetryChain(ctx context.Context, studentID, submissionID string) ([]dto.SubmissionResponse, error) {
	args := m.Called(studentID, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SubmissionResponse), args.Error(1)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) NotifyResults(ctx context.Context, n domain.ResultNotification) bool {
	return m.Called(n).Bool(0)
}

func (m *MockNotificationService) SendTestEmail(ctx context.Context, to string) error {
	return m.Called(to).Error(0)
}

func (m *MockNotificationService) Wait() {}

type testApp struct {
	app           *fiber.App
	quizzes       *MockQuizService
	submissions   *MockSubmissionService
	notifications *MockNotificationService
}

func newTestApp() *testApp {
	v := validation.NewValidator()
	ta := &testApp{
		app:           fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()}),
		quizzes:       new(MockQuizService),
		submissions:   new(MockSubmissionService),
		notifications: new(MockNotificationService),
	}
	RegisterRoutes(ta.app, Routes{
		Auth:        stubAuth{},
		Quizzes:     NewQuizHandler(ta.quizzes, v),
		Submissions: NewSubmissionHandler(ta.submissions, ta.notifications, v),
		Validation:  middleware.NewValidationMiddleware(v),
		RateLimit:   config.RateLimitConfig{GeneratePerMinute: 60, Burst: 10},
	})
	return ta
}

func (ta *testApp) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &body))
	return body.Code
}

func TestRoutesRequireToken(t *testing.T) {
	ta := newTestApp()
	resp, err := ta.app.Test(httptest.NewRequest("GET", "/api/quizzes/history", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/quizzes/history", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp, err = ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGenerateQuiz(t *testing.T) {
	ta := newTestApp()
	ta.quizzes.On("GenerateQuiz", mock.MatchedBy(func(r *dto.GenerateQuizRequest) bool {
		return r.Title == "Fractions" && r.NumQuestions == 0
	})).Return(&dto.QuizResponse{ID: testQuizID, Title: "Fractions"}, nil)

	resp, data := ta.do(t, "POST", "/api/quizzes/generate", map[string]interface{}{
		"title": "Fractions", "subject": "Maths", "gradeLevel": "5",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var quiz dto.QuizResponse
	require.NoError(t, json.Unmarshal(data, &quiz))
	assert.Equal(t, testQuizID, quiz.ID)
}

func TestGenerateQuiz_ValidationAndUpstream(t *testing.T) {
	ta := newTestApp()
	resp, data := ta.do(t, "POST", "/api/quizzes/generate", map[string]interface{}{"title": "Fractions"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, data))
	ta.quizzes.AssertNotCalled(t, "GenerateQuiz", mock.Anything)

	ta.quizzes.On("GenerateQuiz", mock.Anything).Return(nil, domain.NewUpstreamError("Error generating quiz from AI service", errors.New("503")))
	resp, data = ta.do(t, "POST", "/api/quizzes/generate", map[string]interface{}{
		"title": "Fractions", "subject": "Maths", "gradeLevel": "5",
	})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_ERROR", errorCode(t, data))
}

func TestSubmit(t *testing.T) {
	ta := newTestApp()
	ta.submissions.On("Submit", "student-1", "kid@example.com", mock.AnythingOfType("*dto.SubmitQuizRequest")).
		Return(&dto.SubmissionResultResponse{
			Message:    "Quiz submitted successfully",
			Submission: dto.SubmissionResponse{ID: testSubmissionID, Score: 75},
		}, nil)

	resp, data := ta.do(t, "POST", "/api/quizzes/submit", map[string]interface{}{
		"quizId":  testQuizID,
		"answers": []map[string]string{{"questionId": "Q1", "selectedAnswerKey": "A"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	var result dto.SubmissionResultResponse
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 75.0, result.Submission.Score)
	assert.Nil(t, result.ImprovementSuggestions)
}

func TestSubmit_RejectsBadBodies(t *testing.T) {
	ta := newTestApp()
	bodies := []map[string]interface{}{
		{"quizId": testQuizID, "answers": []interface{}{}},
		{"quizId": "nope", "answers": []map[string]string{{"questionId": "Q1", "selectedAnswerKey": "A"}}},
		{"quizId": testQuizID, "answers": []map[string]string{{"questionId": "Q1"}}},
		{"quizId": testQuizID, "answers": []map[string]string{{"questionId": "Q1", "selectedAnswerKey": "A"}}, "email": "not-an-email"},
	}
	for _, body := range bodies {
		resp, _ := ta.do(t, "POST", "/api/quizzes/submit", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
	ta.submissions.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestRetry_Forbidden(t *testing.T) {
	ta := newTestApp()
	ta.submissions.On("Retry", "student-1", "kid@example.com", mock.Anything).
		Return(nil, domain.NewForbiddenError("You do not have access to this submission"))

	resp, data := ta.do(t, "POST", "/api/quizzes/retry", map[string]interface{}{
		"originalSubmissionId": testSubmissionID,
		"answers":              []map[string]string{{"questionId": "Q1", "selectedAnswerKey": "A"}},
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, data))
}

func TestHistory(t *testing.T) {
	ta := newTestApp()
	ta.submissions.On("History", "student-1", mock.MatchedBy(func(f domain.HistoryFilter) bool {
		return f.Subject == "Maths" && f.MarksGTE != nil && *f.MarksGTE == 80 && !f.Date.IsZero()
	})).Return([]dto.SubmissionResponse{}, nil)

	resp, data := ta.do(t, "GET", "/api/quizzes/history?subject=Maths&marks_gte=80&date=2024-03-10", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(data))

	resp, _ = ta.do(t, "GET", "/api/quizzes/history?marks_gte=120", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetQuizAndHint(t *testing.T) {
	ta := newTestApp()
	ta.quizzes.On("GetQuizByID", testQuizID).Return(&dto.QuizResponse{ID: testQuizID}, nil)
	ta.quizzes.On("GetOrGenerateHint", testQuizID, "Q1").Return(&dto.HintResponse{Hint: "Think halves."}, nil)
	ta.quizzes.On("GetOrGenerateHint", testQuizID, "Q9").Return(nil, domain.NewNotFoundError("Question not found in this quiz."))

	resp, _ := ta.do(t, "GET", "/api/quizzes/"+testQuizID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, data := ta.do(t, "GET", "/api/quizzes/"+testQuizID+"/questions/Q1/hint", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"hint":"Think halves."}`, string(data))

	resp, _ = ta.do(t, "GET", "/api/quizzes/"+testQuizID+"/questions/Q9/hint", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = ta.do(t, "GET", "/api/quizzes/bad-id/questions/Q1/hint", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRetryChain(t *testing.T) {
	ta := newTestApp()
	ta.submissions.On("RetryChain", "student-1", testSubmissionID).
		Return([]dto.SubmissionResponse{{ID: testSubmissionID}}, nil)

	resp, _ := ta.do(t, "GET", "/api/quizzes/submissions/"+testSubmissionID+"/chain", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTestEmail(t *testing.T) {
	ta := newTestApp()
	ta.notifications.On("SendTestEmail", "ok@example.com").Return(nil)
	ta.notifications.On("SendTestEmail", "down@example.com").Return(domain.NewInternalError("Failed to send test email", errors.New("dial tcp")))

	resp, data := ta.do(t, "POST", "/api/quizzes/test-email", map[string]string{"email": "ok@example.com"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Test email sent successfully"}`, string(data))

	resp, _ = ta.do(t, "POST", "/api/quizzes/test-email", map[string]string{"email": "down@example.com"})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, _ = ta.do(t, "POST", "/api/quizzes/test-email", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
