package handler

import (
	"ai-quizzer/internal/config"
	"ai-quizzer/internal/middleware"
	"ai-quizzer/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Routes bundles what RegisterRoutes needs.
type Routes struct {
	Auth        service.AuthService
	Quizzes     *QuizHandler
	Submissions *SubmissionHandler
	Validation  *middleware.ValidationMiddleware
	RateLimit   config.RateLimitConfig
}

// RegisterRoutes mounts the quiz API under /api/quizzes. Fixed paths are
// registered before /:quizId so they are not captured by it.
func RegisterRoutes(app fiber.Router, r Routes) {
	// generation and hints share one budget per student
	aiLimit := middleware.RateLimit(r.RateLimit.GeneratePerMinute, r.RateLimit.Burst)

	quizzes := app.Group("/api/quizzes", middleware.Protected(r.Auth))
	quizzes.Post("/generate", aiLimit, r.Quizzes.GenerateQuiz)
	quizzes.Post("/submit", r.Submissions.Submit)
	quizzes.Post("/retry", r.Submissions.Retry)
	quizzes.Get("/history", r.Validation.ValidateHistoryQuery(), r.Submissions.History)
	quizzes.Get("/submissions/:submissionId/chain", r.Validation.ValidateIDParam("submissionId"), r.Submissions.RetryChain)
	quizzes.Post("/test-email", r.Submissions.TestEmail)
	quizzes.Get("/:quizId/questions/:questionId/hint", r.Validation.ValidateIDParam("quizId"), aiLimit, r.Quizzes.GetHint)
	quizzes.Get("/:quizId", r.Quizzes.GetQuizByID)
}
