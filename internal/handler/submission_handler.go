package handler

import (
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/middleware"
	"ai-quizzer/internal/service"
	"ai-quizzer/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler handles submission and history requests
type SubmissionHandler struct {
	submissions   service.SubmissionService
	notifications service.NotificationService
	validator     *validation.Validator
}

func NewSubmissionHandler(
	submissions service.SubmissionService,
	notifications service.NotificationService,
	validator *validation.Validator,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissions:   submissions,
		notifications: notifications,
		validator:     validator,
	}
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Grades the answers, stores the submission and returns improvement suggestions
// @Tags submission
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.SubmissionResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/submit [post]
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.submissions.Submit(c.UserContext(), middleware.UserID(c), middleware.UserEmail(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Retry godoc
// @Summary Retry a quiz
// @Description Grades a new attempt linked to one of the caller's earlier submissions
// @Tags submission
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RetryQuizRequest true "Answers"
// @Success 200 {object} dto.SubmissionResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/retry [post]
func (h *SubmissionHandler) Retry(c *fiber.Ctx) error {
	var req dto.RetryQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.submissions.Retry(c.UserContext(), middleware.UserID(c), middleware.UserEmail(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// History godoc
// @Summary Quiz history
// @Description Lists the caller's submissions, newest first
// @Tags submission
// @Produce json
// @Security BearerAuth
// @Param grade query string false "Grade level"
// @Param subject query string false "Subject"
// @Param marks_gte query int false "Minimum score (0-100)"
// @Param marks_lte query int false "Maximum score (0-100)"
// @Param from query string false "Completed on or after (YYYY-MM-DD)"
// @Param to query string false "Completed on or before (YYYY-MM-DD)"
// @Param date query string false "Completed on this day; overrides from/to"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /quizzes/history [get]
func (h *SubmissionHandler) History(c *fiber.Ctx) error {
	list, err := h.submissions.History(c.UserContext(), middleware.UserID(c), middleware.HistoryFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// RetryChain godoc
// @Summary Retry chain of a submission
// @Description Returns the submission and every attempt it retries, newest first
// @Tags submission
// @Produce json
// @Security BearerAuth
// @Param submissionId path string true "Submission ID (ULID)"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/submissions/{submissionId}/chain [get]
func (h *SubmissionHandler) RetryChain(c *fiber.Ctx) error {
	chain, err := h.submissions.RetryChain(c.UserContext(), middleware.UserID(c), c.Params("submissionId"))
	if err != nil {
		return err
	}
	return c.JSON(chain)
}

// TestEmail godoc
// @Summary Send a test email
// @Description Verifies the SMTP configuration by sending a test message
// @Tags notification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TestEmailRequest true "Recipient"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/test-email [post]
func (h *SubmissionHandler) TestEmail(c *fiber.Ctx) error {
	var req dto.TestEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}
	if err := h.notifications.SendTestEmail(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Test email sent successfully"})
}
