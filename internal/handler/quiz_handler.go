package handler

import (
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/service"
	"ai-quizzer/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates a multiple-choice quiz with the AI generator and stores it
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetQuizByID godoc
// @Summary Get a quiz
// @Description Returns a stored quiz with its questions
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param quizId path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quizId} [get]
func (h *QuizHandler) GetQuizByID(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuizByID(c.UserContext(), c.Params("quizId"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// GetHint godoc
// @Summary Get a hint for a question
// @Description Returns the stored hint, generating and storing one on first request
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param quizId path string true "Quiz ID (ULID)"
// @Param questionId path string true "Question ID"
// @Success 200 {object} dto.HintResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /quizzes/{quizId}/questions/{questionId}/hint [get]
func (h *QuizHandler) GetHint(c *fiber.Ctx) error {
	hint, err := h.service.GetOrGenerateHint(c.UserContext(), c.Params("quizId"), c.Params("questionId"))
	if err != nil {
		return err
	}
	return c.JSON(hint)
}
