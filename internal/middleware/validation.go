package middleware

import (
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const historyFilterKey = "validated_history_filter"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateIDParam rejects requests whose path parameter is not a ULID.
func (vm *ValidationMiddleware) ValidateIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateID(param, c.Params(param)); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}

// ValidateHistoryQuery parses the history filters and stores them for the handler.
func (vm *ValidationMiddleware) ValidateHistoryQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.HistoryQuery
		if err := c.QueryParser(&q); err != nil {
			return domain.NewValidationError("invalid query parameters")
		}
		filter, errs := vm.validator.ParseHistoryQuery(q)
		if len(errs) > 0 {
			return errs
		}
		c.Locals(historyFilterKey, filter)
		return c.Next()
	}
}

// HistoryFilter returns the filter stored by ValidateHistoryQuery.
func HistoryFilter(c *fiber.Ctx) domain.HistoryFilter {
	filter, _ := c.Locals(historyFilterKey).(domain.HistoryFilter)
	return filter
}
