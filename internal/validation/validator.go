package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/dto"
	"ai-quizzer/internal/util"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
// and understands the "ulid" tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("ulid", func(fl validator.FieldLevel) bool {
		return util.IsULID(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateStruct runs the struct tags of s.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "body", Message: err.Error()}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.ValidationError{
			Field:   fieldPath(fe),
			Message: messageFor(fe),
			Value:   valueFor(fe),
		})
	}
	return out
}

// ValidateID checks a path parameter that must be a ULID.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if !util.IsULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, id)}
	}
	return nil
}

// ParseHistoryQuery turns raw query parameters into a filter. Empty
// parameters are absent; malformed ones are reported rather than ignored.
func (v *Validator) ParseHistoryQuery(q dto.HistoryQuery) (domain.HistoryFilter, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	filter := domain.HistoryFilter{
		Grade:   strings.TrimSpace(q.Grade),
		Subject: strings.TrimSpace(q.Subject),
	}

	filter.MarksGTE = parseMarks("marks_gte", q.MarksGTE, &errs)
	filter.MarksLTE = parseMarks("marks_lte", q.MarksLTE, &errs)
	filter.From = parseDate("from", q.From, &errs)
	filter.To = parseDate("to", q.To, &errs)
	filter.Date = parseDate("date", q.Date, &errs)

	if len(errs) > 0 {
		return domain.HistoryFilter{}, errs
	}
	return filter, nil
}

// ToDomainError wraps field errors into a VALIDATION_ERROR.
func ToDomainError(errs domain.ValidationErrors) *domain.DomainError {
	return domain.NewError(domain.CodeValidation, errs.Error(), nil).WithContext("fields", []domain.ValidationError(errs))
}

func parseMarks(field, raw string, errs *domain.ValidationErrors) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, domain.NewInvalidFormatError(field, raw))
		return nil
	}
	if n < 0 || n > 100 {
		*errs = append(*errs, domain.NewOutOfRangeError(field, n, 0, 100))
		return nil
	}
	return &n
}

// parseDate accepts YYYY-MM-DD or RFC 3339 and normalizes to UTC.
func parseDate(field, raw string, errs *domain.ValidationErrors) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	*errs = append(*errs, domain.NewInvalidFormatError(field, raw))
	return time.Time{}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "ulid":
		return "has an invalid format"
	case "min":
		switch fe.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func valueFor(fe validator.FieldError) interface{} {
	switch fe.Kind() {
	case reflect.String, reflect.Int, reflect.Int64:
		if fe.Tag() == "required" {
			return nil
		}
		return fe.Value()
	default:
		return nil
	}
}
