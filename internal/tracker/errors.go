package tracker

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrSemesterNotFound indicates no stored semester has the identifier
type ErrSemesterNotFound struct {
	ID string
}

func (e *ErrSemesterNotFound) Error() string {
	return fmt.Sprintf("semester not found: %s", e.ID)
}

// ErrNoValidCourses indicates a semester was submitted without a single complete course row
type ErrNoValidCourses struct {
	Name string
}

func (e *ErrNoValidCourses) Error() string {
	return fmt.Sprintf("semester %q has no valid courses (each needs a name, credits > 0 and a recognized grade)", e.Name)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// newValidationError converts validator output into an ErrValidation for the first failing field.
func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: fe.Field(), Message: validationMessage(fe)}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return fmt.Sprintf("must have at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "grading_scale":
		return "must be 4 or 5"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
