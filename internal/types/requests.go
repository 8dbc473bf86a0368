package types

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// requestValidator returns the shared validator with the tracker's custom rules registered.
func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		_ = validate.RegisterValidation("grading_scale", func(fl validator.FieldLevel) bool {
			v := fl.Field().Float()
			return v == GradingScale4 || v == GradingScale5
		})
	})
	return validate
}

// CourseInput represents a course row as entered by the user.
// Rows that are incomplete (empty name, no credits, unknown grade) are accepted here
// and dropped when the semester is committed.
type CourseInput struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name" validate:"max=200"`
	Credits float64 `json:"credits" validate:"gte=0"`
	Grade   string  `json:"grade" validate:"max=4"`
}

// CreateSemesterRequest represents the request to record a new semester.
type CreateSemesterRequest struct {
	Name    string        `json:"name" validate:"required,notblank,max=100"`
	Courses []CourseInput `json:"courses" validate:"required,min=1,dive"`
}

// UpdateSemesterRequest represents an edit of a stored semester.
// Nil fields are left untouched; Courses replaces the whole course list when set.
type UpdateSemesterRequest struct {
	Name    *string       `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Courses []CourseInput `json:"courses,omitempty" validate:"omitempty,dive"`
}

// GoalRequest represents a target CGPA projection request.
type GoalRequest struct {
	TargetCGPA       float64 `json:"targetCGPA" validate:"gt=0"`
	RemainingCredits float64 `json:"remainingCredits" validate:"gt=0"`
}

// UpdateSettingsRequest represents a partial settings update.
type UpdateSettingsRequest struct {
	GradingScale *float64 `json:"gradingScale,omitempty" validate:"omitempty,grading_scale"`
	Theme        *string  `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
}

// Validate validates the CreateSemesterRequest using the validator.
func (r *CreateSemesterRequest) Validate() error {
	return requestValidator().Struct(r)
}

// Validate validates the UpdateSemesterRequest using the validator.
func (r *UpdateSemesterRequest) Validate() error {
	return requestValidator().Struct(r)
}

// Validate validates the GoalRequest using the validator.
func (r *GoalRequest) Validate() error {
	return requestValidator().Struct(r)
}

// Validate validates the UpdateSettingsRequest using the validator.
func (r *UpdateSettingsRequest) Validate() error {
	return requestValidator().Struct(r)
}

// ToCourses converts input rows into draft courses. Grade points are left at zero;
// they are assigned from the active scale when the draft is committed.
func ToCourses(inputs []CourseInput) []Course {
	courses := make([]Course, 0, len(inputs))
	for _, in := range inputs {
		courses = append(courses, Course{
			ID:      in.ID,
			Name:    in.Name,
			Credits: in.Credits,
			Grade:   in.Grade,
		})
	}
	return courses
}
