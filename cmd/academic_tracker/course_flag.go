package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/academic-tracker/internal/types"
)

// courseList is a repeatable --course flag of the form "Name:credits:grade".
// The name may itself contain colons; credits and grade are taken from the right.
type courseList []types.CourseInput

func (c *courseList) String() string {
	parts := make([]string, 0, len(*c))
	for _, in := range *c {
		parts = append(parts, fmt.Sprintf("%s:%g:%s", in.Name, in.Credits, in.Grade))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (c *courseList) Set(value string) error {
	in, err := parseCourse(value)
	if err != nil {
		return err
	}
	*c = append(*c, in)
	return nil
}

func (c *courseList) Type() string {
	return "course"
}

// Reset clears accumulated values so the flag can be parsed again.
func (c *courseList) Reset() {
	*c = nil
}

func parseCourse(value string) (types.CourseInput, error) {
	gradeIdx := strings.LastIndex(value, ":")
	if gradeIdx < 0 {
		return types.CourseInput{}, fmt.Errorf("invalid course %q: expected Name:credits:grade", value)
	}
	creditsIdx := strings.LastIndex(value[:gradeIdx], ":")
	if creditsIdx < 0 {
		return types.CourseInput{}, fmt.Errorf("invalid course %q: expected Name:credits:grade", value)
	}

	credits, err := strconv.ParseFloat(strings.TrimSpace(value[creditsIdx+1:gradeIdx]), 64)
	if err != nil {
		return types.CourseInput{}, fmt.Errorf("invalid credits in course %q: %w", value, err)
	}

	return types.CourseInput{
		Name:    strings.TrimSpace(value[:creditsIdx]),
		Credits: credits,
		Grade:   strings.ToUpper(strings.TrimSpace(value[gradeIdx+1:])),
	}, nil
}
