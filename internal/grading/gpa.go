package grading

import (
	"strings"
	"time"

	"github.com/jonathan/academic-tracker/internal/types"
)

// ComputeGPA returns the credit-weighted average grade point of the courses.
// No filtering is applied: zero-credit courses vanish from both sums.
// Returns 0 for an empty slice or a non-positive credit total.
func ComputeGPA(courses []types.Course) float64 {
	if len(courses) == 0 {
		return 0
	}

	var qualityPoints, credits float64
	for _, c := range courses {
		qualityPoints += c.GradePoint * c.Credits
		credits += c.Credits
	}

	if credits <= 0 {
		return 0
	}
	return qualityPoints / credits
}

// ComputeCGPA returns the cumulative GPA, weighting each semester GPA by its credit total.
// This is equivalent to ComputeGPA over every course of every semester, provided each
// TotalCredits is the true sum of its courses' credits.
func ComputeCGPA(semesters []types.Semester) float64 {
	if len(semesters) == 0 {
		return 0
	}

	var qualityPoints, credits float64
	for _, s := range semesters {
		qualityPoints += s.GPA * s.TotalCredits
		credits += s.TotalCredits
	}

	if credits <= 0 {
		return 0
	}
	return qualityPoints / credits
}

// TotalCredits sums the credits of the courses.
func TotalCredits(courses []types.Course) float64 {
	var total float64
	for _, c := range courses {
		total += c.Credits
	}
	return total
}

// TotalSemesterCredits sums the stored credit totals of the semesters.
func TotalSemesterCredits(semesters []types.Semester) float64 {
	var total float64
	for _, s := range semesters {
		total += s.TotalCredits
	}
	return total
}

// IsValidCourse reports whether a course can take part in a committed semester GPA:
// non-empty name, positive credits and a grade known to the scale.
func IsValidCourse(c types.Course, scale Scale) bool {
	if strings.TrimSpace(c.Name) == "" || c.Credits <= 0 {
		return false
	}
	_, ok := scale.Points(c.Grade)
	return ok
}

// ValidCourses returns the courses that pass IsValidCourse, in their original order.
func ValidCourses(courses []types.Course, scale Scale) []types.Course {
	valid := make([]types.Course, 0, len(courses))
	for _, c := range courses {
		if IsValidCourse(c, scale) {
			valid = append(valid, c)
		}
	}
	return valid
}

// AssignGradePoints returns a copy of the courses with every grade point re-derived from
// the scale. Unknown grades get 0.
func AssignGradePoints(courses []types.Course, scale Scale) []types.Course {
	out := make([]types.Course, len(courses))
	for i, c := range courses {
		points, _ := scale.Points(c.Grade)
		c.GradePoint = points
		out[i] = c
	}
	return out
}

// BuildSemester commits a draft: grade points are assigned under the scale, invalid rows are
// dropped and GPA and TotalCredits are computed from what remains.
// A draft without valid courses yields a semester with GPA 0 and TotalCredits 0.
func BuildSemester(draft types.SemesterDraft, scale Scale, id string, now time.Time) types.Semester {
	courses := AssignGradePoints(ValidCourses(draft.Courses, scale), scale)
	return types.Semester{
		ID:           id,
		Name:         draft.Name,
		Courses:      courses,
		GPA:          ComputeGPA(courses),
		TotalCredits: TotalCredits(courses),
		Date:         now.UTC().Format(time.RFC3339),
	}
}

// Recompute returns the semester with grade points re-derived under the scale and GPA and
// TotalCredits recalculated. Every course is kept in the list, but a course whose grade the
// scale does not know adds nothing to either the points or the credit total.
func Recompute(semester types.Semester, scale Scale) types.Semester {
	courses := AssignGradePoints(semester.Courses, scale)
	graded := make([]types.Course, 0, len(courses))
	for _, c := range courses {
		if _, ok := scale.Points(c.Grade); ok {
			graded = append(graded, c)
		}
	}

	semester.Courses = courses
	semester.GPA = ComputeGPA(graded)
	semester.TotalCredits = TotalCredits(graded)
	return semester
}
