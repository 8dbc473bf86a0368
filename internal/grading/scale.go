// Package grading implements the GPA/CGPA calculation engine: the grading-scale table,
// weighted averages over courses and semesters, goal projection and academic classification.
//
// Every function in this package is pure. Inputs are never mutated, so callers may use
// them from any number of goroutines without coordination.
package grading

import "github.com/jonathan/academic-tracker/internal/types"

// Scale identifies one of the two supported grading scales.
type Scale int

// Supported scales
const (
	Scale4 Scale = iota // 4.0 ceiling, also the fallback for unrecognized ceilings
	Scale5              // 5.0 ceiling
)

// gradeEntry is one row of a scale table.
type gradeEntry struct {
	Grade  string
	Points float64
}

// Tables are ordered best to worst; display order follows the slice.
var (
	table4 = []gradeEntry{
		{"A+", 4.0}, {"A", 4.0}, {"B+", 3.5}, {"B", 3.0}, {"C+", 2.5},
		{"C", 2.0}, {"D+", 1.5}, {"D", 1.0}, {"F", 0.0},
	}
	table5 = []gradeEntry{
		{"A+", 5.0}, {"A", 4.5}, {"B+", 4.0}, {"B", 3.5}, {"C+", 3.0},
		{"C", 2.5}, {"D+", 2.0}, {"D", 1.5}, {"F", 0.0},
	}
)

// ScaleFor maps a stored ceiling to a Scale. Anything other than 5.0 is the 4.0 scale.
func ScaleFor(ceiling float64) Scale {
	if ceiling == types.GradingScale5 {
		return Scale5
	}
	return Scale4
}

// Ceiling returns the maximum grade point of the scale.
func (s Scale) Ceiling() float64 {
	if s == Scale5 {
		return types.GradingScale5
	}
	return types.GradingScale4
}

// String returns the ceiling formatted as it is shown to users.
func (s Scale) String() string {
	if s == Scale5 {
		return "5.0"
	}
	return "4.0"
}

func (s Scale) entries() []gradeEntry {
	if s == Scale5 {
		return table5
	}
	return table4
}

// Points looks up the grade-point value of a letter grade.
// The boolean is false for grades outside the scale; such courses are invalid and must be
// left out of aggregation, unlike an explicit F which is worth 0 points but still counts.
func (s Scale) Points(grade string) (float64, bool) {
	for _, e := range s.entries() {
		if e.Grade == grade {
			return e.Points, true
		}
	}
	return 0, false
}

// Table returns a fresh letter-grade to grade-point mapping for the scale.
func (s Scale) Table() map[string]float64 {
	entries := s.entries()
	m := make(map[string]float64, len(entries))
	for _, e := range entries {
		m[e.Grade] = e.Points
	}
	return m
}

// Grades returns the letter grades of the scale in display order.
func (s Scale) Grades() []string {
	entries := s.entries()
	grades := make([]string, len(entries))
	for i, e := range entries {
		grades[i] = e.Grade
	}
	return grades
}

// GradeScale returns the letter-grade mapping for a stored ceiling.
func GradeScale(ceiling float64) map[string]float64 {
	return ScaleFor(ceiling).Table()
}
