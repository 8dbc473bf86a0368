// Package types provides type definitions for the academic records used throughout the tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Course represents one graded unit inside a semester.
// GradePoint is assigned from the active grading scale when the course is entered or
// recomputed; it is never re-derived lazily from Grade.
type Course struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Credits    float64 `json:"credits"`
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"gradePoint"`
}

// Semester represents one completed grading period.
// GPA and TotalCredits are always consistent with Courses once persisted.
type Semester struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Courses      []Course `json:"courses"`
	GPA          float64  `json:"gpa"`
	TotalCredits float64  `json:"totalCredits"`
	Date         string   `json:"date"` // RFC 3339 creation timestamp
}

// SemesterDraft is a caller-owned, in-progress semester. It is never visible to the
// aggregation functions until committed into a Semester.
type SemesterDraft struct {
	Name    string
	Courses []Course
}

// CloneCourses returns a copy of the semester's course slice.
func (s Semester) CloneCourses() []Course {
	if s.Courses == nil {
		return nil
	}
	out := make([]Course, len(s.Courses))
	copy(out, s.Courses)
	return out
}
