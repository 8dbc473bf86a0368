// Package store persists the semester history and application settings.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/academic-tracker/internal/types"
)

// ErrNotFound is returned when a semester id is not present in the store.
var ErrNotFound = errors.New("semester not found")

// Store is the single source of truth for academic history and settings.
// Implementations are safe for concurrent use and serialize their own read-modify-write
// cycles, so callers always observe a consistent snapshot.
type Store interface {
	// ListSemesters returns every semester in entry order.
	ListSemesters(ctx context.Context) ([]types.Semester, error)
	// GetSemester returns ErrNotFound when the id is unknown.
	GetSemester(ctx context.Context, id string) (*types.Semester, error)
	// PutSemester inserts a new semester at the end, or replaces the one with the same id
	// in place.
	PutSemester(ctx context.Context, semester types.Semester) error
	// DeleteSemester returns ErrNotFound when the id is unknown.
	DeleteSemester(ctx context.Context, id string) error
	// LoadSettings returns the defaults when nothing has been saved.
	LoadSettings(ctx context.Context) (types.AppSettings, error)
	SaveSettings(ctx context.Context, settings types.AppSettings) error
	// Reset removes all semesters and restores default settings.
	Reset(ctx context.Context) error
	Close() error
}

// LoadError represents an error reading or decoding a persisted document
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// cloneSemester returns a deep copy so callers can never alias stored course slices.
// Nil course lists are normalized to empty ones.
func cloneSemester(s types.Semester) types.Semester {
	s.Courses = s.CloneCourses()
	if s.Courses == nil {
		s.Courses = []types.Course{}
	}
	return s
}

func cloneSemesters(in []types.Semester) []types.Semester {
	out := make([]types.Semester, len(in))
	for i, s := range in {
		out[i] = cloneSemester(s)
	}
	return out
}

// upsert replaces the semester with the same id or appends it.
func upsert(semesters []types.Semester, semester types.Semester) []types.Semester {
	for i := range semesters {
		if semesters[i].ID == semester.ID {
			semesters[i] = semester
			return semesters
		}
	}
	return append(semesters, semester)
}

// remove drops the semester with the given id and reports whether it was present.
func remove(semesters []types.Semester, id string) ([]types.Semester, bool) {
	for i := range semesters {
		if semesters[i].ID == id {
			return append(semesters[:i], semesters[i+1:]...), true
		}
	}
	return semesters, false
}
