// Package tracker implements the academic record operations on top of a store.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/academic-tracker/internal/analytics"
	"github.com/jonathan/academic-tracker/internal/grading"
	"github.com/jonathan/academic-tracker/internal/store"
	"github.com/jonathan/academic-tracker/internal/types"
)

// Tracker provides the business logic for recording semesters and deriving standing.
// Mutations are serialized so read-modify-write cycles never interleave.
type Tracker struct {
	store  store.Store
	logger *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// New creates a Tracker backed by the given store
func New(st store.Store, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Snapshot is a consistent view of everything derived from the store.
type Snapshot struct {
	Semesters []types.Semester   `json:"semesters"`
	Settings  types.AppSettings  `json:"settings"`
	Standing  analytics.Standing `json:"standing"`
	Summary   analytics.Summary  `json:"summary"`
}

// AddSemester validates the request, commits the draft under the active scale and appends it.
func (t *Tracker) AddSemester(ctx context.Context, req *types.CreateSemesterRequest) (*types.Semester, error) {
	if err := req.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	settings, err := t.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	scale := grading.ScaleFor(settings.GradingScale)

	draft := types.SemesterDraft{
		Name:    strings.TrimSpace(req.Name),
		Courses: t.withCourseIDs(types.ToCourses(req.Courses)),
	}
	semester := grading.BuildSemester(draft, scale, t.newID(), t.now())
	if len(semester.Courses) == 0 {
		return nil, &ErrNoValidCourses{Name: draft.Name}
	}

	if err := t.store.PutSemester(ctx, semester); err != nil {
		t.logger.Error("failed to save semester", zap.String("name", semester.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to save semester: %w", err)
	}

	t.logger.Info("semester added",
		zap.String("id", semester.ID),
		zap.String("name", semester.Name),
		zap.Int("courses", len(semester.Courses)),
		zap.Int("dropped_rows", len(req.Courses)-len(semester.Courses)),
		zap.Float64("gpa", semester.GPA),
	)
	return &semester, nil
}

// UpdateSemester replaces the name and/or courses of a stored semester and recomputes it
// under the active scale. The identifier and recorded date are preserved.
func (t *Tracker) UpdateSemester(ctx context.Context, id string, req *types.UpdateSemesterRequest) (*types.Semester, error) {
	if err := req.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.getSemester(ctx, id)
	if err != nil {
		return nil, err
	}
	settings, err := t.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	scale := grading.ScaleFor(settings.GradingScale)
	if err := checkGrades(req.Courses, scale); err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Courses != nil {
		updated.Courses = t.withCourseIDs(types.ToCourses(req.Courses))
	}
	updated = grading.Recompute(updated, scale)

	if err := t.store.PutSemester(ctx, updated); err != nil {
		t.logger.Error("failed to save semester", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to save semester: %w", err)
	}

	t.logger.Info("semester updated",
		zap.String("id", updated.ID),
		zap.Float64("previous_gpa", existing.GPA),
		zap.Float64("gpa", updated.GPA),
	)
	return &updated, nil
}

// GetSemester returns a stored semester
func (t *Tracker) GetSemester(ctx context.Context, id string) (*types.Semester, error) {
	return t.getSemester(ctx, id)
}

func (t *Tracker) getSemester(ctx context.Context, id string) (*types.Semester, error) {
	semester, err := t.store.GetSemester(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrSemesterNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}
	return semester, nil
}

// ListSemesters returns all semesters in entry order
func (t *Tracker) ListSemesters(ctx context.Context) ([]types.Semester, error) {
	semesters, err := t.store.ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	return semesters, nil
}

// DeleteSemester removes a semester by identifier
func (t *Tracker) DeleteSemester(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.DeleteSemester(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &ErrSemesterNotFound{ID: id}
		}
		t.logger.Error("failed to delete semester", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete semester: %w", err)
	}

	t.logger.Info("semester deleted", zap.String("id", id))
	return nil
}

// Snapshot loads semesters and settings concurrently and derives standing and analytics.
func (t *Tracker) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		semesters []types.Semester
		settings  types.AppSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		semesters, err = t.store.ListSemesters(gctx)
		if err != nil {
			return fmt.Errorf("failed to list semesters: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = t.store.LoadSettings(gctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		Semesters: semesters,
		Settings:  settings,
		Standing:  analytics.ComputeStanding(semesters, grading.ScaleFor(settings.GradingScale)),
		Summary:   analytics.Summarize(semesters),
	}, nil
}

// Standing returns the dashboard figures: CGPA, total credits, latest GPA and class.
func (t *Tracker) Standing(ctx context.Context) (*analytics.Standing, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &snap.Standing, nil
}

// Analytics returns highest, lowest and average semester GPA with the recent trend.
func (t *Tracker) Analytics(ctx context.Context) (*analytics.Summary, error) {
	semesters, err := t.ListSemesters(ctx)
	if err != nil {
		return nil, err
	}
	sum := analytics.Summarize(semesters)
	return &sum, nil
}

// Goal projects the GPA needed over the remaining credits to reach the target CGPA.
func (t *Tracker) Goal(ctx context.Context, req *types.GoalRequest) (*grading.Goal, error) {
	if err := req.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	st, err := t.Standing(ctx)
	if err != nil {
		return nil, err
	}

	scale := grading.ScaleFor(st.Scale)
	required := grading.RequiredGPA(st.CGPA, st.TotalCredits, req.TargetCGPA, req.RemainingCredits)
	goal := grading.AssessGoal(required, scale)

	t.logger.Debug("goal projected",
		zap.Float64("target", req.TargetCGPA),
		zap.Float64("remaining_credits", req.RemainingCredits),
		zap.Float64("required", goal.Required),
		zap.String("difficulty", goal.Difficulty),
	)
	return &goal, nil
}

// Settings returns the current settings
func (t *Tracker) Settings(ctx context.Context) (*types.AppSettings, error) {
	settings, err := t.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings applies a partial settings change. A scale change affects semesters
// recorded or edited afterwards; stored semesters keep their grade points.
func (t *Tracker) UpdateSettings(ctx context.Context, req *types.UpdateSettingsRequest) (*types.AppSettings, error) {
	if err := req.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	settings, err := t.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	previous := settings
	if req.GradingScale != nil {
		settings.GradingScale = *req.GradingScale
	}
	if req.Theme != nil {
		settings.Theme = types.Theme(*req.Theme)
	}

	if err := t.store.SaveSettings(ctx, settings); err != nil {
		t.logger.Error("failed to save settings", zap.Error(err))
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	if previous.GradingScale != settings.GradingScale {
		t.logger.Info("grading scale changed",
			zap.Float64("from", previous.GradingScale),
			zap.Float64("to", settings.GradingScale),
		)
	}
	return &settings, nil
}

// Reset clears all semesters and restores default settings.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Reset(ctx); err != nil {
		t.logger.Error("failed to reset academic record", zap.Error(err))
		return fmt.Errorf("failed to reset: %w", err)
	}

	t.logger.Info("academic record reset")
	return nil
}

// checkGrades rejects edited courses whose grade the active scale does not know.
func checkGrades(courses []types.CourseInput, scale grading.Scale) error {
	for i, c := range courses {
		if _, ok := scale.Points(c.Grade); !ok {
			return &ErrValidation{
				Field:   fmt.Sprintf("courses[%d].grade", i),
				Message: fmt.Sprintf("unknown grade %q on the %s scale", c.Grade, scale),
			}
		}
	}
	return nil
}

// withCourseIDs assigns a fresh identifier to every course that lacks one.
func (t *Tracker) withCourseIDs(courses []types.Course) []types.Course {
	for i := range courses {
		if courses[i].ID == "" {
			courses[i].ID = t.newID()
		}
	}
	return courses
}
