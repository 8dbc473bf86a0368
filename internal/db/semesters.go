package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/academic-tracker/internal/store"
	"github.com/jonathan/academic-tracker/internal/types"
)

// ListSemesters returns every semester in entry order with its courses. Both reads run in
// one read-only repeatable-read transaction so they observe the same snapshot.
func (db *DB) ListSemesters(ctx context.Context) ([]types.Semester, error) {
	tx, err := db.beginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	semesters, err := listSemesterRows(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := attachCourses(ctx, tx, semesters); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit semester listing: %w", err)
	}
	return semesters, nil
}

// beginSnapshot starts a read-only repeatable-read transaction.
func (db *DB) beginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	return tx, nil
}

func listSemesterRows(ctx context.Context, tx pgx.Tx) ([]types.Semester, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, name, gpa, total_credits, recorded_at
		 FROM semesters ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	defer rows.Close()

	semesters := []types.Semester{}
	for rows.Next() {
		var s types.Semester
		if err := rows.Scan(&s.ID, &s.Name, &s.GPA, &s.TotalCredits, &s.Date); err != nil {
			return nil, fmt.Errorf("failed to scan semester: %w", err)
		}
		s.Courses = []types.Course{}
		semesters = append(semesters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating semesters: %w", err)
	}
	return semesters, nil
}

// attachCourses fills in the course list of each semester, keeping course order.
func attachCourses(ctx context.Context, tx pgx.Tx, semesters []types.Semester) error {
	index := make(map[string]int, len(semesters))
	for i := range semesters {
		index[semesters[i].ID] = i
	}

	rows, err := tx.Query(ctx,
		`SELECT semester_id, id, name, credits, grade, grade_point
		 FROM courses ORDER BY semester_id, position`,
	)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var semesterID string
		var c types.Course
		if err := rows.Scan(&semesterID, &c.ID, &c.Name, &c.Credits, &c.Grade, &c.GradePoint); err != nil {
			return fmt.Errorf("failed to scan course: %w", err)
		}
		if i, ok := index[semesterID]; ok {
			semesters[i].Courses = append(semesters[i].Courses, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating courses: %w", err)
	}
	return nil
}

// GetSemester retrieves a semester by ID, returning store.ErrNotFound if absent
func (db *DB) GetSemester(ctx context.Context, id string) (*types.Semester, error) {
	tx, err := db.beginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var s types.Semester
	err = tx.QueryRow(ctx,
		`SELECT id, name, gpa, total_credits, recorded_at FROM semesters WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.GPA, &s.TotalCredits, &s.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}

	courses, err := coursesFor(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	s.Courses = courses

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit semester read: %w", err)
	}
	return &s, nil
}

func coursesFor(ctx context.Context, tx pgx.Tx, semesterID string) ([]types.Course, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, name, credits, grade, grade_point
		 FROM courses WHERE semester_id = $1 ORDER BY position`,
		semesterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	defer rows.Close()

	courses := []types.Course{}
	for rows.Next() {
		var c types.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Credits, &c.Grade, &c.GradePoint); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// PutSemester upserts a semester and replaces its course list in one transaction.
// A replaced semester keeps its original position.
func (db *DB) PutSemester(ctx context.Context, semester types.Semester) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO semesters (id, name, gpa, total_credits, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   gpa = EXCLUDED.gpa,
		   total_credits = EXCLUDED.total_credits,
		   recorded_at = EXCLUDED.recorded_at,
		   updated_at = NOW()`,
		semester.ID, semester.Name, semester.GPA, semester.TotalCredits, semester.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert semester: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM courses WHERE semester_id = $1`, semester.ID); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}

	if len(semester.Courses) > 0 {
		batch := &pgx.Batch{}
		for i, c := range semester.Courses {
			batch.Queue(
				`INSERT INTO courses (semester_id, position, id, name, credits, grade, grade_point)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				semester.ID, i, c.ID, c.Name, c.Credits, c.Grade, c.GradePoint,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert courses: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit semester: %w", err)
	}
	return nil
}

// DeleteSemester removes a semester and its courses
func (db *DB) DeleteSemester(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete semester: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
