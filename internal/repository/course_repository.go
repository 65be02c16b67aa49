package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// CourseRepo reads subscription courses.  A course fixes the length of a
// subscription in months; course_name is unique.
type CourseRepo struct {
	db *sql.DB
}

// NewCourseRepo returns a CourseRepo bound to the given database.
func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{db: db} }

// ListAll returns all courses ordered by duration, then id.
func (r *CourseRepo) ListAll(ctx context.Context) ([]model.SubscriptionCourse, error) {
	const q = `SELECT id, course_name, duration_months FROM SubscriptionCourse ORDER BY duration_months, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SubscriptionCourse
	for rows.Next() {
		var c model.SubscriptionCourse
		if err := rows.Scan(&c.ID, &c.CourseName, &c.DurationMonths); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByNameTx looks up a course by its unique name.  It returns
// ErrCourseNotFound when no row matches.
func (r *CourseRepo) GetByNameTx(ctx context.Context, tx *sql.Tx, name string) (model.SubscriptionCourse, error) {
	const q = `SELECT id, course_name, duration_months FROM SubscriptionCourse WHERE course_name = ?`
	var c model.SubscriptionCourse
	if err := tx.QueryRowContext(ctx, q, name).Scan(&c.ID, &c.CourseName, &c.DurationMonths); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SubscriptionCourse{}, ErrCourseNotFound
		}
		return model.SubscriptionCourse{}, err
	}
	return c, nil
}
