package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/pkg/database"
)

// CourseRepository handles persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns all courses ordered by name.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, teacher, credits FROM courses ORDER BY name`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID returns a course by id or sql.ErrNoRows.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := r.db.Rebind(`SELECT id, name, teacher, credits FROM courses WHERE id = ?`)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Exists reports whether a course with the id is present.
func (r *CourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "courses", id)
}

// Create persists a new course and fills in its generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := r.db.Rebind(`INSERT INTO courses (name, teacher, credits) VALUES (?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &course.ID, query, course.Name, course.Teacher, course.Credits); err != nil {
		return fmt.Errorf("create course: %w", database.Classify(err))
	}
	return nil
}

// Delete removes a course; dependent assignments and sessions cascade.
// The boolean is false when no course had the id.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM courses WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", database.Classify(err))
	}
	return affected(res)
}
