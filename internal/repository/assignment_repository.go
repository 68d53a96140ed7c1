package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/pkg/database"
)

const assignmentWithCourseColumns = `a.id, a.course_id, c.name AS course_name, a.title, a.due_date, a.grade`

// AssignmentRepository handles assignment persistence.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns every assignment with its course name, earliest due date first.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	query := `SELECT ` + assignmentWithCourseColumns + `
        FROM assignments a
        JOIN courses c ON a.course_id = c.id
        ORDER BY a.due_date, a.id`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListByCourse returns the assignments of one course ordered by due date.
func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	query := r.db.Rebind(`SELECT id, course_id, title, due_date, grade
        FROM assignments
        WHERE course_id = ?
        ORDER BY due_date, id`)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, courseID); err != nil {
		return nil, fmt.Errorf("list course assignments: %w", err)
	}
	return assignments, nil
}

// FindByID returns an assignment joined with its course name, or sql.ErrNoRows.
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := r.db.Rebind(`SELECT ` + assignmentWithCourseColumns + `
        FROM assignments a
        JOIN courses c ON a.course_id = c.id
        WHERE a.id = ?`)
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Exists reports whether an assignment with the id is present.
func (r *AssignmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "assignments", id)
}

// Create persists a new assignment and fills in its generated id.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := r.db.Rebind(`INSERT INTO assignments (course_id, title, due_date, grade) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &assignment.ID, query, assignment.CourseID, assignment.Title, assignment.DueDate, assignment.Grade); err != nil {
		return fmt.Errorf("create assignment: %w", database.Classify(err))
	}
	return nil
}

// UpdateGrade sets the grade of an assignment. The boolean is false when no row matched.
func (r *AssignmentRepository) UpdateGrade(ctx context.Context, id int64, grade float64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE assignments SET grade = ? WHERE id = ?`), grade, id)
	if err != nil {
		return false, fmt.Errorf("update grade: %w", database.Classify(err))
	}
	return affected(res)
}
