package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/pkg/database"
)

// StudySessionRepository handles study session persistence.
type StudySessionRepository struct {
	db *sqlx.DB
}

// NewStudySessionRepository creates a new study session repository.
func NewStudySessionRepository(db *sqlx.DB) *StudySessionRepository {
	return &StudySessionRepository{db: db}
}

// List returns every session with course name and optional assignment title, newest first.
func (r *StudySessionRepository) List(ctx context.Context) ([]models.StudySession, error) {
	const query = `SELECT s.id, s.course_id, c.name AS course_name, s.assignment_id, a.title AS assignment_title,
            s.date, s.duration_minutes, s.notes
        FROM study_sessions s
        JOIN courses c ON s.course_id = c.id
        LEFT JOIN assignments a ON s.assignment_id = a.id
        ORDER BY s.date DESC, s.id DESC`
	var sessions []models.StudySession
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	return sessions, nil
}

// ListByCourse returns the sessions of one course, newest first.
func (r *StudySessionRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.StudySession, error) {
	query := r.db.Rebind(`SELECT s.id, s.course_id, s.assignment_id, a.title AS assignment_title,
            s.date, s.duration_minutes, s.notes
        FROM study_sessions s
        LEFT JOIN assignments a ON s.assignment_id = a.id
        WHERE s.course_id = ?
        ORDER BY s.date DESC, s.id DESC`)
	var sessions []models.StudySession
	if err := r.db.SelectContext(ctx, &sessions, query, courseID); err != nil {
		return nil, fmt.Errorf("list course study sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns a session with course name and assignment title, or sql.ErrNoRows.
func (r *StudySessionRepository) FindByID(ctx context.Context, id int64) (*models.StudySession, error) {
	query := r.db.Rebind(`SELECT s.id, s.course_id, c.name AS course_name, s.assignment_id, a.title AS assignment_title,
            s.date, s.duration_minutes, s.notes
        FROM study_sessions s
        JOIN courses c ON s.course_id = c.id
        LEFT JOIN assignments a ON s.assignment_id = a.id
        WHERE s.id = ?`)
	var session models.StudySession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// Create persists a new session and fills in its generated id.
func (r *StudySessionRepository) Create(ctx context.Context, session *models.StudySession) error {
	query := r.db.Rebind(`INSERT INTO study_sessions (course_id, assignment_id, date, duration_minutes, notes)
        VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &session.ID, query, session.CourseID, session.AssignmentID, session.Date, session.DurationMinutes, session.Notes); err != nil {
		return fmt.Errorf("create study session: %w", database.Classify(err))
	}
	return nil
}

// Delete removes a session. The boolean is false when no row matched.
func (r *StudySessionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM study_sessions WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete study session: %w", database.Classify(err))
	}
	return affected(res)
}
