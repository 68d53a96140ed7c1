package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studytracker/internal/models"
)

// ReportRepository exposes the read-only multi-table queries behind reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository instantiates the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// FullReport joins every course with its assignments; courses without assignments yield one row with nil assignment fields.
func (r *ReportRepository) FullReport(ctx context.Context) ([]models.FullReportRow, error) {
	const query = `SELECT c.name AS course_name, c.teacher, c.credits,
            a.title AS assignment_title, a.due_date, a.grade
        FROM courses c
        LEFT JOIN assignments a ON c.id = a.course_id
        ORDER BY c.name, a.due_date, a.id`
	var rows []models.FullReportRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query full report: %w", err)
	}
	return rows, nil
}

// GradedAssignments returns the grade and course credits of every graded assignment.
func (r *ReportRepository) GradedAssignments(ctx context.Context) ([]models.GradedAssignment, error) {
	const query = `SELECT a.grade, c.credits
        FROM assignments a
        JOIN courses c ON a.course_id = c.id
        WHERE a.grade IS NOT NULL`
	var rows []models.GradedAssignment
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query graded assignments: %w", err)
	}
	return rows, nil
}

// StudySummary groups sessions per course, skipping courses without study time, most minutes first.
func (r *ReportRepository) StudySummary(ctx context.Context) ([]models.StudySummary, error) {
	const query = `SELECT c.id AS course_id, c.name AS course_name,
            COUNT(s.id) AS session_count,
            COALESCE(SUM(s.duration_minutes), 0) AS total_minutes
        FROM courses c
        LEFT JOIN study_sessions s ON c.id = s.course_id
        GROUP BY c.id, c.name
        HAVING COALESCE(SUM(s.duration_minutes), 0) > 0
        ORDER BY total_minutes DESC, c.name`
	var rows []models.StudySummary
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query study summary: %w", err)
	}
	return rows, nil
}

// CourseAverages returns the mean grade of courses with at least one graded assignment, best first.
func (r *ReportRepository) CourseAverages(ctx context.Context) ([]models.CourseAverage, error) {
	const query = `SELECT c.id AS course_id, c.name AS course_name,
            AVG(a.grade) AS avg_grade,
            COUNT(a.id) AS graded_count
        FROM courses c
        JOIN assignments a ON a.course_id = c.id
        WHERE a.grade IS NOT NULL
        GROUP BY c.id, c.name
        ORDER BY avg_grade DESC, c.name`
	var rows []models.CourseAverage
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query course averages: %w", err)
	}
	return rows, nil
}

// StudyEfficiency returns study minutes and grade average for every course, ordered by name.
func (r *ReportRepository) StudyEfficiency(ctx context.Context) ([]models.StudyEfficiency, error) {
	const query = `SELECT c.id AS course_id, c.name AS course_name,
            COALESCE((SELECT SUM(s.duration_minutes) FROM study_sessions s WHERE s.course_id = c.id), 0) AS total_minutes,
            COALESCE((SELECT AVG(a.grade) FROM assignments a WHERE a.course_id = c.id AND a.grade IS NOT NULL), 0) AS avg_grade,
            (SELECT COUNT(*) FROM assignments a WHERE a.course_id = c.id AND a.grade IS NOT NULL) AS graded_count
        FROM courses c
        ORDER BY c.name`
	var rows []models.StudyEfficiency
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query study efficiency: %w", err)
	}
	return rows, nil
}
