package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/pkg/config"
	"github.com/noah-isme/studytracker/pkg/database"
)

func newSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "tracker.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(context.Background(), db))
	return db
}

func floatPtr(v float64) *float64 { return &v }

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

type seeded struct {
	algebra, history, art models.Course
	hw1, hw2, essay       models.Assignment
}

func seed(t *testing.T, db *sqlx.DB) seeded {
	t.Helper()
	ctx := context.Background()
	courses := NewCourseRepository(db)
	assignments := NewAssignmentRepository(db)
	sessions := NewStudySessionRepository(db)

	s := seeded{
		algebra: models.Course{Name: "Algebra", Teacher: "Dr. Noether", Credits: 3},
		history: models.Course{Name: "History", Teacher: "Dr. Tuchman", Credits: 1},
		art:     models.Course{Name: "Art", Teacher: "Ms. Kahlo", Credits: 2},
	}
	require.NoError(t, courses.Create(ctx, &s.algebra))
	require.NoError(t, courses.Create(ctx, &s.history))
	require.NoError(t, courses.Create(ctx, &s.art))

	s.hw1 = models.Assignment{CourseID: s.algebra.ID, Title: "Homework 1", DueDate: "2025-02-01", Grade: floatPtr(90)}
	s.hw2 = models.Assignment{CourseID: s.algebra.ID, Title: "Homework 2", DueDate: "2025-02-10"}
	s.essay = models.Assignment{CourseID: s.history.ID, Title: "Essay", DueDate: "2025-02-05", Grade: floatPtr(60)}
	require.NoError(t, assignments.Create(ctx, &s.hw1))
	require.NoError(t, assignments.Create(ctx, &s.hw2))
	require.NoError(t, assignments.Create(ctx, &s.essay))

	require.NoError(t, sessions.Create(ctx, &models.StudySession{CourseID: s.algebra.ID, AssignmentID: int64Ptr(s.hw1.ID), Date: "2025-01-30", DurationMinutes: 90, Notes: strPtr("chapter 2")}))
	require.NoError(t, sessions.Create(ctx, &models.StudySession{CourseID: s.algebra.ID, Date: "2025-01-31", DurationMinutes: 45}))
	require.NoError(t, sessions.Create(ctx, &models.StudySession{CourseID: s.history.ID, Date: "2025-02-02", DurationMinutes: 30}))
	return s
}

func TestSQLiteCourseRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	first := &models.Course{Name: "Chemistry", Teacher: "Dr. Franklin", Credits: 4}
	second := &models.Course{Name: "Biology", Teacher: "Dr. Darwin", Credits: 2}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, *first, *got)
}

func TestSQLiteDeleteCourseCascades(t *testing.T) {
	db := newSQLiteDB(t)
	s := seed(t, db)
	ctx := context.Background()

	deleted, err := NewCourseRepository(db).Delete(ctx, s.algebra.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	remaining, err := NewAssignmentRepository(db).ListByCourse(ctx, s.algebra.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	sessions, err := NewStudySessionRepository(db).ListByCourse(ctx, s.algebra.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	others, err := NewStudySessionRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, s.history.ID, others[0].CourseID)
}

func TestSQLiteForeignKeyRejectedAsConstraint(t *testing.T) {
	db := newSQLiteDB(t)
	err := NewAssignmentRepository(db).Create(context.Background(), &models.Assignment{CourseID: 999, Title: "Ghost", DueDate: "2025-01-01"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrConstraint))
}

func TestSQLiteSessionsJoinAssignmentTitle(t *testing.T) {
	db := newSQLiteDB(t)
	s := seed(t, db)

	sessions, err := NewStudySessionRepository(db).ListByCourse(context.Background(), s.algebra.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "2025-01-31", sessions[0].Date)
	assert.Nil(t, sessions[0].AssignmentTitle)
	require.NotNil(t, sessions[1].AssignmentTitle)
	assert.Equal(t, "Homework 1", *sessions[1].AssignmentTitle)
	require.NotNil(t, sessions[1].Notes)
	assert.Equal(t, "chapter 2", *sessions[1].Notes)
}

func TestSQLiteReportQueries(t *testing.T) {
	db := newSQLiteDB(t)
	s := seed(t, db)
	repo := NewReportRepository(db)
	ctx := context.Background()

	full, err := repo.FullReport(ctx)
	require.NoError(t, err)
	require.Len(t, full, 4)
	assert.Equal(t, "Algebra", full[0].CourseName)
	assert.Equal(t, "Homework 1", *full[0].AssignmentTitle)
	assert.Equal(t, "Art", full[2].CourseName)
	assert.Nil(t, full[2].AssignmentTitle)
	assert.Nil(t, full[2].Grade)

	graded, err := repo.GradedAssignments(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.GradedAssignment{{Grade: 90, Credits: 3}, {Grade: 60, Credits: 1}}, graded)

	summary, err := repo.StudySummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, s.algebra.ID, summary[0].CourseID)
	assert.Equal(t, 135, summary[0].TotalMinutes)
	assert.Equal(t, 2, summary[0].SessionCount)

	averages, err := repo.CourseAverages(ctx)
	require.NoError(t, err)
	require.Len(t, averages, 2)
	assert.Equal(t, "Algebra", averages[0].CourseName)
	assert.InDelta(t, 90.0, averages[0].AverageGrade, 0.001)
	assert.Equal(t, 1, averages[0].GradedCount)

	efficiency, err := repo.StudyEfficiency(ctx)
	require.NoError(t, err)
	require.Len(t, efficiency, 3)
	assert.Equal(t, "Art", efficiency[0].CourseName)
	assert.Equal(t, 0, efficiency[0].TotalMinutes)
	assert.Equal(t, 0.0, efficiency[0].AverageGrade)
	assert.Equal(t, "History", efficiency[2].CourseName)
	assert.Equal(t, 30, efficiency[2].TotalMinutes)
}
