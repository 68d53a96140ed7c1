package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studytracker/internal/models"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
)

type mockStudySessionRepo struct {
	items  map[int64]*models.StudySession
	nextID int64
}

func newMockStudySessionRepo() *mockStudySessionRepo {
	return &mockStudySessionRepo{items: make(map[int64]*models.StudySession)}
}

func (m *mockStudySessionRepo) List(ctx context.Context) ([]models.StudySession, error) {
	out := make([]models.StudySession, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStudySessionRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.StudySession, error) {
	var out []models.StudySession
	for _, s := range m.items {
		if s.CourseID == courseID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockStudySessionRepo) FindByID(ctx context.Context, id int64) (*models.StudySession, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudySessionRepo) Create(ctx context.Context, session *models.StudySession) error {
	m.nextID++
	session.ID = m.nextID
	cp := *session
	m.items[session.ID] = &cp
	return nil
}

func (m *mockStudySessionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func newSessionFixture() (*StudySessionService, *mockStudySessionRepo) {
	courses := newMockCourseRepo(models.Course{ID: 1, Name: "Algebra", Credits: 3})
	assignments := newMockAssignmentRepo(models.Assignment{ID: 5, CourseID: 1, Title: "Homework 1", DueDate: "2025-02-01"})
	repo := newMockStudySessionRepo()
	return NewStudySessionService(repo, courses, assignments, nil, nil), repo
}

func TestStudySessionServiceCreate(t *testing.T) {
	svc, repo := newSessionFixture()

	session, err := svc.Create(context.Background(), CreateStudySessionRequest{
		CourseID:        1,
		AssignmentID:    int64Ptr(5),
		Date:            "2025-01-30",
		DurationMinutes: 90,
		Notes:           strPtr("chapter 2"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), session.ID)
	assert.Equal(t, "chapter 2", *repo.items[1].Notes)

	blankNotes, err := svc.Create(context.Background(), CreateStudySessionRequest{CourseID: 1, Date: "2025-01-31", DurationMinutes: 30, Notes: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, blankNotes.Notes)
}

func TestStudySessionServiceCreateRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateStudySessionRequest
		message string
	}{
		{"zero duration", CreateStudySessionRequest{CourseID: 1, Date: "2025-01-30", DurationMinutes: 0}, "Duration must be a positive number of minutes"},
		{"negative duration", CreateStudySessionRequest{CourseID: 1, Date: "2025-01-30", DurationMinutes: -15}, "Duration must be a positive number of minutes"},
		{"bad date", CreateStudySessionRequest{CourseID: 1, Date: "30-01-2025", DurationMinutes: 30}, "Date must be in YYYY-MM-DD format"},
		{"unknown course", CreateStudySessionRequest{CourseID: 3, Date: "2025-01-30", DurationMinutes: 30}, "Course with ID 3 does not exist"},
		{"unknown assignment", CreateStudySessionRequest{CourseID: 1, AssignmentID: int64Ptr(77), Date: "2025-01-30", DurationMinutes: 30}, "Assignment with ID 77 does not exist"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newSessionFixture()
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, appErrors.IsValidation(err))
			assert.Equal(t, tc.message, appErrors.FromError(err).Message)
			assert.Empty(t, repo.items)
		})
	}
}

func TestStudySessionServiceDelete(t *testing.T) {
	svc, _ := newSessionFixture()
	session, err := svc.Create(context.Background(), CreateStudySessionRequest{CourseID: 1, Date: "2025-01-30", DurationMinutes: 45})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), session.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := svc.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
