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

type mockAssignmentRepo struct {
	items  map[int64]*models.Assignment
	order  []int64
	nextID int64
}

func newMockAssignmentRepo(assignments ...models.Assignment) *mockAssignmentRepo {
	m := &mockAssignmentRepo{items: make(map[int64]*models.Assignment)}
	for _, a := range assignments {
		cp := a
		m.items[a.ID] = &cp
		m.order = append(m.order, a.ID)
		if a.ID > m.nextID {
			m.nextID = a.ID
		}
	}
	return m
}

func (m *mockAssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	out := make([]models.Assignment, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.items[id])
	}
	return out, nil
}

func (m *mockAssignmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, id := range m.order {
		if a := m.items[id]; a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	if a, ok := m.items[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *mockAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	m.nextID++
	assignment.ID = m.nextID
	cp := *assignment
	m.items[assignment.ID] = &cp
	m.order = append(m.order, assignment.ID)
	return nil
}

func (m *mockAssignmentRepo) UpdateGrade(ctx context.Context, id int64, grade float64) (bool, error) {
	a, ok := m.items[id]
	if !ok {
		return false, nil
	}
	a.Grade = &grade
	return true, nil
}

func floatPtr(v float64) *float64 { return &v }

func newAssignmentFixture() (*AssignmentService, *mockAssignmentRepo) {
	courses := newMockCourseRepo(models.Course{ID: 1, Name: "Algebra", Credits: 3})
	repo := newMockAssignmentRepo()
	return NewAssignmentService(repo, courses, nil, nil), repo
}

func TestAssignmentServiceCreate(t *testing.T) {
	svc, repo := newAssignmentFixture()

	assignment, err := svc.Create(context.Background(), CreateAssignmentRequest{CourseID: 1, Title: "  Homework 1  ", DueDate: "2025-02-15"})
	require.NoError(t, err)
	assert.Equal(t, "Homework 1", assignment.Title)
	assert.Nil(t, assignment.Grade)
	assert.Len(t, repo.items, 1)
}

func TestAssignmentServiceCreateRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateAssignmentRequest
		message string
	}{
		{"blank title", CreateAssignmentRequest{CourseID: 1, Title: "   ", DueDate: "2025-02-15"}, "Title cannot be empty"},
		{"slash date", CreateAssignmentRequest{CourseID: 1, Title: "Essay", DueDate: "15/02/2025"}, "Due date must be in YYYY-MM-DD format"},
		{"impossible date", CreateAssignmentRequest{CourseID: 1, Title: "Essay", DueDate: "2025-02-30"}, "Due date must be in YYYY-MM-DD format"},
		{"with time", CreateAssignmentRequest{CourseID: 1, Title: "Essay", DueDate: "2025-02-15T10:00:00"}, "Due date must be in YYYY-MM-DD format"},
		{"grade above range", CreateAssignmentRequest{CourseID: 1, Title: "Essay", DueDate: "2025-02-15", Grade: floatPtr(100.5)}, "Grade must be between 0 and 100"},
		{"grade below range", CreateAssignmentRequest{CourseID: 1, Title: "Essay", DueDate: "2025-02-15", Grade: floatPtr(-1)}, "Grade must be between 0 and 100"},
		{"unknown course", CreateAssignmentRequest{CourseID: 9, Title: "Essay", DueDate: "2025-02-15"}, "Course with ID 9 does not exist"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newAssignmentFixture()
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, appErrors.IsValidation(err))
			assert.Equal(t, tc.message, appErrors.FromError(err).Message)
			assert.Empty(t, repo.items)
		})
	}
}

func TestAssignmentServiceGradeBoundaries(t *testing.T) {
	svc, _ := newAssignmentFixture()
	for _, grade := range []float64{0, 100} {
		assignment, err := svc.Create(context.Background(), CreateAssignmentRequest{CourseID: 1, Title: "Quiz", DueDate: "2025-03-01", Grade: floatPtr(grade)})
		require.NoError(t, err)
		require.NotNil(t, assignment.Grade)
		assert.Equal(t, grade, *assignment.Grade)

		updated, err := svc.UpdateGrade(context.Background(), assignment.ID, UpdateGradeRequest{Grade: grade})
		require.NoError(t, err)
		assert.True(t, updated)
	}
}

func TestAssignmentServiceUpdateGrade(t *testing.T) {
	repo := newMockAssignmentRepo(models.Assignment{ID: 4, CourseID: 1, Title: "Essay", DueDate: "2025-02-01"})
	svc := NewAssignmentService(repo, newMockCourseRepo(), nil, nil)

	updated, err := svc.UpdateGrade(context.Background(), 4, UpdateGradeRequest{Grade: 95.5})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 95.5, *repo.items[4].Grade)

	_, err = svc.UpdateGrade(context.Background(), 4, UpdateGradeRequest{Grade: 101})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
	assert.Equal(t, 95.5, *repo.items[4].Grade)

	updated, err = svc.UpdateGrade(context.Background(), 99, UpdateGradeRequest{Grade: 80})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Len(t, repo.items, 1)
}

func TestAssignmentServiceReads(t *testing.T) {
	repo := newMockAssignmentRepo(
		models.Assignment{ID: 1, CourseID: 1, Title: "A", DueDate: "2025-02-01"},
		models.Assignment{ID: 2, CourseID: 2, Title: "B", DueDate: "2025-02-02"},
	)
	svc := NewAssignmentService(repo, newMockCourseRepo(), nil, nil)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCourse, err := svc.ListByCourse(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, byCourse, 1)
	assert.Equal(t, "B", byCourse[0].Title)

	missing, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
