package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studytracker/internal/models"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
)

type mockReportRepo struct {
	full       []models.FullReportRow
	graded     []models.GradedAssignment
	summary    []models.StudySummary
	averages   []models.CourseAverage
	efficiency []models.StudyEfficiency
	err        error
}

func (m *mockReportRepo) FullReport(ctx context.Context) ([]models.FullReportRow, error) {
	return m.full, m.err
}

func (m *mockReportRepo) GradedAssignments(ctx context.Context) ([]models.GradedAssignment, error) {
	return m.graded, m.err
}

func (m *mockReportRepo) StudySummary(ctx context.Context) ([]models.StudySummary, error) {
	return m.summary, m.err
}

func (m *mockReportRepo) CourseAverages(ctx context.Context) ([]models.CourseAverage, error) {
	return m.averages, m.err
}

func (m *mockReportRepo) StudyEfficiency(ctx context.Context) ([]models.StudyEfficiency, error) {
	return m.efficiency, m.err
}

func TestWeightedGrade(t *testing.T) {
	rows := []models.GradedAssignment{{Grade: 90, Credits: 3}, {Grade: 60, Credits: 1}}
	assert.Equal(t, 82.5, WeightedGrade(rows))

	reordered := []models.GradedAssignment{{Grade: 60, Credits: 1}, {Grade: 90, Credits: 3}}
	assert.Equal(t, WeightedGrade(rows), WeightedGrade(reordered))
}

func TestWeightedGradeEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, WeightedGrade(nil))
	assert.Equal(t, 0.0, WeightedGrade([]models.GradedAssignment{{Grade: 88, Credits: 0}}))
	assert.Equal(t, 75.0, WeightedGrade([]models.GradedAssignment{{Grade: 75, Credits: 0}, {Grade: 75, Credits: 2}}))
	assert.Equal(t, 66.67, WeightedGrade([]models.GradedAssignment{{Grade: 100, Credits: 1}, {Grade: 50, Credits: 1}, {Grade: 50, Credits: 1}}))
}

func TestHours(t *testing.T) {
	assert.Equal(t, 2.25, Hours(135))
	assert.Equal(t, 0.33, Hours(20))
	assert.Equal(t, 0.0, Hours(0))
}

func TestWeeklyBuckets(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, DueDate: "2025-02-01", Grade: floatPtr(80)},
		{ID: 2, DueDate: "2025-02-05"},
		{ID: 3, DueDate: "2025-02-10", Grade: floatPtr(70)},
	}
	buckets, err := WeeklyBuckets(assignments)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, models.WeeklyBucket{Index: 1, StartDate: "2025-02-01", EndDate: "2025-02-07", Total: 2, Graded: 1}, buckets[0])
	assert.Equal(t, models.WeeklyBucket{Index: 2, StartDate: "2025-02-08", EndDate: "2025-02-14", Total: 1, Graded: 1}, buckets[1])
	assert.Equal(t, 1, buckets[0].Ungraded())
}

func TestWeeklyBucketsSkipsEmptyWindowsAndOrder(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, DueDate: "2025-03-30"},
		{ID: 2, DueDate: "2025-03-01"},
		{ID: 3, DueDate: "2025-03-07"},
		{ID: 4, DueDate: "2025-03-08"},
	}
	buckets, err := WeeklyBuckets(assignments)
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, []int{1, 2, 5}, []int{buckets[0].Index, buckets[1].Index, buckets[2].Index})
	assert.Equal(t, 2, buckets[0].Total)
	assert.Equal(t, "2025-03-29", buckets[2].StartDate)

	far := []models.Assignment{
		{ID: 1, DueDate: "1500-01-01"},
		{ID: 2, DueDate: "2025-01-01"},
	}
	buckets, err = WeeklyBuckets(far)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "1500-01-01", buckets[0].StartDate)
	last := buckets[1]
	assert.LessOrEqual(t, last.StartDate, "2025-01-01")
	assert.GreaterOrEqual(t, last.EndDate, "2025-01-01")
	assert.Equal(t, 1, last.Total)
}

func TestDaysBetweenDistantDates(t *testing.T) {
	a := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 191753, daysBetween(a, b))
	assert.Equal(t, 0, daysBetween(b, b))
}

func TestWeeklyBucketsEmptyAndInvalid(t *testing.T) {
	buckets, err := WeeklyBuckets(nil)
	require.NoError(t, err)
	assert.Empty(t, buckets)

	_, err = WeeklyBuckets([]models.Assignment{{ID: 1, DueDate: "soon"}})
	assert.Error(t, err)
}

func TestReportServiceFinalGrade(t *testing.T) {
	repo := &mockReportRepo{graded: []models.GradedAssignment{{Grade: 90, Credits: 3}, {Grade: 60, Credits: 1}}}
	svc := NewReportService(repo, newMockAssignmentRepo(), NewMetricsService(), nil)

	grade, err := svc.FinalGrade(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 82.5, grade)

	repo.err = errors.New("no such table: assignments")
	_, err = svc.FinalGrade(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStorage.Code, appErrors.FromError(err).Code)
}

func TestReportServiceFillsHours(t *testing.T) {
	repo := &mockReportRepo{
		summary:    []models.StudySummary{{CourseID: 1, CourseName: "Algebra", SessionCount: 2, TotalMinutes: 135}},
		efficiency: []models.StudyEfficiency{{CourseID: 2, CourseName: "Art"}, {CourseID: 1, CourseName: "Algebra", TotalMinutes: 90, AverageGrade: 88, GradedCount: 2}},
	}
	svc := NewReportService(repo, newMockAssignmentRepo(), nil, nil)

	summary, err := svc.StudySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.25, summary[0].TotalHours)

	efficiency, err := svc.StudyEfficiency(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, efficiency[0].TotalHours)
	assert.Equal(t, 1.5, efficiency[1].TotalHours)
}

func TestReportServiceTimeline(t *testing.T) {
	assignments := newMockAssignmentRepo(
		models.Assignment{ID: 1, CourseID: 1, CourseName: "Algebra", Title: "HW1", DueDate: "2025-02-01", Grade: floatPtr(90)},
		models.Assignment{ID: 2, CourseID: 1, CourseName: "Algebra", Title: "HW2", DueDate: "2025-02-10"},
	)
	svc := NewReportService(&mockReportRepo{}, assignments, nil, nil)

	timeline, err := svc.Timeline(context.Background())
	require.NoError(t, err)
	assert.Len(t, timeline.Assignments, 2)
	require.Len(t, timeline.Buckets, 2)
	assert.Equal(t, 1, timeline.Buckets[1].Ungraded())
}
