package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studytracker/internal/models"
)

type reportRepository interface {
	FullReport(ctx context.Context) ([]models.FullReportRow, error)
	GradedAssignments(ctx context.Context) ([]models.GradedAssignment, error)
	StudySummary(ctx context.Context) ([]models.StudySummary, error)
	CourseAverages(ctx context.Context) ([]models.CourseAverage, error)
	StudyEfficiency(ctx context.Context) ([]models.StudyEfficiency, error)
}

type assignmentLister interface {
	List(ctx context.Context) ([]models.Assignment, error)
}

const (
	bucketDays    = 7
	secondsPerDay = 24 * 60 * 60
)

// ReportService derives read-only views across courses, assignments and sessions.
type ReportService struct {
	repo        reportRepository
	assignments assignmentLister
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewReportService wires the reporting engine.
func NewReportService(repo reportRepository, assignments assignmentLister, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, assignments: assignments, metrics: metrics, logger: logger}
}

func (s *ReportService) observe(label string, start time.Time) {
	s.metrics.ObserveDBQuery(label, time.Since(start))
}

// FinalGrade returns the credit-weighted average over every graded assignment.
func (s *ReportService) FinalGrade(ctx context.Context) (float64, error) {
	start := time.Now()
	rows, err := s.repo.GradedAssignments(ctx)
	s.observe("graded_assignments", start)
	if err != nil {
		return 0, storageError(err, "failed to load graded assignments")
	}
	return WeightedGrade(rows), nil
}

// StudySummary returns per-course study totals with hours filled in, most minutes first.
func (s *ReportService) StudySummary(ctx context.Context) ([]models.StudySummary, error) {
	start := time.Now()
	rows, err := s.repo.StudySummary(ctx)
	s.observe("study_summary", start)
	if err != nil {
		return nil, storageError(err, "failed to load study summary")
	}
	for i := range rows {
		rows[i].TotalHours = Hours(rows[i].TotalMinutes)
	}
	return rows, nil
}

// CourseAverages returns mean grades of courses with graded work, best first.
func (s *ReportService) CourseAverages(ctx context.Context) ([]models.CourseAverage, error) {
	start := time.Now()
	rows, err := s.repo.CourseAverages(ctx)
	s.observe("course_averages", start)
	if err != nil {
		return nil, storageError(err, "failed to load course averages")
	}
	return rows, nil
}

// StudyEfficiency pairs study hours with average grade for every course.
func (s *ReportService) StudyEfficiency(ctx context.Context) ([]models.StudyEfficiency, error) {
	start := time.Now()
	rows, err := s.repo.StudyEfficiency(ctx)
	s.observe("study_efficiency", start)
	if err != nil {
		return nil, storageError(err, "failed to load study efficiency")
	}
	for i := range rows {
		rows[i].TotalHours = Hours(rows[i].TotalMinutes)
	}
	return rows, nil
}

// FullReport returns the courses-with-assignments join.
func (s *ReportService) FullReport(ctx context.Context) ([]models.FullReportRow, error) {
	start := time.Now()
	rows, err := s.repo.FullReport(ctx)
	s.observe("full_report", start)
	if err != nil {
		return nil, storageError(err, "failed to load full report")
	}
	return rows, nil
}

// Timeline returns all assignments by due date together with their weekly buckets.
func (s *ReportService) Timeline(ctx context.Context) (*models.Timeline, error) {
	start := time.Now()
	assignments, err := s.assignments.List(ctx)
	s.observe("assignments", start)
	if err != nil {
		return nil, storageError(err, "failed to load assignments")
	}
	buckets, err := WeeklyBuckets(assignments)
	if err != nil {
		s.logger.Error("bucket assignments failed", zap.Error(err))
		return nil, storageError(err, "stored assignment has an invalid due date")
	}
	return &models.Timeline{Assignments: assignments, Buckets: buckets}, nil
}

// WeightedGrade computes sum(grade*credits)/sum(credits) rounded to two decimals.
// It returns 0 when nothing is graded or every graded course carries zero credits.
func WeightedGrade(rows []models.GradedAssignment) float64 {
	var weighted, credits float64
	for _, row := range rows {
		weighted += row.Grade * float64(row.Credits)
		credits += float64(row.Credits)
	}
	if credits == 0 {
		return 0
	}
	return Round2(weighted / credits)
}

// Hours converts minutes to hours rounded to two decimals.
func Hours(minutes int) float64 {
	return Round2(float64(minutes) / 60)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// daysBetween counts calendar days from a to b. Both are parsed dates at UTC
// midnight; Unix seconds avoid the Duration range limit on distant dates.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

// WeeklyBuckets groups assignments into consecutive 7-day windows anchored at the
// earliest due date. Both ends of a window are inclusive and only windows holding
// at least one assignment are returned, in chronological order.
func WeeklyBuckets(assignments []models.Assignment) ([]models.WeeklyBucket, error) {
	if len(assignments) == 0 {
		return nil, nil
	}
	dates := make([]time.Time, len(assignments))
	earliest := time.Time{}
	for i, a := range assignments {
		d, err := time.Parse(models.DateLayout, a.DueDate)
		if err != nil {
			return nil, fmt.Errorf("assignment %d due date %q: %w", a.ID, a.DueDate, err)
		}
		dates[i] = d
		if i == 0 || d.Before(earliest) {
			earliest = d
		}
	}

	byIndex := make(map[int]*models.WeeklyBucket)
	for i, a := range assignments {
		idx := daysBetween(earliest, dates[i]) / bucketDays
		bucket, ok := byIndex[idx]
		if !ok {
			first := earliest.AddDate(0, 0, idx*bucketDays)
			bucket = &models.WeeklyBucket{
				Index:     idx + 1,
				StartDate: first.Format(models.DateLayout),
				EndDate:   first.AddDate(0, 0, bucketDays-1).Format(models.DateLayout),
			}
			byIndex[idx] = bucket
		}
		bucket.Total++
		if a.Graded() {
			bucket.Graded++
		}
	}

	buckets := make([]models.WeeklyBucket, 0, len(byIndex))
	for _, b := range byIndex {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Index < buckets[j].Index })
	return buckets, nil
}
