package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studytracker/internal/models"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
	"github.com/noah-isme/studytracker/pkg/export"
)

// Default chart file names.
const (
	DefaultGradePlot      = "grade_plot.pdf"
	DefaultTimelinePlot   = "timeline.pdf"
	DefaultStudyTimePlot  = "study_time.pdf"
	DefaultEfficiencyPlot = "study_efficiency.pdf"
)

type chartSource interface {
	CourseAverages(ctx context.Context) ([]models.CourseAverage, error)
	Timeline(ctx context.Context) (*models.Timeline, error)
	StudySummary(ctx context.Context) ([]models.StudySummary, error)
	StudyEfficiency(ctx context.Context) ([]models.StudyEfficiency, error)
}

type chartRenderer interface {
	Render(fig export.Figure) ([]byte, error)
}

// ChartService turns report views into chart files.
type ChartService struct {
	reports  chartSource
	storage  fileStorage
	renderer chartRenderer
	caps     Capabilities
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewChartService wires chart rendering.
func NewChartService(reports chartSource, storage fileStorage, caps Capabilities, metrics *MetricsService, logger *zap.Logger) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartService{
		reports:  reports,
		storage:  storage,
		renderer: export.NewChartRenderer(),
		caps:     caps,
		metrics:  metrics,
		logger:   logger,
	}
}

// PlotGrades draws the average grade per course, shading bars by graded count.
func (s *ChartService) PlotGrades(ctx context.Context, output string) (string, error) {
	output, err := s.prepare(output, DefaultGradePlot)
	if err != nil {
		return "", err
	}
	rows, err := s.reports.CourseAverages(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", appErrors.Clone(appErrors.ErrNoData, "No graded assignments found to plot.")
	}

	maxCount := 0
	for _, r := range rows {
		if r.GradedCount > maxCount {
			maxCount = r.GradedCount
		}
	}
	series := export.Series{Name: "Average Grade"}
	categories := make([]string, len(rows))
	for i, r := range rows {
		categories[i] = r.CourseName
		series.Values = append(series.Values, r.AverageGrade)
		series.Shades = append(series.Shades, export.BlueShade(float64(r.GradedCount)/float64(maxCount)))
		series.Labels = append(series.Labels, fmt.Sprintf("%.1f (%d graded)", r.AverageGrade, r.GradedCount))
	}

	fig := export.Figure{
		Title: "Average Grade per Course",
		Panels: []export.Panel{export.BarPanel{
			YLabel:     "Average Grade",
			Categories: categories,
			Series:     []export.Series{series},
			Max:        100,
		}},
	}
	return s.render(fig, output)
}

// PlotTimeline draws assignment due dates per course above the weekly graded/ungraded counts.
func (s *ChartService) PlotTimeline(ctx context.Context, output string) (string, error) {
	output, err := s.prepare(output, DefaultTimelinePlot)
	if err != nil {
		return "", err
	}
	timeline, err := s.reports.Timeline(ctx)
	if err != nil {
		return "", err
	}
	if len(timeline.Assignments) == 0 {
		return "", appErrors.Clone(appErrors.ErrNoData, "No assignments found to plot.")
	}

	earliest, err := time.Parse(models.DateLayout, timeline.Buckets[0].StartDate)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid bucket start date")
	}
	groups := make(map[string]*export.ScatterGroup)
	var names []string
	maxDay := 0.0
	for _, a := range timeline.Assignments {
		due, err := time.Parse(models.DateLayout, a.DueDate)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid due date")
		}
		day := float64(daysBetween(earliest, due))
		if day > maxDay {
			maxDay = day
		}
		g, ok := groups[a.CourseName]
		if !ok {
			g = &export.ScatterGroup{Name: a.CourseName}
			groups[a.CourseName] = g
			names = append(names, a.CourseName)
		}
		g.Points = append(g.Points, export.Point{X: day, Hollow: !a.Graded()})
	}
	sort.Strings(names)
	scatter := export.ScatterPanel{
		Title:  "Assignment Due Dates",
		XLabel: "Due date",
		Note:   "filled: graded, hollow: not graded",
		XMax:   maxDay,
	}
	for i, name := range names {
		g := groups[name]
		g.Color = export.PaletteColor(i)
		scatter.Groups = append(scatter.Groups, *g)
	}

	graded := export.Series{Name: "Graded", Color: export.PaletteColor(2)}
	ungraded := export.Series{Name: "Ungraded", Color: export.PaletteColor(7)}
	categories := make([]string, len(timeline.Buckets))
	for i, b := range timeline.Buckets {
		categories[i] = fmt.Sprintf("Week %d (%s)", b.Index, b.StartDate)
		scatter.XTicks = append(scatter.XTicks, export.Tick{Pos: float64((b.Index - 1) * bucketDays), Label: b.StartDate})
		graded.Values = append(graded.Values, float64(b.Graded))
		ungraded.Values = append(ungraded.Values, float64(b.Ungraded()))
	}
	workload := export.BarPanel{
		Title:      "Weekly Workload",
		YLabel:     "Assignments",
		Categories: categories,
		Series:     []export.Series{graded, ungraded},
		Stacked:    true,
	}

	fig := export.Figure{
		Title:  "Assignment Timeline",
		Layout: export.LayoutColumn,
		Panels: []export.Panel{scatter, workload},
	}
	return s.render(fig, output)
}

// PlotStudyTime draws total study hours per course as horizontal bars.
func (s *ChartService) PlotStudyTime(ctx context.Context, output string) (string, error) {
	output, err := s.prepare(output, DefaultStudyTimePlot)
	if err != nil {
		return "", err
	}
	rows, err := s.reports.StudySummary(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", appErrors.Clone(appErrors.ErrNoData, "No study sessions found to plot.")
	}

	series := export.Series{Name: "Hours", Color: export.PaletteColor(0)}
	categories := make([]string, len(rows))
	for i, r := range rows {
		categories[i] = r.CourseName
		series.Values = append(series.Values, r.TotalHours)
		series.Labels = append(series.Labels, fmt.Sprintf("%.2f h (%d sessions)", r.TotalHours, r.SessionCount))
	}
	fig := export.Figure{
		Title: "Study Time per Course",
		Panels: []export.Panel{export.BarPanel{
			XLabel:     "Hours",
			Categories: categories,
			Series:     []export.Series{series},
			Horizontal: true,
		}},
	}
	return s.render(fig, output)
}

// PlotStudyEfficiency draws study hours next to average grade for every course.
func (s *ChartService) PlotStudyEfficiency(ctx context.Context, output string) (string, error) {
	output, err := s.prepare(output, DefaultEfficiencyPlot)
	if err != nil {
		return "", err
	}
	rows, err := s.reports.StudyEfficiency(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", appErrors.Clone(appErrors.ErrNoData, "No courses found to plot.")
	}

	categories := make([]string, len(rows))
	hours := export.Series{Name: "Study Hours", Color: export.PaletteColor(0)}
	grades := export.Series{Name: "Average Grade", Color: export.PaletteColor(1)}
	for i, r := range rows {
		categories[i] = r.CourseName
		hours.Values = append(hours.Values, r.TotalHours)
		hours.Labels = append(hours.Labels, fmt.Sprintf("%.2f", r.TotalHours))
		grades.Values = append(grades.Values, r.AverageGrade)
		if r.GradedCount > 0 {
			grades.Labels = append(grades.Labels, fmt.Sprintf("%.1f (%d)", r.AverageGrade, r.GradedCount))
		} else {
			grades.Labels = append(grades.Labels, "n/a")
		}
	}
	fig := export.Figure{
		Title: "Study Time vs. Average Grade",
		Panels: []export.Panel{
			export.BarPanel{Title: "Study Hours", YLabel: "Hours", Categories: categories, Series: []export.Series{hours}},
			export.BarPanel{Title: "Average Grade", YLabel: "Grade", Categories: categories, Series: []export.Series{grades}, Max: 100},
		},
	}
	return s.render(fig, output)
}

// prepare checks the charting capability and the output extension at call time.
func (s *ChartService) prepare(output, fallback string) (string, error) {
	if !s.caps.Charts {
		return "", appErrors.Clone(appErrors.ErrMissingCapability, "Chart rendering is not available: enable exports.charts_enabled")
	}
	if strings.TrimSpace(output) == "" {
		output = fallback
	}
	if ext := strings.ToLower(filepath.Ext(output)); ext != ".pdf" {
		return "", appErrors.Clone(appErrors.ErrMissingCapability, fmt.Sprintf("Charts can only be rendered as PDF, not %q", ext))
	}
	return output, nil
}

func (s *ChartService) render(fig export.Figure, output string) (string, error) {
	data, err := s.renderer.Render(fig)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render chart")
	}
	path, err := saveArtifact(s.storage, s.metrics, "chart", output, data)
	if err != nil {
		return "", err
	}
	s.logger.Info("chart written", zap.String("path", path), zap.String("title", fig.Title))
	return path, nil
}
