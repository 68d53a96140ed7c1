package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studytracker/internal/models"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
	"github.com/noah-isme/studytracker/pkg/export"
)

const (
	notGraded     = "Not graded"
	noAssignments = "No assignments"
)

var (
	courseHeaders     = []string{"ID", "Course Name", "Teacher", "Credits"}
	assignmentHeaders = []string{"ID", "Course", "Assignment", "Due Date", "Grade"}
	fullReportHeaders = []string{"Course", "Teacher", "Credits", "Assignment", "Due Date", "Grade"}
)

type courseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type fullReportSource interface {
	FullReport(ctx context.Context) ([]models.FullReportRow, error)
	FinalGrade(ctx context.Context) (float64, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(sheets ...export.Sheet) ([]byte, error)
}

// Capabilities lists the optional renderers available to a process.
type Capabilities struct {
	Spreadsheets bool
	Charts       bool
}

// ExportRequest selects what to export, in which format and where.
type ExportRequest struct {
	Type   models.ExportType   `validate:"oneof=courses assignments full"`
	Format models.ExportFormat `validate:"oneof=csv xlsx pdf"`
	Output string              `validate:"required"`
}

// ExportResult describes a written artifact.
type ExportResult struct {
	Path   string
	Format models.ExportFormat
	Rows   int
}

// ExportService builds tabular datasets and persists rendered files.
type ExportService struct {
	courses     courseLister
	assignments assignmentLister
	reports     fullReportSource
	storage     fileStorage
	caps        Capabilities
	csv         csvRenderer
	pdf         pdfRenderer
	xlsx        xlsxRenderer
	validator   *validator.Validate
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the pkg/export defaults.
func NewExportService(courses courseLister, assignments assignmentLister, reports fullReportSource, storage fileStorage, caps Capabilities, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		courses:     courses,
		assignments: assignments,
		reports:     reports,
		storage:     storage,
		caps:        caps,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		xlsx:        export.NewXLSXExporter(),
		validator:   validator.New(),
		metrics:     metrics,
		logger:      logger,
	}
}

// ParseExportFormat maps operator input onto a format; "excel" is accepted for xlsx.
func ParseExportFormat(value string) (models.ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return models.ExportFormatCSV, nil
	case "xlsx", "excel":
		return models.ExportFormatXLSX, nil
	case "pdf":
		return models.ExportFormatPDF, nil
	default:
		return "", invalid("Unsupported export format %q (use csv, xlsx or pdf)", value)
	}
}

// Export renders one of the standard reports.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := s.checkFormat(req.Format); err != nil {
		return nil, err
	}

	var sheets []export.Sheet
	switch req.Type {
	case models.ExportTypeCourses:
		courses, err := s.courses.List(ctx)
		if err != nil {
			return nil, storageError(err, "failed to load courses")
		}
		sheets = []export.Sheet{{Name: "Courses", Data: coursesDataset(courses)}}
	case models.ExportTypeAssignments:
		assignments, err := s.assignments.List(ctx)
		if err != nil {
			return nil, storageError(err, "failed to load assignments")
		}
		sheets = []export.Sheet{{Name: "Assignments", Data: assignmentsDataset(assignments)}}
	default:
		if req.Format == models.ExportFormatXLSX {
			courses, err := s.courses.List(ctx)
			if err != nil {
				return nil, storageError(err, "failed to load courses")
			}
			assignments, err := s.assignments.List(ctx)
			if err != nil {
				return nil, storageError(err, "failed to load assignments")
			}
			sheets = []export.Sheet{
				{Name: "Courses", Data: coursesDataset(courses)},
				{Name: "Assignments", Data: assignmentsDataset(assignments)},
			}
			break
		}
		rows, err := s.reports.FullReport(ctx)
		if err != nil {
			return nil, err
		}
		sheets = []export.Sheet{{Name: "Full Report", Data: fullReportDataset(rows)}}
	}
	return s.write(req.Format, req.Output, sheets)
}

// ExportEnriched renders the full report with a trailing weighted final grade row.
func (s *ExportService) ExportEnriched(ctx context.Context, format models.ExportFormat, output string) (*ExportResult, error) {
	req := ExportRequest{Type: models.ExportTypeFull, Format: format, Output: output}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := s.checkFormat(format); err != nil {
		return nil, err
	}
	rows, err := s.reports.FullReport(ctx)
	if err != nil {
		return nil, err
	}
	final, err := s.reports.FinalGrade(ctx)
	if err != nil {
		return nil, err
	}
	data := fullReportDataset(rows)
	data.Rows = append(data.Rows, map[string]string{
		"Course": models.FinalGradeLabel,
		"Grade":  FormatGrade(final),
	})
	data.Highlighted = []int{len(data.Rows) - 1}
	return s.write(format, output, []export.Sheet{{Name: "Full Report", Data: data}})
}

func (s *ExportService) checkFormat(format models.ExportFormat) error {
	if format == models.ExportFormatXLSX && !s.caps.Spreadsheets {
		return appErrors.Clone(appErrors.ErrMissingCapability, "Spreadsheet export is not available: enable exports.spreadsheets_enabled")
	}
	return nil
}

func (s *ExportService) write(format models.ExportFormat, output string, sheets []export.Sheet) (*ExportResult, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case models.ExportFormatXLSX:
		data, err = s.xlsx.Render(sheets...)
	case models.ExportFormatPDF:
		data, err = s.pdf.Render(sheets[0].Data, sheets[0].Name)
	default:
		data, err = s.csv.Render(sheets[0].Data)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	path, err := saveArtifact(s.storage, s.metrics, string(format), output, data)
	if err != nil {
		return nil, err
	}
	rows := 0
	for _, sheet := range sheets {
		rows += len(sheet.Data.Rows)
	}
	s.logger.Info("export written", zap.String("path", path), zap.String("format", string(format)), zap.Int("rows", rows))
	return &ExportResult{Path: path, Format: format, Rows: rows}, nil
}

// saveArtifact writes data through storage and returns the resolved path.
func saveArtifact(storage fileStorage, metrics *MetricsService, kind, output string, data []byte) (string, error) {
	name, err := storage.Save(output, data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to write "+output)
	}
	metrics.RecordArtifact(kind)
	return storage.Path(name), nil
}

func coursesDataset(courses []models.Course) export.Dataset {
	data := export.Dataset{Headers: courseHeaders, NumericColumns: []string{"ID", "Credits"}}
	for _, c := range courses {
		data.Rows = append(data.Rows, map[string]string{
			"ID":          strconv.FormatInt(c.ID, 10),
			"Course Name": c.Name,
			"Teacher":     c.Teacher,
			"Credits":     strconv.Itoa(c.Credits),
		})
	}
	return data
}

func assignmentsDataset(assignments []models.Assignment) export.Dataset {
	data := export.Dataset{Headers: assignmentHeaders, GradeColumn: "Grade", NumericColumns: []string{"ID"}}
	for _, a := range assignments {
		data.Rows = append(data.Rows, map[string]string{
			"ID":         strconv.FormatInt(a.ID, 10),
			"Course":     a.CourseName,
			"Assignment": a.Title,
			"Due Date":   a.DueDate,
			"Grade":      gradeOrPlaceholder(a.Grade),
		})
	}
	return data
}

func fullReportDataset(rows []models.FullReportRow) export.Dataset {
	data := export.Dataset{Headers: fullReportHeaders, GradeColumn: "Grade", NumericColumns: []string{"Credits"}}
	for _, r := range rows {
		assignment := noAssignments
		if r.AssignmentTitle != nil && *r.AssignmentTitle != "" {
			assignment = *r.AssignmentTitle
		}
		due := ""
		if r.DueDate != nil {
			due = *r.DueDate
		}
		data.Rows = append(data.Rows, map[string]string{
			"Course":     r.CourseName,
			"Teacher":    r.Teacher,
			"Credits":    strconv.Itoa(r.Credits),
			"Assignment": assignment,
			"Due Date":   due,
			"Grade":      gradeOrPlaceholder(r.Grade),
		})
	}
	return data
}

func gradeOrPlaceholder(grade *float64) string {
	if grade == nil {
		return notGraded
	}
	return FormatGrade(*grade)
}

// FormatGrade prints whole grades with one decimal, e.g. 90.0 and 95.5.
func FormatGrade(grade float64) string {
	s := strconv.FormatFloat(grade, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
