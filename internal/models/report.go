package models

// FinalGradeLabel names the synthetic summary row appended to enriched exports.
const FinalGradeLabel = "FINAL WEIGHTED GRADE"

// ExportType selects which rows an export contains.
type ExportType string

const (
	ExportTypeCourses     ExportType = "courses"
	ExportTypeAssignments ExportType = "assignments"
	ExportTypeFull        ExportType = "full"
)

// ExportFormat selects the artifact encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

// FullReportRow is one line of the courses LEFT JOIN assignments report.
// Assignment fields are nil for courses without assignments.
type FullReportRow struct {
	CourseName      string   `db:"course_name" json:"course_name"`
	Teacher         string   `db:"teacher" json:"teacher"`
	Credits         int      `db:"credits" json:"credits"`
	AssignmentTitle *string  `db:"assignment_title" json:"assignment_title,omitempty"`
	DueDate         *string  `db:"due_date" json:"due_date,omitempty"`
	Grade           *float64 `db:"grade" json:"grade,omitempty"`
}

// GradedAssignment pairs a recorded grade with the credits of its course.
type GradedAssignment struct {
	Grade   float64 `db:"grade" json:"grade"`
	Credits int     `db:"credits" json:"credits"`
}

// StudySummary aggregates study sessions for one course.
type StudySummary struct {
	CourseID     int64   `db:"course_id" json:"course_id"`
	CourseName   string  `db:"course_name" json:"course_name"`
	SessionCount int     `db:"session_count" json:"session_count"`
	TotalMinutes int     `db:"total_minutes" json:"total_minutes"`
	TotalHours   float64 `db:"-" json:"total_hours"`
}

// CourseAverage is the mean grade over a course's graded assignments.
type CourseAverage struct {
	CourseID     int64   `db:"course_id" json:"course_id"`
	CourseName   string  `db:"course_name" json:"course_name"`
	AverageGrade float64 `db:"avg_grade" json:"average_grade"`
	GradedCount  int     `db:"graded_count" json:"graded_count"`
}

// StudyEfficiency places study time next to results for one course.
type StudyEfficiency struct {
	CourseID     int64   `db:"course_id" json:"course_id"`
	CourseName   string  `db:"course_name" json:"course_name"`
	TotalMinutes int     `db:"total_minutes" json:"total_minutes"`
	TotalHours   float64 `db:"-" json:"total_hours"`
	AverageGrade float64 `db:"avg_grade" json:"average_grade"`
	GradedCount  int     `db:"graded_count" json:"graded_count"`
}

// WeeklyBucket counts assignments due inside one 7-day window, both ends inclusive.
type WeeklyBucket struct {
	Index     int    `json:"index"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Total     int    `json:"total"`
	Graded    int    `json:"graded"`
}

// Ungraded returns the number of assignments in the bucket without a grade.
func (b WeeklyBucket) Ungraded() int {
	return b.Total - b.Graded
}

// Timeline is the input for the workload chart.
type Timeline struct {
	Assignments []Assignment   `json:"assignments"`
	Buckets     []WeeklyBucket `json:"buckets"`
}
