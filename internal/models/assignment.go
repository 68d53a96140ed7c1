package models

// DateLayout is the ISO calendar-date form used for due dates and session dates.
const DateLayout = "2006-01-02"

// Assignment belongs to a course. CourseName is only populated by queries joining courses.
type Assignment struct {
	ID         int64    `db:"id" json:"id"`
	CourseID   int64    `db:"course_id" json:"course_id"`
	CourseName string   `db:"course_name" json:"course_name,omitempty"`
	Title      string   `db:"title" json:"title"`
	DueDate    string   `db:"due_date" json:"due_date"`
	Grade      *float64 `db:"grade" json:"grade"`
}

// Graded reports whether a grade has been recorded.
func (a Assignment) Graded() bool {
	return a.Grade != nil
}
