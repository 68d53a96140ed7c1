package models

// StudySession records time spent on a course, optionally against one assignment.
type StudySession struct {
	ID              int64   `db:"id" json:"id"`
	CourseID        int64   `db:"course_id" json:"course_id"`
	CourseName      string  `db:"course_name" json:"course_name,omitempty"`
	AssignmentID    *int64  `db:"assignment_id" json:"assignment_id,omitempty"`
	AssignmentTitle *string `db:"assignment_title" json:"assignment_title,omitempty"`
	Date            string  `db:"date" json:"date"`
	DurationMinutes int     `db:"duration_minutes" json:"duration_minutes"`
	Notes           *string `db:"notes" json:"notes,omitempty"`
}
