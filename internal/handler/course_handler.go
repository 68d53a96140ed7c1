package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/pkg/response"
)

type courseReader interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
}

type assignmentReader interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
}

type sessionReader interface {
	List(ctx context.Context) ([]models.StudySession, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.StudySession, error)
}

// CourseHandler serves read-only course, assignment and session endpoints.
type CourseHandler struct {
	courses     courseReader
	assignments assignmentReader
	sessions    sessionReader
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(courses courseReader, assignments assignmentReader, sessions sessionReader) *CourseHandler {
	return &CourseHandler{courses: courses, assignments: assignments, sessions: sessions}
}

// ListCourses returns every course ordered by name.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"count": len(courses)})
}

// GetCourse returns one course.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := parseID(c.Param("id"), "course id")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if course == nil {
		response.NotFound(c, "course not found")
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// ListAssignments returns assignments, optionally filtered by course_id.
func (h *CourseHandler) ListAssignments(c *gin.Context) {
	courseID, filtered, err := courseFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var assignments []models.Assignment
	if filtered {
		assignments, err = h.assignments.ListByCourse(c.Request.Context(), courseID)
	} else {
		assignments, err = h.assignments.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, map[string]interface{}{"count": len(assignments)})
}

// ListSessions returns study sessions, optionally filtered by course_id.
func (h *CourseHandler) ListSessions(c *gin.Context) {
	courseID, filtered, err := courseFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var sessions []models.StudySession
	if filtered {
		sessions, err = h.sessions.ListByCourse(c.Request.Context(), courseID)
	} else {
		sessions, err = h.sessions.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, map[string]interface{}{"count": len(sessions)})
}
