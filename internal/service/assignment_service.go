package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studytracker/internal/models"
)

type assignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	UpdateGrade(ctx context.Context, id int64, grade float64) (bool, error)
}

type courseLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CreateAssignmentRequest captures fields for creating assignments.
type CreateAssignmentRequest struct {
	CourseID int64    `json:"course_id" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	DueDate  string   `json:"due_date" validate:"required,datetime=2006-01-02"`
	Grade    *float64 `json:"grade" validate:"omitempty,gte=0,lte=100"`
}

// UpdateGradeRequest sets the grade of an assignment.
type UpdateGradeRequest struct {
	Grade float64 `json:"grade" validate:"gte=0,lte=100"`
}

// AssignmentService handles assignment workflows.
type AssignmentService struct {
	repo      assignmentRepository
	courses   courseLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(repo assignmentRepository, courses courseLookup, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, courses: courses, validator: validate, logger: logger}
}

// Create validates and stores an assignment for an existing course.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.DueDate = strings.TrimSpace(req.DueDate)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	exists, err := s.courses.Exists(ctx, req.CourseID)
	if err != nil {
		return nil, storageError(err, "failed to check course")
	}
	if !exists {
		return nil, invalid("Course with ID %d does not exist", req.CourseID)
	}

	assignment := &models.Assignment{CourseID: req.CourseID, Title: req.Title, DueDate: req.DueDate, Grade: req.Grade}
	if err := s.repo.Create(ctx, assignment); err != nil {
		s.logger.Error("create assignment failed", zap.Int64("course_id", req.CourseID), zap.Error(err))
		return nil, storageError(err, "failed to create assignment")
	}
	s.logger.Info("assignment created", zap.Int64("assignment_id", assignment.ID), zap.Int64("course_id", assignment.CourseID))
	return assignment, nil
}

// UpdateGrade sets the grade of an assignment. It reports false when the assignment does not exist.
func (s *AssignmentService) UpdateGrade(ctx context.Context, id int64, req UpdateGradeRequest) (bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return false, validationError(err)
	}
	updated, err := s.repo.UpdateGrade(ctx, id, req.Grade)
	if err != nil {
		s.logger.Error("update grade failed", zap.Int64("assignment_id", id), zap.Error(err))
		return false, storageError(err, "failed to update grade")
	}
	if updated {
		s.logger.Info("grade updated", zap.Int64("assignment_id", id), zap.Float64("grade", req.Grade))
	}
	return updated, nil
}

// List returns every assignment with its course name, earliest due date first.
func (s *AssignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	assignments, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list assignments")
	}
	return assignments, nil
}

// ListByCourse returns the assignments of a single course.
func (s *AssignmentService) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	assignments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storageError(err, "failed to list assignments")
	}
	return assignments, nil
}

// Get returns the assignment or nil when it does not exist.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(err, "failed to load assignment")
	}
	return assignment, nil
}
