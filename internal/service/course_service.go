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

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// CreateCourseRequest captures fields for creating courses.
type CreateCourseRequest struct {
	Name    string `json:"name" validate:"required"`
	Teacher string `json:"teacher"`
	Credits int    `json:"credits" validate:"gt=0"`
}

// CourseService handles course workflows.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService creates a new course service.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// Create validates and stores a course, returning it with its generated id.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Teacher = strings.TrimSpace(req.Teacher)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	course := &models.Course{Name: req.Name, Teacher: req.Teacher, Credits: req.Credits}
	if err := s.repo.Create(ctx, course); err != nil {
		s.logger.Error("create course failed", zap.Error(err))
		return nil, storageError(err, "failed to create course")
	}
	s.logger.Info("course created", zap.Int64("course_id", course.ID), zap.String("name", course.Name))
	return course, nil
}

// List returns all courses ordered by name.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list courses")
	}
	return courses, nil
}

// Get returns the course or nil when it does not exist.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(err, "failed to load course")
	}
	return course, nil
}

// Delete removes a course together with its assignments and sessions.
// It reports false when no course had that id.
func (s *CourseService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete course failed", zap.Int64("course_id", id), zap.Error(err))
		return false, storageError(err, "failed to delete course")
	}
	if deleted {
		s.logger.Info("course deleted", zap.Int64("course_id", id))
	}
	return deleted, nil
}
