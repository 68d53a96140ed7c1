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

type studySessionRepository interface {
	List(ctx context.Context) ([]models.StudySession, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.StudySession, error)
	FindByID(ctx context.Context, id int64) (*models.StudySession, error)
	Create(ctx context.Context, session *models.StudySession) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type assignmentLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CreateStudySessionRequest captures fields for logging a study session.
type CreateStudySessionRequest struct {
	CourseID        int64   `json:"course_id" validate:"required"`
	AssignmentID    *int64  `json:"assignment_id"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0"`
	Notes           *string `json:"notes"`
}

// StudySessionService handles study session workflows.
type StudySessionService struct {
	repo        studySessionRepository
	courses     courseLookup
	assignments assignmentLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudySessionService creates a new study session service.
func NewStudySessionService(repo studySessionRepository, courses courseLookup, assignments assignmentLookup, validate *validator.Validate, logger *zap.Logger) *StudySessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudySessionService{repo: repo, courses: courses, assignments: assignments, validator: validate, logger: logger}
}

// Create validates and stores a study session.
func (s *StudySessionService) Create(ctx context.Context, req CreateStudySessionRequest) (*models.StudySession, error) {
	req.Date = strings.TrimSpace(req.Date)
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
	if req.AssignmentID != nil {
		exists, err := s.assignments.Exists(ctx, *req.AssignmentID)
		if err != nil {
			return nil, storageError(err, "failed to check assignment")
		}
		if !exists {
			return nil, invalid("Assignment with ID %d does not exist", *req.AssignmentID)
		}
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) == "" {
		req.Notes = nil
	}

	session := &models.StudySession{
		CourseID:        req.CourseID,
		AssignmentID:    req.AssignmentID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error("create study session failed", zap.Int64("course_id", req.CourseID), zap.Error(err))
		return nil, storageError(err, "failed to create study session")
	}
	s.logger.Info("study session created", zap.Int64("session_id", session.ID), zap.Int("duration_minutes", session.DurationMinutes))
	return session, nil
}

// List returns all sessions, newest first.
func (s *StudySessionService) List(ctx context.Context) ([]models.StudySession, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list study sessions")
	}
	return sessions, nil
}

// ListByCourse returns the sessions of one course, newest first.
func (s *StudySessionService) ListByCourse(ctx context.Context, courseID int64) ([]models.StudySession, error) {
	sessions, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storageError(err, "failed to list study sessions")
	}
	return sessions, nil
}

// Get returns the session or nil when it does not exist.
func (s *StudySessionService) Get(ctx context.Context, id int64) (*models.StudySession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(err, "failed to load study session")
	}
	return session, nil
}

// Delete removes a session. It reports false when no session had that id.
func (s *StudySessionService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, storageError(err, "failed to delete study session")
	}
	if deleted {
		s.logger.Info("study session deleted", zap.Int64("session_id", id))
	}
	return deleted, nil
}
