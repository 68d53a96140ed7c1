package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/studytracker/internal/handler"
	"github.com/noah-isme/studytracker/internal/repository"
	"github.com/noah-isme/studytracker/internal/service"
	"github.com/noah-isme/studytracker/pkg/config"
	"github.com/noah-isme/studytracker/pkg/database"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
	"github.com/noah-isme/studytracker/pkg/storage"
)

// app holds the per-invocation wiring: one connection and the services built on it.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *service.MetricsService
	db      *sqlx.DB

	courses     *service.CourseService
	assignments *service.AssignmentService
	sessions    *service.StudySessionService
	reports     *service.ReportService
	exports     *service.ExportService
	charts      *service.ChartService
}

func newApp(cfg *config.Config, logger *zap.Logger, metrics *service.MetricsService) (*app, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to open database")
	}
	store, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		_ = db.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to prepare exports directory")
	}

	validate := validator.New()
	caps := service.Capabilities{
		Spreadsheets: cfg.Exports.SpreadsheetsEnabled,
		Charts:       cfg.Exports.ChartsEnabled,
	}

	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	sessionRepo := repository.NewStudySessionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	a := &app{cfg: cfg, logger: logger, metrics: metrics, db: db}
	a.courses = service.NewCourseService(courseRepo, validate, logger)
	a.assignments = service.NewAssignmentService(assignmentRepo, courseRepo, validate, logger)
	a.sessions = service.NewStudySessionService(sessionRepo, courseRepo, assignmentRepo, validate, logger)
	a.reports = service.NewReportService(reportRepo, assignmentRepo, metrics, logger)
	a.exports = service.NewExportService(courseRepo, assignmentRepo, a.reports, store, caps, metrics, logger)
	a.charts = service.NewChartService(a.reports, store, caps, metrics, logger)
	return a, nil
}

func (a *app) router() *gin.Engine {
	return handler.NewRouter(handler.RouterDeps{
		Courses:        handler.NewCourseHandler(a.courses, a.assignments, a.sessions),
		Reports:        handler.NewReportHandler(a.reports),
		Metrics:        a.metrics,
		Logger:         a.logger,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		ReleaseMode:    a.cfg.Env == config.EnvProduction,
	})
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
}
