package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/studytracker/internal/middleware"
	"github.com/noah-isme/studytracker/internal/service"
	"github.com/noah-isme/studytracker/pkg/logger"
	"github.com/noah-isme/studytracker/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studytracker/pkg/middleware/requestid"
)

// RouterDeps groups everything the read-only API needs.
type RouterDeps struct {
	Courses     *CourseHandler
	Reports     *ReportHandler
	Metrics        *service.MetricsService
	Logger         *zap.Logger
	AllowedOrigins []string
	ReleaseMode    bool
}

// NewRouter builds the gin engine for the serve command.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	metricsHandler := NewMetricsHandler(deps.Metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(cors.New(deps.AllowedOrigins))
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group("/api/v1")
	api.GET("/courses", deps.Courses.ListCourses)
	api.GET("/courses/:id", deps.Courses.GetCourse)
	api.GET("/assignments", deps.Courses.ListAssignments)
	api.GET("/sessions", deps.Courses.ListSessions)

	reports := api.Group("/reports")
	reports.GET("/final-grade", deps.Reports.FinalGrade)
	reports.GET("/study-summary", deps.Reports.StudySummary)
	reports.GET("/course-averages", deps.Reports.CourseAverages)
	reports.GET("/weekly-workload", deps.Reports.WeeklyWorkload)
	reports.GET("/study-efficiency", deps.Reports.StudyEfficiency)
	return r
}
