package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/pkg/response"
)

type reportReader interface {
	FinalGrade(ctx context.Context) (float64, error)
	StudySummary(ctx context.Context) ([]models.StudySummary, error)
	CourseAverages(ctx context.Context) ([]models.CourseAverage, error)
	Timeline(ctx context.Context) (*models.Timeline, error)
	StudyEfficiency(ctx context.Context) ([]models.StudyEfficiency, error)
}

// ReportHandler exposes the reporting views.
type ReportHandler struct {
	reports reportReader
}

// NewReportHandler constructs a report handler.
func NewReportHandler(reports reportReader) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// FinalGrade returns the credit-weighted grade.
func (h *ReportHandler) FinalGrade(c *gin.Context) {
	grade, err := h.reports.FinalGrade(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"final_weighted_grade": grade})
}

// StudySummary returns study totals per course.
func (h *ReportHandler) StudySummary(c *gin.Context) {
	rows, err := h.reports.StudySummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// CourseAverages returns mean grade per graded course.
func (h *ReportHandler) CourseAverages(c *gin.Context) {
	rows, err := h.reports.CourseAverages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// WeeklyWorkload returns the weekly assignment buckets.
func (h *ReportHandler) WeeklyWorkload(c *gin.Context) {
	timeline, err := h.reports.Timeline(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline.Buckets)
}

// StudyEfficiency returns study hours next to average grade.
func (h *ReportHandler) StudyEfficiency(c *gin.Context) {
	rows, err := h.reports.StudyEfficiency(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}
