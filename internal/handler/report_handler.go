package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/workpulse/attendance-api/internal/service"
	"github.com/workpulse/attendance-api/pkg/response"
)

type reportService interface {
	AttendanceSummary(ctx context.Context, class, format string) ([]byte, string, error)
}

// ReportHandler exposes the attendance report download endpoint.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// AttendanceSummary handles GET /api/v1/reports/attendance.
func (h *ReportHandler) AttendanceSummary(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)
	class := c.Query("class")

	body, contentType, err := h.reports.AttendanceSummary(c.Request.Context(), class, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Download(c, contentType, "attendance-summary."+format, body)
}
