package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

type fakeReportService struct {
	lastClass   string
	lastFormat  string
	body        []byte
	contentType string
	err         error
}

func (f *fakeReportService) AttendanceSummary(_ context.Context, class, format string) ([]byte, string, error) {
	f.lastClass = class
	f.lastFormat = format
	if f.err != nil {
		return nil, "", f.err
	}
	return f.body, f.contentType, nil
}

func newReportRouter(reports *fakeReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/reports/attendance", NewReportHandler(reports).AttendanceSummary)
	return r
}

func TestAttendanceSummaryDownload(t *testing.T) {
	reports := &fakeReportService{body: []byte("name,present\n"), contentType: "text/csv"}
	r := newReportRouter(reports)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/attendance?class=Platform", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance-summary.csv")
	assert.Equal(t, "Platform", reports.lastClass)
	assert.Equal(t, "csv", reports.lastFormat)
}

func TestAttendanceSummaryFormatQuery(t *testing.T) {
	reports := &fakeReportService{body: []byte("%PDF-1.4"), contentType: "application/pdf"}
	r := newReportRouter(reports)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/attendance?format=pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pdf", reports.lastFormat)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance-summary.pdf")
}

func TestAttendanceSummaryUnknownFormat(t *testing.T) {
	reports := &fakeReportService{err: appErrors.Clone(appErrors.ErrValidation, "unsupported report format")}
	r := newReportRouter(reports)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/attendance?format=xml", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
