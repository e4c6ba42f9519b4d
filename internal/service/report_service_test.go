package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workpulse/attendance-api/internal/models"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

type fakeReportRepo struct {
	employees  []models.Employee
	records    []models.AttendanceRecord
	lastFilter models.EmployeeFilter
}

func (f *fakeReportRepo) ListAll(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	f.lastFilter = filter
	return f.employees, nil
}

func (f *fakeReportRepo) ListByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]models.AttendanceRecord, error) {
	return f.records, nil
}

func reportFixture() *fakeReportRepo {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	return &fakeReportRepo{
		employees: []models.Employee{
			{ID: "e1", Name: "Alice", Email: "alice@example.com", Class: "Engineering", Attendance: 50},
			{ID: "e2", Name: "Bob", Email: "bob@example.com", Class: "Engineering", Attendance: 100},
		},
		records: []models.AttendanceRecord{
			{EmployeeID: "e1", Date: day(1), Present: true},
			{EmployeeID: "e1", Date: day(2), Present: false},
		},
	}
}

func TestAttendanceSummaryCSV(t *testing.T) {
	repo := reportFixture()
	svc := NewReportService(repo, repo, zap.NewNop())

	body, contentType, err := svc.AttendanceSummary(context.Background(), "Engineering", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "Engineering", repo.lastFilter.Class)

	csv := string(body)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Alice")
	assert.Contains(t, lines[1], "1")   // present days
	assert.Contains(t, lines[1], "2")   // total days
	assert.Contains(t, lines[2], "Bob") // no records, zero tallies
	assert.Contains(t, lines[2], "100.00")
}

func TestAttendanceSummaryPDF(t *testing.T) {
	repo := reportFixture()
	svc := NewReportService(repo, repo, zap.NewNop())

	body, contentType, err := svc.AttendanceSummary(context.Background(), "", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestAttendanceSummaryUnknownFormat(t *testing.T) {
	repo := reportFixture()
	svc := NewReportService(repo, repo, zap.NewNop())

	_, _, err := svc.AttendanceSummary(context.Background(), "", "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
