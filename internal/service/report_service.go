package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/workpulse/attendance-api/internal/models"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
	"github.com/workpulse/attendance-api/pkg/export"
)

// Report output formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type reportEmployeeRepository interface {
	ListAll(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
}

type reportAttendanceRepository interface {
	ListByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]models.AttendanceRecord, error)
}

// ReportService renders downloadable attendance summaries.
type ReportService struct {
	employees  reportEmployeeRepository
	attendance reportAttendanceRepository
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(employees reportEmployeeRepository, attendance reportAttendanceRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		employees:  employees,
		attendance: attendance,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// AttendanceSummary renders a per-employee attendance table, optionally
// restricted to one class, as CSV or PDF bytes plus a content type.
func (s *ReportService) AttendanceSummary(ctx context.Context, class, format string) ([]byte, string, error) {
	employees, err := s.employees.ListAll(ctx, models.EmployeeFilter{Class: class})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}

	ids := make([]string, len(employees))
	for i, emp := range employees {
		ids[i] = emp.ID
	}
	records, err := s.attendance.ListByEmployeeIDs(ctx, ids)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance records")
	}

	type tally struct{ total, present int }
	tallies := make(map[string]*tally, len(employees))
	for _, rec := range records {
		t, ok := tallies[rec.EmployeeID]
		if !ok {
			t = &tally{}
			tallies[rec.EmployeeID] = t
		}
		t.total++
		if rec.Present {
			t.present++
		}
	}

	table := export.Table{
		Title:   "Attendance Summary",
		Columns: []string{"Name", "Email", "Class", "Present Days", "Total Days", "Attendance %"},
	}
	for _, emp := range employees {
		t := tallies[emp.ID]
		if t == nil {
			t = &tally{}
		}
		table.Rows = append(table.Rows, []string{
			emp.Name,
			emp.Email,
			emp.Class,
			strconv.Itoa(t.present),
			strconv.Itoa(t.total),
			fmt.Sprintf("%.2f", emp.Attendance),
		})
	}

	switch format {
	case FormatPDF:
		body, err := s.pdf.Render(table)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return body, "application/pdf", nil
	case FormatCSV, "":
		body, err := s.csv.Render(table)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return body, "text/csv", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
}
