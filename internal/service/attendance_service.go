package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/workpulse/attendance-api/internal/models"
	"github.com/workpulse/attendance-api/internal/validation"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

type attendanceEmployeeRepository interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	SetAttendance(ctx context.Context, id string, attendance float64, updatedAt time.Time) error
}

type attendanceRecordRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID string, rng models.AttendanceRange) ([]models.AttendanceRecord, error)
	Counts(ctx context.Context, employeeID string) (total, present int64, err error)
}

// AttendanceService owns the attendance ledger and keeps each employee's
// cached attendance percentage consistent with it. Every write path ends in
// Recalculate before reporting success.
type AttendanceService struct {
	employees attendanceEmployeeRepository
	records   attendanceRecordRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(employees attendanceEmployeeRepository, records attendanceRecordRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		employees: employees,
		records:   records,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Mark records attendance for one employee and recomputes that employee's
// percentage. Expected failures come back as Success=false results; an
// internal failure after the record was persisted is returned as an error
// and leaves the ledger ahead of the cached percentage until the next
// Recalculate.
func (s *AttendanceService) Mark(ctx context.Context, creatorID string, input models.MarkAttendanceInput) (*MutationResult, error) {
	errs, date := validation.ValidateMarkAttendance(input)
	if len(errs) > 0 {
		return validationFailed(errs), nil
	}

	employee, err := s.employees.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	if employee == nil {
		return failure("employeeId", "employee not found", appErrors.ErrNotFound.Code), nil
	}

	exists, err := s.records.ExistsForDate(ctx, input.EmployeeID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check attendance date")
	}
	if exists {
		return failure("date", "attendance already recorded for this date", appErrors.ErrConflict.Code), nil
	}

	// Judged against the clock at write time.
	if date.After(s.now()) {
		return failure("date", "date must not be in the future", appErrors.ErrInvalidState.Code), nil
	}

	record := &models.AttendanceRecord{
		EmployeeID: input.EmployeeID,
		Date:       date,
		Present:    input.Present,
		Notes:      input.Notes,
		CreatedBy:  creatorID,
	}
	if err := s.records.Create(ctx, record); err != nil {
		if appErrors.Is(err, appErrors.ErrConflict) {
			return conflictResult("date", err), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist attendance record")
	}

	if _, err := s.Recalculate(ctx, input.EmployeeID); err != nil {
		// The record is already persisted; rolling it back would lose the
		// write. The stored percentage is stale until the next recalculation.
		s.logger.Error("attendance recompute failed after write",
			zap.String("employeeId", input.EmployeeID),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "attendance recorded but percentage recompute failed")
	}

	return &MutationResult{Success: true, Message: "attendance recorded", Record: record}, nil
}

// Recalculate recomputes and stores the employee's attendance percentage
// from the ledger. It is idempotent and doubles as the repair path after a
// failed post-write recompute.
func (s *AttendanceService) Recalculate(ctx context.Context, employeeID string) (float64, error) {
	total, present, err := s.records.Counts(ctx, employeeID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance records")
	}

	attendance := 100.0
	if total > 0 {
		attendance = 100 * float64(present) / float64(total)
	}

	if err := s.employees.SetAttendance(ctx, employeeID, attendance, s.now()); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attendance percentage")
	}
	return attendance, nil
}

// ListForEmployee returns one employee's records newest first, optionally
// restricted to an inclusive date range. Ownership is checked by the caller.
func (s *AttendanceService) ListForEmployee(ctx context.Context, employeeID string, rng models.AttendanceRange) ([]models.AttendanceRecord, error) {
	records, err := s.records.ListByEmployee(ctx, employeeID, rng)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance records")
	}
	return records, nil
}
