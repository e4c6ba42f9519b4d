package loader

import (
	"context"
	"fmt"

	"github.com/workpulse/attendance-api/internal/models"
)

type employeeSource interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Employee, error)
}

type attendanceSource interface {
	ListByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]models.AttendanceRecord, error)
}

// EmployeeLoader resolves employee ids to records. Missing ids resolve to
// nil rather than failing the batch.
type EmployeeLoader = Loader[string, *models.Employee]

// AttendanceLoader resolves an employee id to that employee's attendance
// records, newest date first. Employees without records resolve to an empty
// slice.
type AttendanceLoader = Loader[string, []models.AttendanceRecord]

// Loaders bundles the per-request loader instances carried in the request
// context.
type Loaders struct {
	Employees  *EmployeeLoader
	Attendance *AttendanceLoader
}

// NewLoaders builds fresh per-request loaders over the given sources.
func NewLoaders(employees employeeSource, attendance attendanceSource, opts Options) *Loaders {
	return &Loaders{
		Employees:  NewEmployeeLoader(employees, opts),
		Attendance: NewAttendanceLoader(attendance, opts),
	}
}

// NewEmployeeLoader builds a loader that coalesces employee lookups into one
// $in query per batch.
func NewEmployeeLoader(source employeeSource, opts Options) *EmployeeLoader {
	return New(func(ctx context.Context, ids []string) ([]*models.Employee, error) {
		found, err := source.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*models.Employee, len(found))
		for i := range found {
			if found[i].ID == "" {
				// A stored document without an id means the collection is
				// corrupt; surface it instead of silently dropping the row.
				return nil, fmt.Errorf("employee loader: document missing id")
			}
			byID[found[i].ID] = &found[i]
		}
		results := make([]*models.Employee, len(ids))
		for i, id := range ids {
			results[i] = byID[id]
		}
		return results, nil
	}, opts)
}

// NewAttendanceLoader builds a loader that coalesces per-employee attendance
// lookups into one $in query per batch.
func NewAttendanceLoader(source attendanceSource, opts Options) *AttendanceLoader {
	return New(func(ctx context.Context, employeeIDs []string) ([][]models.AttendanceRecord, error) {
		records, err := source.ListByEmployeeIDs(ctx, employeeIDs)
		if err != nil {
			return nil, err
		}
		grouped := make(map[string][]models.AttendanceRecord, len(employeeIDs))
		for _, rec := range records {
			grouped[rec.EmployeeID] = append(grouped[rec.EmployeeID], rec)
		}
		results := make([][]models.AttendanceRecord, len(employeeIDs))
		for i, id := range employeeIDs {
			if recs, ok := grouped[id]; ok {
				results[i] = recs
			} else {
				results[i] = []models.AttendanceRecord{}
			}
		}
		return results, nil
	}, opts)
}
