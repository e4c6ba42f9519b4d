package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/attendance-api/internal/models"
	"github.com/workpulse/attendance-api/internal/validation"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	trendWindowDays = 30
)

type employeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) ([]models.Employee, int64, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, id string, input models.UpdateEmployeeInput) error
	Totals(ctx context.Context) (int64, float64, float64, error)
	ByClass(ctx context.Context) ([]models.ClassStats, error)
}

type attendanceTrendRepository interface {
	Trend(ctx context.Context, since time.Time) ([]models.TrendPoint, error)
}

// EmployeeService handles employee CRUD and the aggregate statistics view.
type EmployeeService struct {
	repo   employeeRepository
	trends attendanceTrendRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(repo employeeRepository, trends attendanceTrendRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{
		repo:   repo,
		trends: trends,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of employees with pagination metadata.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) (*models.EmployeePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	employees, total, err := s.repo.List(ctx, filter, sort, page, pageSize)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}
	return &models.EmployeePage{
		Employees:  employees,
		Pagination: models.NewPagination(total, page, pageSize),
	}, nil
}

// Get returns the employee or nil when absent. Ownership is checked by the
// caller.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return employee, nil
}

// Create registers a new employee with a default 100% attendance.
func (s *EmployeeService) Create(ctx context.Context, input models.CreateEmployeeInput) (*MutationResult, error) {
	if errs := validation.ValidateCreateEmployee(input); len(errs) > 0 {
		return validationFailed(errs), nil
	}

	email := validation.NormalizeEmail(input.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return failure("email", "email already in use", appErrors.ErrConflict.Code), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	joined := s.now()
	if input.DateOfJoining != nil {
		joined = *input.DateOfJoining
	}

	employee := &models.Employee{
		Name:          input.Name,
		Email:         email,
		PasswordHash:  string(hash),
		Age:           input.Age,
		Phone:         input.Phone,
		Class:         input.Class,
		Subjects:      input.Subjects,
		Attendance:    100,
		Role:          input.Role,
		DateOfJoining: joined,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if appErrors.Is(err, appErrors.ErrConflict) {
			return conflictResult("email", err), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}

	return &MutationResult{Success: true, Message: "employee created", Employee: employee}, nil
}

// Update applies a partial payload to an existing employee. A missing id is
// a Success=false payload, not a transport failure.
func (s *EmployeeService) Update(ctx context.Context, id string, input models.UpdateEmployeeInput) (*MutationResult, error) {
	if errs := validation.ValidateUpdateEmployee(input); len(errs) > 0 {
		return validationFailed(errs), nil
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	if existing == nil {
		return failure("id", "employee not found", appErrors.ErrNotFound.Code), nil
	}

	if input.Email != nil {
		email := validation.NormalizeEmail(*input.Email)
		input.Email = &email
		exists, err := s.repo.ExistsByEmail(ctx, email, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		if exists {
			return failure("email", "email already in use", appErrors.ErrConflict.Code), nil
		}
	}

	if err := s.repo.Update(ctx, id, input); err != nil {
		if appErrors.Is(err, appErrors.ErrConflict) {
			return conflictResult("email", err), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update employee")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload employee")
	}
	return &MutationResult{Success: true, Message: "employee updated", Employee: updated}, nil
}

// Stats computes the aggregate statistics view on demand. Nothing here is
// cached.
func (s *EmployeeService) Stats(ctx context.Context) (*models.EmployeeStats, error) {
	count, avgAttendance, avgAge, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate employee totals")
	}

	byClass, err := s.repo.ByClass(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate class stats")
	}

	now := s.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(trendWindowDays - 1))
	trend, err := s.trends.Trend(ctx, since)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate attendance trend")
	}

	return &models.EmployeeStats{
		TotalEmployees: count,
		AvgAttendance:  avgAttendance,
		AvgAge:         avgAge,
		ByClass:        byClass,
		Trend:          trend,
	}, nil
}
