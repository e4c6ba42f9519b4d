package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/attendance-api/internal/models"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

type fakeEmployeeRepo struct {
	employees  map[string]models.Employee
	emails     map[string]string
	listResult []models.Employee
	listTotal  int64
	lastPage   int
	lastSize   int
	trend      []models.TrendPoint
	trendSince time.Time
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) ([]models.Employee, int64, error) {
	f.lastPage, f.lastSize = page, pageSize
	return f.listResult, f.listTotal, nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if emp, ok := f.employees[id]; ok {
		return &emp, nil
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	if id, ok := f.emails[email]; ok {
		return excludeID == "" || id != excludeID, nil
	}
	return false, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	if f.employees == nil {
		f.employees = make(map[string]models.Employee)
	}
	if f.emails == nil {
		f.emails = make(map[string]string)
	}
	employee.ID = "generated"
	employee.CreatedAt = time.Now().UTC()
	f.employees[employee.ID] = *employee
	f.emails[employee.Email] = employee.ID
	return nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id string, input models.UpdateEmployeeInput) error {
	emp := f.employees[id]
	if input.Name != nil {
		emp.Name = *input.Name
	}
	if input.Email != nil {
		emp.Email = *input.Email
	}
	if input.Age != nil {
		emp.Age = *input.Age
	}
	if input.Class != nil {
		emp.Class = *input.Class
	}
	f.employees[id] = emp
	return nil
}

func (f *fakeEmployeeRepo) Totals(ctx context.Context) (int64, float64, float64, error) {
	return 4, 87.5, 31.25, nil
}

func (f *fakeEmployeeRepo) ByClass(ctx context.Context) ([]models.ClassStats, error) {
	return []models.ClassStats{{Class: "Engineering", Count: 3, AvgAttendance: 90}}, nil
}

func (f *fakeEmployeeRepo) Trend(ctx context.Context, since time.Time) ([]models.TrendPoint, error) {
	f.trendSince = since
	return f.trend, nil
}

func validCreate() models.CreateEmployeeInput {
	return models.CreateEmployeeInput{
		Name:     "Jane Doe",
		Email:    "Jane.Doe@Example.com",
		Password: "secret1",
		Age:      30,
		Class:    "Engineering",
		Subjects: []string{"Go"},
		Role:     models.RoleEmployee,
	}
}

func TestEmployeeListPaginationDefaults(t *testing.T) {
	repo := &fakeEmployeeRepo{listTotal: 25}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	page, err := svc.List(context.Background(), models.EmployeeFilter{}, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastPage)
	assert.Equal(t, defaultPageSize, repo.lastSize)
	assert.Equal(t, int64(25), page.Pagination.TotalCount)
}

func TestEmployeeListPaginationMetadata(t *testing.T) {
	repo := &fakeEmployeeRepo{listTotal: 25}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	page, err := svc.List(context.Background(), models.EmployeeFilter{}, "", 2, 10)
	require.NoError(t, err)

	p := page.Pagination
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)
}

func TestEmployeeCreate(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	result, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Employee)

	emp := result.Employee
	assert.Equal(t, "jane.doe@example.com", emp.Email)
	assert.Equal(t, 100.0, emp.Attendance)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte("secret1")))
}

func TestEmployeeCreateUnderage(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	input := validCreate()
	input.Age = 17
	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "INVALID_AGE", result.Errors[0].Code)
	assert.Empty(t, repo.employees)
}

func TestEmployeeCreateDuplicateEmail(t *testing.T) {
	repo := &fakeEmployeeRepo{emails: map[string]string{"jane.doe@example.com": "other"}}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	result, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, appErrors.ErrConflict.Code, result.Errors[0].Code)
}

func TestEmployeeUpdateNotFound(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	name := "New Name"
	result, err := svc.Update(context.Background(), "ghost", models.UpdateEmployeeInput{Name: &name})
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, appErrors.ErrNotFound.Code, result.Errors[0].Code)
}

func TestEmployeeUpdatePartial(t *testing.T) {
	repo := &fakeEmployeeRepo{
		employees: map[string]models.Employee{"e1": {ID: "e1", Name: "Old", Age: 30, Email: "old@example.com"}},
		emails:    map[string]string{"old@example.com": "e1"},
	}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	name := "New Name"
	result, err := svc.Update(context.Background(), "e1", models.UpdateEmployeeInput{Name: &name})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "New Name", result.Employee.Name)
	assert.Equal(t, 30, result.Employee.Age)
}

func TestEmployeeUpdateKeepingOwnEmail(t *testing.T) {
	repo := &fakeEmployeeRepo{
		employees: map[string]models.Employee{"e1": {ID: "e1", Name: "Jane", Email: "jane@example.com"}},
		emails:    map[string]string{"jane@example.com": "e1"},
	}
	svc := NewEmployeeService(repo, repo, zap.NewNop())

	email := "Jane@Example.com"
	result, err := svc.Update(context.Background(), "e1", models.UpdateEmployeeInput{Email: &email})
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestEmployeeStats(t *testing.T) {
	repo := &fakeEmployeeRepo{trend: []models.TrendPoint{
		{Date: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), PresentCount: 3, AbsentCount: 1, AvgAttendance: 75},
	}}
	svc := NewEmployeeService(repo, repo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC) }

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalEmployees)
	assert.Equal(t, 87.5, stats.AvgAttendance)
	require.Len(t, stats.ByClass, 1)
	require.Len(t, stats.Trend, 1)

	// 30 calendar days including today
	assert.Equal(t, time.Date(2024, 4, 11, 0, 0, 0, 0, time.UTC), repo.trendSince)
}
