package graph

import (
	"context"
	"time"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/workpulse/attendance-api/internal/access"
	"github.com/workpulse/attendance-api/internal/models"
	"github.com/workpulse/attendance-api/internal/service"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

type employeeService interface {
	List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) (*models.EmployeePage, error)
	Get(ctx context.Context, id string) (*models.Employee, error)
	Create(ctx context.Context, input models.CreateEmployeeInput) (*service.MutationResult, error)
	Update(ctx context.Context, id string, input models.UpdateEmployeeInput) (*service.MutationResult, error)
	Stats(ctx context.Context) (*models.EmployeeStats, error)
}

type attendanceService interface {
	Mark(ctx context.Context, creatorID string, input models.MarkAttendanceInput) (*service.MutationResult, error)
	ListForEmployee(ctx context.Context, employeeID string, rng models.AttendanceRange) ([]models.AttendanceRecord, error)
}

type authService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
}

type operationMetrics interface {
	IncGraphQLOperation(operation string, ok bool)
}

// Resolver wires the GraphQL surface to the service layer. All role and
// ownership checks live here so the services stay policy-free.
type Resolver struct {
	employees  employeeService
	attendance attendanceService
	auth       authService
	metrics    operationMetrics
	logger     *zap.Logger
}

// NewResolver creates the resolver set backing the schema.
func NewResolver(employees employeeService, attendance attendanceService, auth authService, metrics operationMetrics, logger *zap.Logger) *Resolver {
	return &Resolver{
		employees:  employees,
		attendance: attendance,
		auth:       auth,
		metrics:    metrics,
		logger:     logger,
	}
}

// apiError carries the stable error code into the GraphQL error extensions.
type apiError struct {
	err *appErrors.Error
}

func (e apiError) Error() string {
	return e.err.Error()
}

func (e apiError) Unwrap() error {
	return e.err
}

func (e apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.err.Code}
}

func asAPIError(err error) error {
	if err == nil {
		return nil
	}
	if appErr := appErrors.FromError(err); appErr != nil {
		return apiError{appErr}
	}
	return apiError{appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)}
}

func (r *Resolver) track(operation string, err error) {
	if r.metrics != nil {
		r.metrics.IncGraphQLOperation(operation, err == nil)
	}
}

// --- queries ---

func (r *Resolver) resolveEmployees(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	if err := access.RequireRole(identity, models.RoleAdmin, models.RoleEmployee); err != nil {
		r.track("employees", err)
		return nil, asAPIError(err)
	}

	filter := decodeEmployeeFilter(mapArg(p.Args, "filter"))
	sort := models.SortCreatedAtDesc
	if raw, ok := p.Args["sort"].(string); ok && raw != "" {
		sort = models.EmployeeSort(raw)
	}
	page := intArg(p.Args, "page", 1)
	pageSize := intArg(p.Args, "pageSize", 10)

	result, err := r.employees.List(p.Context, filter, sort, page, pageSize)
	r.track("employees", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	return result, nil
}

func (r *Resolver) resolveEmployee(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	id, _ := p.Args["id"].(string)
	if !access.CanAccessEmployeeRecord(identity, id) {
		err := appErrors.ErrForbidden
		r.track("employee", err)
		return nil, asAPIError(err)
	}

	employee, err := r.employees.Get(p.Context, id)
	r.track("employee", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	if employee == nil {
		return nil, nil
	}
	return employee, nil
}

func (r *Resolver) resolveEmployeeStats(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	if err := access.RequireRole(identity, models.RoleAdmin); err != nil {
		r.track("employeeStats", err)
		return nil, asAPIError(err)
	}

	stats, err := r.employees.Stats(p.Context)
	r.track("employeeStats", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	return stats, nil
}

func (r *Resolver) resolveEmployeeAttendance(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	employeeID, _ := p.Args["employeeId"].(string)
	if !access.CanAccessEmployeeRecord(identity, employeeID) {
		err := appErrors.ErrForbidden
		r.track("employeeAttendance", err)
		return nil, asAPIError(err)
	}

	rng := models.AttendanceRange{
		From: timeArg(p.Args, "from"),
		To:   timeArg(p.Args, "to"),
	}
	records, err := r.attendance.ListForEmployee(p.Context, employeeID, rng)
	r.track("employeeAttendance", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	return records, nil
}

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	if identity == nil {
		err := appErrors.ErrUnauthenticated
		r.track("me", err)
		return nil, asAPIError(err)
	}

	employee, err := r.employees.Get(p.Context, identity.ID)
	r.track("me", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	return employee, nil
}

// --- mutations ---

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	result, err := r.auth.Login(p.Context, email, password)
	r.track("login", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	return result, nil
}

func (r *Resolver) resolveCreateEmployee(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	if err := access.RequireRole(identity, models.RoleAdmin); err != nil {
		r.track("createEmployee", err)
		return nil, asAPIError(err)
	}

	input := decodeCreateEmployeeInput(mapArg(p.Args, "input"))
	result, err := r.employees.Create(p.Context, input)
	r.track("createEmployee", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	return result, nil
}

func (r *Resolver) resolveUpdateEmployee(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	if err := access.RequireRole(identity, models.RoleAdmin); err != nil {
		r.track("updateEmployee", err)
		return nil, asAPIError(err)
	}

	id, _ := p.Args["id"].(string)
	input := decodeUpdateEmployeeInput(mapArg(p.Args, "input"))
	result, err := r.employees.Update(p.Context, id, input)
	r.track("updateEmployee", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	if result.Success {
		// drop the stale cached entry so later fields in the same request
		// see the updated document
		if loaders := LoadersFrom(p.Context); loaders != nil {
			loaders.Employees.Clear(id)
		}
	}
	return result, nil
}

func (r *Resolver) resolveMarkAttendance(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	if err := access.RequireRole(identity, models.RoleAdmin); err != nil {
		r.track("markAttendance", err)
		return nil, asAPIError(err)
	}

	input := decodeMarkAttendanceInput(mapArg(p.Args, "input"))
	result, err := r.attendance.Mark(p.Context, identity.ID, input)
	r.track("markAttendance", err)
	if err != nil {
		return nil, asAPIError(err)
	}
	if result.Success {
		if loaders := LoadersFrom(p.Context); loaders != nil {
			loaders.Attendance.Clear(input.EmployeeID)
			loaders.Employees.Clear(input.EmployeeID)
		}
	}
	return result, nil
}

// --- relation fields ---

func (r *Resolver) resolveRecordEmployee(p graphql.ResolveParams) (interface{}, error) {
	record, ok := sourceRecord(p.Source)
	if !ok {
		return nil, nil
	}
	return r.loadEmployee(p.Context, record.EmployeeID)
}

func (r *Resolver) resolveRecordCreatedBy(p graphql.ResolveParams) (interface{}, error) {
	record, ok := sourceRecord(p.Source)
	if !ok {
		return nil, nil
	}
	return r.loadEmployee(p.Context, record.CreatedBy)
}

func (r *Resolver) resolveEmployeeRecords(p graphql.ResolveParams) (interface{}, error) {
	employee, ok := sourceEmployee(p.Source)
	if !ok {
		return nil, nil
	}
	identity := IdentityFrom(p.Context)
	if !access.CanAccessEmployeeRecord(identity, employee.ID) {
		return nil, asAPIError(appErrors.ErrForbidden)
	}
	loaders := LoadersFrom(p.Context)
	if loaders == nil {
		return r.attendance.ListForEmployee(p.Context, employee.ID, models.AttendanceRange{})
	}
	records, err := loaders.Attendance.Load(p.Context, employee.ID)
	if err != nil {
		return nil, asAPIError(err)
	}
	return records, nil
}

func (r *Resolver) loadEmployee(ctx context.Context, id string) (interface{}, error) {
	loaders := LoadersFrom(ctx)
	if loaders == nil {
		employee, err := r.employees.Get(ctx, id)
		if err != nil {
			return nil, asAPIError(err)
		}
		if employee == nil {
			return nil, nil
		}
		return employee, nil
	}
	employee, err := loaders.Employees.Load(ctx, id)
	if err != nil {
		return nil, asAPIError(err)
	}
	if employee == nil {
		return nil, nil
	}
	return employee, nil
}

func sourceEmployee(src interface{}) (*models.Employee, bool) {
	switch v := src.(type) {
	case *models.Employee:
		return v, v != nil
	case models.Employee:
		return &v, true
	default:
		return nil, false
	}
}

func sourceRecord(src interface{}) (*models.AttendanceRecord, bool) {
	switch v := src.(type) {
	case *models.AttendanceRecord:
		return v, v != nil
	case models.AttendanceRecord:
		return &v, true
	default:
		return nil, false
	}
}

// --- argument decoding ---

func mapArg(args map[string]interface{}, key string) map[string]interface{} {
	m, _ := args[key].(map[string]interface{})
	return m
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return fallback
}

func timeArg(args map[string]interface{}, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}

func optString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func optFloat(m map[string]interface{}, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

func stringList(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func decodeEmployeeFilter(m map[string]interface{}) models.EmployeeFilter {
	if m == nil {
		return models.EmployeeFilter{}
	}
	filter := models.EmployeeFilter{
		Subjects:      stringList(m, "subjects"),
		MinAge:        optInt(m, "minAge"),
		MaxAge:        optInt(m, "maxAge"),
		MinAttendance: optFloat(m, "minAttendance"),
		MaxAttendance: optFloat(m, "maxAttendance"),
	}
	if name, ok := m["name"].(string); ok {
		filter.Name = name
	}
	if class, ok := m["class"].(string); ok {
		filter.Class = class
	}
	if role, ok := m["role"].(string); ok {
		r := models.Role(role)
		filter.Role = &r
	}
	return filter
}

func decodeCreateEmployeeInput(m map[string]interface{}) models.CreateEmployeeInput {
	if m == nil {
		return models.CreateEmployeeInput{}
	}
	input := models.CreateEmployeeInput{
		Subjects: stringList(m, "subjects"),
		Phone:    optString(m, "phone"),
	}
	input.Name, _ = m["name"].(string)
	input.Email, _ = m["email"].(string)
	input.Password, _ = m["password"].(string)
	input.Class, _ = m["class"].(string)
	if age, ok := m["age"].(int); ok {
		input.Age = age
	}
	if role, ok := m["role"].(string); ok {
		input.Role = models.Role(role)
	}
	if joined, ok := m["dateOfJoining"].(time.Time); ok {
		input.DateOfJoining = &joined
	}
	return input
}

func decodeUpdateEmployeeInput(m map[string]interface{}) models.UpdateEmployeeInput {
	if m == nil {
		return models.UpdateEmployeeInput{}
	}
	input := models.UpdateEmployeeInput{
		Name:     optString(m, "name"),
		Email:    optString(m, "email"),
		Phone:    optString(m, "phone"),
		Class:    optString(m, "class"),
		Age:      optInt(m, "age"),
		Subjects: stringList(m, "subjects"),
	}
	if role, ok := m["role"].(string); ok {
		r := models.Role(role)
		input.Role = &r
	}
	return input
}

func decodeMarkAttendanceInput(m map[string]interface{}) models.MarkAttendanceInput {
	if m == nil {
		return models.MarkAttendanceInput{}
	}
	input := models.MarkAttendanceInput{
		Notes: optString(m, "notes"),
	}
	input.EmployeeID, _ = m["employeeId"].(string)
	input.Date, _ = m["date"].(string)
	input.Present, _ = m["present"].(bool)
	return input
}
