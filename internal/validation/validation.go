// Package validation holds the pure field-level checks applied to employee
// and attendance mutation inputs. Functions here never touch the store and
// never fail for expected invalid input; they return the offending fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/workpulse/attendance-api/internal/models"
)

// FieldError describes one invalid input field. Code is a stable
// machine-readable identifier consumed by API error formatting.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Stable validation error codes.
const (
	CodeInvalidName     = "INVALID_NAME"
	CodeInvalidEmail    = "INVALID_EMAIL"
	CodeInvalidAge      = "INVALID_AGE"
	CodeInvalidPhone    = "INVALID_PHONE"
	CodeInvalidClass    = "INVALID_CLASS"
	CodeInvalidSubjects = "INVALID_SUBJECTS"
	CodeInvalidRole     = "INVALID_ROLE"
	CodeInvalidPassword = "INVALID_PASSWORD"
	CodeInvalidDate     = "INVALID_DATE"
	CodeInvalidNotes    = "INVALID_NOTES"
	CodeRequired        = "REQUIRED"
)

var (
	nameRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z \-]{1,49}$`)
	classRe   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-]{1,29}$`)
	subjectRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 &\-]{1,49}$`)
	phoneRe   = regexp.MustCompile(`^\+?[0-9 \-]+$`)
	digitRe   = regexp.MustCompile(`[0-9]`)

	validate = validator.New()
)

// Accepted layouts for attendance dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ValidateCreateEmployee checks every field of a create payload.
func ValidateCreateEmployee(input models.CreateEmployeeInput) []FieldError {
	var errs []FieldError

	errs = appendIf(errs, checkName(input.Name))
	errs = appendIf(errs, checkEmail(input.Email))
	errs = appendIf(errs, checkAge(input.Age))
	if input.Phone != nil {
		errs = appendIf(errs, checkPhone(*input.Phone))
	}
	errs = appendIf(errs, checkClass(input.Class))
	errs = appendIf(errs, checkSubjects(input.Subjects))
	errs = appendIf(errs, checkRole(input.Role))
	errs = appendIf(errs, checkPassword(input.Password))

	return errs
}

// ValidateUpdateEmployee checks only the fields present in a partial payload.
func ValidateUpdateEmployee(input models.UpdateEmployeeInput) []FieldError {
	var errs []FieldError

	if input.Name != nil {
		errs = appendIf(errs, checkName(*input.Name))
	}
	if input.Email != nil {
		errs = appendIf(errs, checkEmail(*input.Email))
	}
	if input.Age != nil {
		errs = appendIf(errs, checkAge(*input.Age))
	}
	if input.Phone != nil {
		errs = appendIf(errs, checkPhone(*input.Phone))
	}
	if input.Class != nil {
		errs = appendIf(errs, checkClass(*input.Class))
	}
	if input.Subjects != nil {
		errs = appendIf(errs, checkSubjects(input.Subjects))
	}
	if input.Role != nil {
		errs = appendIf(errs, checkRole(*input.Role))
	}

	return errs
}

// ValidateMarkAttendance checks an attendance payload. The parsed date is
// returned so callers do not parse twice; it is zero when the date is
// invalid. Whether the date lies in the future is judged by the attendance
// service against the clock at write time, not here.
func ValidateMarkAttendance(input models.MarkAttendanceInput) ([]FieldError, time.Time) {
	var errs []FieldError

	if strings.TrimSpace(input.EmployeeID) == "" {
		errs = append(errs, FieldError{Field: "employeeId", Message: "employee id is required", Code: CodeRequired})
	}

	date, err := ParseDate(input.Date)
	if err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "date must be a valid calendar date", Code: CodeInvalidDate})
	}

	if input.Notes != nil && len(*input.Notes) > 500 {
		errs = append(errs, FieldError{Field: "notes", Message: "notes must be at most 500 characters", Code: CodeInvalidNotes})
	}

	return errs, date
}

// ParseDate parses an attendance date in RFC3339 or YYYY-MM-DD form,
// truncated to the calendar day in UTC.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// NormalizeEmail lowercases and trims an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkName(name string) *FieldError {
	if !nameRe.MatchString(name) {
		return &FieldError{Field: "name", Message: "name must be 2-50 letters, spaces or hyphens", Code: CodeInvalidName}
	}
	return nil
}

func checkEmail(email string) *FieldError {
	if err := validate.Var(NormalizeEmail(email), "required,email"); err != nil {
		return &FieldError{Field: "email", Message: "email must be a valid address", Code: CodeInvalidEmail}
	}
	return nil
}

func checkAge(age int) *FieldError {
	if age < 18 || age > 70 {
		return &FieldError{Field: "age", Message: "age must be between 18 and 70", Code: CodeInvalidAge}
	}
	return nil
}

func checkPhone(phone string) *FieldError {
	if !phoneRe.MatchString(phone) || len(digitRe.FindAllString(phone, -1)) < 10 {
		return &FieldError{Field: "phone", Message: "phone must contain at least 10 digits", Code: CodeInvalidPhone}
	}
	return nil
}

func checkClass(class string) *FieldError {
	if !classRe.MatchString(class) {
		return &FieldError{Field: "class", Message: "class must be 2-30 alphanumeric characters, spaces or hyphens", Code: CodeInvalidClass}
	}
	return nil
}

func checkSubjects(subjects []string) *FieldError {
	if len(subjects) < 1 || len(subjects) > 10 {
		return &FieldError{Field: "subjects", Message: "subjects must contain 1 to 10 entries", Code: CodeInvalidSubjects}
	}
	for _, s := range subjects {
		if !subjectRe.MatchString(s) {
			return &FieldError{Field: "subjects", Message: fmt.Sprintf("subject %q is invalid", s), Code: CodeInvalidSubjects}
		}
	}
	return nil
}

func checkRole(role models.Role) *FieldError {
	if !role.Valid() {
		return &FieldError{Field: "role", Message: "role must be ADMIN or EMPLOYEE", Code: CodeInvalidRole}
	}
	return nil
}

func checkPassword(password string) *FieldError {
	if len(password) < 6 {
		return &FieldError{Field: "password", Message: "password must be at least 6 characters", Code: CodeInvalidPassword}
	}
	return nil
}

func appendIf(errs []FieldError, err *FieldError) []FieldError {
	if err != nil {
		errs = append(errs, *err)
	}
	return errs
}
