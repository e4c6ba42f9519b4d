package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/attendance-api/internal/models"
)

func validCreateInput() models.CreateEmployeeInput {
	return models.CreateEmployeeInput{
		Name:     "Jane Doe",
		Email:    "jane.doe@example.com",
		Password: "secret1",
		Age:      30,
		Class:    "Engineering",
		Subjects: []string{"Go", "Systems Design"},
		Role:     models.RoleEmployee,
	}
}

func TestValidateCreateEmployeeValid(t *testing.T) {
	errs := ValidateCreateEmployee(validCreateInput())
	assert.Empty(t, errs)
}

func TestValidateCreateEmployeeInvalidAge(t *testing.T) {
	input := validCreateInput()
	input.Age = 17

	errs := ValidateCreateEmployee(input)
	require.Len(t, errs, 1)
	assert.Equal(t, "age", errs[0].Field)
	assert.Equal(t, CodeInvalidAge, errs[0].Code)
}

func TestValidateCreateEmployeeCollectsAllErrors(t *testing.T) {
	input := validCreateInput()
	input.Name = "J"
	input.Email = "not-an-email"
	input.Age = 71

	errs := ValidateCreateEmployee(input)
	require.Len(t, errs, 3)
	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	assert.ElementsMatch(t, []string{CodeInvalidName, CodeInvalidEmail, CodeInvalidAge}, codes)
}

func TestValidateCreateEmployeePhone(t *testing.T) {
	input := validCreateInput()

	good := "+62 812-3456-7890"
	input.Phone = &good
	assert.Empty(t, ValidateCreateEmployee(input))

	bad := "12345"
	input.Phone = &bad
	errs := ValidateCreateEmployee(input)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidPhone, errs[0].Code)
}

func TestValidateCreateEmployeeSubjects(t *testing.T) {
	input := validCreateInput()

	input.Subjects = nil
	errs := ValidateCreateEmployee(input)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidSubjects, errs[0].Code)

	input.Subjects = []string{"Math & Logic"}
	assert.Empty(t, ValidateCreateEmployee(input))

	input.Subjects = []string{"x"}
	errs = ValidateCreateEmployee(input)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidSubjects, errs[0].Code)
}

func TestValidateUpdateEmployeeSkipsAbsentFields(t *testing.T) {
	errs := ValidateUpdateEmployee(models.UpdateEmployeeInput{})
	assert.Empty(t, errs)

	badAge := 10
	errs = ValidateUpdateEmployee(models.UpdateEmployeeInput{Age: &badAge})
	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidAge, errs[0].Code)
}

func TestValidateMarkAttendance(t *testing.T) {
	errs, date := ValidateMarkAttendance(models.MarkAttendanceInput{
		EmployeeID: "emp1",
		Date:       "2024-05-09",
		Present:    true,
	})
	assert.Empty(t, errs)
	assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), date)
}

func TestValidateMarkAttendanceMissingEmployee(t *testing.T) {
	errs, _ := ValidateMarkAttendance(models.MarkAttendanceInput{Date: "2024-05-09"})
	require.Len(t, errs, 1)
	assert.Equal(t, CodeRequired, errs[0].Code)
}

func TestValidateMarkAttendanceBadDateAndLongNotes(t *testing.T) {
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	notes := string(long)

	errs, _ := ValidateMarkAttendance(models.MarkAttendanceInput{
		EmployeeID: "emp1",
		Date:       "not-a-date",
		Notes:      &notes,
	})
	require.Len(t, errs, 2)
	assert.Equal(t, CodeInvalidDate, errs[0].Code)
	assert.Equal(t, CodeInvalidNotes, errs[1].Code)
}

func TestParseDateRejectsImpossibleDay(t *testing.T) {
	_, err := ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
