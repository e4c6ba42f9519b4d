package models

import "time"

// Role represents the available roles for the RBAC checks.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid returns true when the role is a supported value.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// Employee represents an employee document in the employees collection.
// Attendance and LastAttendanceUpdate are owned by the attendance service;
// every other field is caller-owned through validated mutations.
type Employee struct {
	ID                   string     `bson:"_id,omitempty" json:"id"`
	Name                 string     `bson:"name" json:"name"`
	Email                string     `bson:"email" json:"email"`
	PasswordHash         string     `bson:"passwordHash" json:"-"`
	Age                  int        `bson:"age" json:"age"`
	Phone                *string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Class                string     `bson:"class" json:"class"`
	Subjects             []string   `bson:"subjects" json:"subjects"`
	Attendance           float64    `bson:"attendance" json:"attendance"`
	Role                 Role       `bson:"role" json:"role"`
	DateOfJoining        time.Time  `bson:"dateOfJoining" json:"dateOfJoining"`
	LastAttendanceUpdate *time.Time `bson:"lastAttendanceUpdate,omitempty" json:"lastAttendanceUpdate,omitempty"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// EmployeeFilter captures filtering criteria for listing employees.
// Nil/empty fields impose no constraint; supplied predicates are ANDed.
type EmployeeFilter struct {
	Name          string
	Class         string
	Role          *Role
	MinAge        *int
	MaxAge        *int
	MinAttendance *float64
	MaxAttendance *float64
	Subjects      []string
}

// EmployeeSort is the fixed enumeration of supported sort orders.
type EmployeeSort string

const (
	SortNameAsc        EmployeeSort = "NAME_ASC"
	SortNameDesc       EmployeeSort = "NAME_DESC"
	SortAgeAsc         EmployeeSort = "AGE_ASC"
	SortAgeDesc        EmployeeSort = "AGE_DESC"
	SortAttendanceAsc  EmployeeSort = "ATTENDANCE_ASC"
	SortAttendanceDesc EmployeeSort = "ATTENDANCE_DESC"
	SortClassAsc       EmployeeSort = "CLASS_ASC"
	SortClassDesc      EmployeeSort = "CLASS_DESC"
	SortCreatedAtAsc   EmployeeSort = "CREATED_AT_ASC"
	SortCreatedAtDesc  EmployeeSort = "CREATED_AT_DESC"
)

// CreateEmployeeInput is the payload for the createEmployee mutation.
type CreateEmployeeInput struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Password      string     `json:"password"`
	Age           int        `json:"age"`
	Phone         *string    `json:"phone,omitempty"`
	Class         string     `json:"class"`
	Subjects      []string   `json:"subjects"`
	Role          Role       `json:"role"`
	DateOfJoining *time.Time `json:"dateOfJoining,omitempty"`
}

// UpdateEmployeeInput is the partial payload for the updateEmployee mutation.
// Only non-nil fields are validated and applied.
type UpdateEmployeeInput struct {
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Age      *int     `json:"age,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Class    *string  `json:"class,omitempty"`
	Subjects []string `json:"subjects,omitempty"`
	Role     *Role    `json:"role,omitempty"`
}
