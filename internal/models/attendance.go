package models

import "time"

// AttendanceRecord represents one immutable daily attendance entry.
// At most one record exists per (EmployeeID, Date) pair; the pair carries a
// unique index in the store.
type AttendanceRecord struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	EmployeeID string    `bson:"employeeId" json:"employeeId"`
	Date       time.Time `bson:"date" json:"date"`
	Present    bool      `bson:"present" json:"present"`
	Notes      *string   `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy  string    `bson:"createdBy" json:"createdBy"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// MarkAttendanceInput is the payload for the markAttendance mutation.
type MarkAttendanceInput struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	Present    bool    `json:"present"`
	Notes      *string `json:"notes,omitempty"`
}

// AttendanceRange is an optional inclusive date window for attendance queries.
type AttendanceRange struct {
	From *time.Time
	To   *time.Time
}
