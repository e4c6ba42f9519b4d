package models

import "time"

// ClassStats aggregates employee counts and attendance per class label.
type ClassStats struct {
	Class         string  `bson:"_id" json:"class"`
	Count         int64   `bson:"count" json:"count"`
	AvgAttendance float64 `bson:"avgAttendance" json:"avgAttendance"`
}

// TrendPoint is one day of the attendance trend window.
type TrendPoint struct {
	Date          time.Time `json:"date"`
	PresentCount  int64     `json:"presentCount"`
	AbsentCount   int64     `json:"absentCount"`
	AvgAttendance float64   `json:"avgAttendance"`
}

// EmployeeStats is the on-demand aggregate view over both collections.
// It is never persisted or cached.
type EmployeeStats struct {
	TotalEmployees int64        `json:"totalEmployees"`
	AvgAttendance  float64      `json:"avgAttendance"`
	AvgAge         float64      `json:"avgAge"`
	ByClass        []ClassStats `json:"byClass"`
	Trend          []TrendPoint `json:"trend"`
}
