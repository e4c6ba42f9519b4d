package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/workpulse/attendance-api/internal/models"
)

// BuildEmployeeQuery translates a filter into a Mongo query document.
// Absent fields impose no constraint; supplied predicates are ANDed.
func BuildEmployeeQuery(filter models.EmployeeFilter) bson.M {
	query := bson.M{}

	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.Class != "" {
		query["class"] = filter.Class
	}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}

	if filter.MinAge != nil || filter.MaxAge != nil {
		age := bson.M{}
		if filter.MinAge != nil {
			age["$gte"] = *filter.MinAge
		}
		if filter.MaxAge != nil {
			age["$lte"] = *filter.MaxAge
		}
		query["age"] = age
	}

	if filter.MinAttendance != nil || filter.MaxAttendance != nil {
		attendance := bson.M{}
		if filter.MinAttendance != nil {
			attendance["$gte"] = *filter.MinAttendance
		}
		if filter.MaxAttendance != nil {
			attendance["$lte"] = *filter.MaxAttendance
		}
		query["attendance"] = attendance
	}

	if len(filter.Subjects) > 0 {
		query["subjects"] = bson.M{"$all": filter.Subjects}
	}

	return query
}

var sortFields = map[models.EmployeeSort]bson.E{
	models.SortNameAsc:        {Key: "name", Value: 1},
	models.SortNameDesc:       {Key: "name", Value: -1},
	models.SortAgeAsc:         {Key: "age", Value: 1},
	models.SortAgeDesc:        {Key: "age", Value: -1},
	models.SortAttendanceAsc:  {Key: "attendance", Value: 1},
	models.SortAttendanceDesc: {Key: "attendance", Value: -1},
	models.SortClassAsc:       {Key: "class", Value: 1},
	models.SortClassDesc:      {Key: "class", Value: -1},
	models.SortCreatedAtAsc:   {Key: "createdAt", Value: 1},
	models.SortCreatedAtDesc:  {Key: "createdAt", Value: -1},
}

// BuildEmployeeSort maps a sort enum value onto a Mongo sort document,
// defaulting to newest-created first for unknown or empty values.
func BuildEmployeeSort(sort models.EmployeeSort) bson.D {
	if e, ok := sortFields[sort]; ok {
		return bson.D{e}
	}
	return bson.D{{Key: "createdAt", Value: -1}}
}

// Paginate converts a 1-indexed page and page size into skip/limit values,
// flooring both at sane minimums.
func Paginate(page, pageSize int) (skip, limit int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return int64(page-1) * int64(pageSize), int64(pageSize)
}
