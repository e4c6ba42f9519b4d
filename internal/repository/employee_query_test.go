package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/workpulse/attendance-api/internal/models"
)

func TestBuildEmployeeQueryEmptyFilter(t *testing.T) {
	query := BuildEmployeeQuery(models.EmployeeFilter{})
	assert.Empty(t, query)
}

func TestBuildEmployeeQueryNameIsCaseInsensitiveSubstring(t *testing.T) {
	query := BuildEmployeeQuery(models.EmployeeFilter{Name: "an(a)"})

	re, ok := query["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `an\(a\)`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestBuildEmployeeQueryRanges(t *testing.T) {
	minAge, maxAge := 20, 30
	minAtt := 75.0
	role := models.RoleEmployee

	query := BuildEmployeeQuery(models.EmployeeFilter{
		Class:         "Engineering",
		Role:          &role,
		MinAge:        &minAge,
		MaxAge:        &maxAge,
		MinAttendance: &minAtt,
		Subjects:      []string{"Go", "SQL"},
	})

	assert.Equal(t, "Engineering", query["class"])
	assert.Equal(t, models.RoleEmployee, query["role"])
	assert.Equal(t, bson.M{"$gte": 20, "$lte": 30}, query["age"])
	assert.Equal(t, bson.M{"$gte": 75.0}, query["attendance"])
	assert.Equal(t, bson.M{"$all": []string{"Go", "SQL"}}, query["subjects"])
}

func TestBuildEmployeeSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "age", Value: 1}}, BuildEmployeeSort(models.SortAgeAsc))
	assert.Equal(t, bson.D{{Key: "attendance", Value: -1}}, BuildEmployeeSort(models.SortAttendanceDesc))

	// unknown and empty both fall back to newest-created first
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, BuildEmployeeSort(""))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, BuildEmployeeSort("BOGUS"))
}

func TestPaginate(t *testing.T) {
	skip, limit := Paginate(2, 10)
	assert.Equal(t, int64(10), skip)
	assert.Equal(t, int64(10), limit)

	skip, limit = Paginate(0, 0)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(1), limit)
}
