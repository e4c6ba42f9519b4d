package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workpulse/attendance-api/internal/models"
	"github.com/workpulse/attendance-api/pkg/database"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

// AttendanceRepository manages persistence for attendance records. Records
// are immutable once inserted; there is no update or delete path.
type AttendanceRepository struct {
	collection *mongo.Collection
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{collection: db.Collection(database.CollectionAttendance)}
}

// Create inserts a new attendance record. The unique (employeeId, date)
// index turns concurrent duplicates into a Conflict.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	record.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return appErrors.Clone(appErrors.ErrConflict, "attendance already recorded for this date")
		}
		return fmt.Errorf("insert attendance record: %w", err)
	}
	return nil
}

// ExistsForDate reports whether a record already exists for the employee on
// the given calendar date.
func (r *AttendanceRepository) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"employeeId": employeeID, "date": date})
	if err != nil {
		return false, fmt.Errorf("count attendance for date: %w", err)
	}
	return count > 0, nil
}

// ListByEmployee returns one employee's records newest date first, optionally
// restricted to an inclusive date range.
func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, rng models.AttendanceRange) ([]models.AttendanceRecord, error) {
	query := bson.M{"employeeId": employeeID}
	if rng.From != nil || rng.To != nil {
		window := bson.M{}
		if rng.From != nil {
			window["$gte"] = *rng.From
		}
		if rng.To != nil {
			window["$lte"] = *rng.To
		}
		query["date"] = window
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find attendance for employee %s: %w", employeeID, err)
	}
	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode attendance records: %w", err)
	}
	return records, nil
}

// ListByEmployeeIDs fetches records for many employees in one $in query,
// newest date first. Used by the attendance batch loader.
func (r *AttendanceRepository) ListByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]models.AttendanceRecord, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx,
		bson.M{"employeeId": bson.M{"$in": employeeIDs}},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find attendance by employee ids: %w", err)
	}
	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode attendance records: %w", err)
	}
	return records, nil
}

// Counts aggregates total and present record counts for one employee.
func (r *AttendanceRepository) Counts(ctx context.Context, employeeID string) (total, present int64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"employeeId": employeeID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"total":   bson.M{"$sum": 1},
			"present": bson.M{"$sum": bson.M{"$cond": bson.A{"$present", 1, 0}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate attendance counts: %w", err)
	}
	var rows []struct {
		Total   int64 `bson:"total"`
		Present int64 `bson:"present"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, fmt.Errorf("decode attendance counts: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Total, rows[0].Present, nil
}

// Trend aggregates per-day present/absent counts since the given date,
// oldest day first.
func (r *AttendanceRepository) Trend(ctx context.Context, since time.Time) ([]models.TrendPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$date",
			"present": bson.M{"$sum": bson.M{"$cond": bson.A{"$present", 1, 0}}},
			"absent":  bson.M{"$sum": bson.M{"$cond": bson.A{"$present", 0, 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate attendance trend: %w", err)
	}
	var rows []struct {
		Date    time.Time `bson:"_id"`
		Present int64     `bson:"present"`
		Absent  int64     `bson:"absent"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode attendance trend: %w", err)
	}

	points := make([]models.TrendPoint, 0, len(rows))
	for _, row := range rows {
		point := models.TrendPoint{Date: row.Date, PresentCount: row.Present, AbsentCount: row.Absent}
		if day := row.Present + row.Absent; day > 0 {
			point.AvgAttendance = 100 * float64(row.Present) / float64(day)
		}
		points = append(points, point)
	}
	return points, nil
}
