package repository

import (
	"context"
	"errors"
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

// EmployeeRepository manages persistence for employee documents.
type EmployeeRepository struct {
	collection *mongo.Collection
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{collection: db.Collection(database.CollectionEmployees)}
}

// List returns one page of employees plus the total match count. Count and
// find run as two separate store calls on the same filter; they are not
// transactionally consistent with each other.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) ([]models.Employee, int64, error) {
	query := BuildEmployeeQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	skip, limit := Paginate(page, pageSize)
	cursor, err := r.collection.Find(ctx, query, options.Find().
		SetSort(BuildEmployeeSort(sort)).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find employees: %w", err)
	}

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, 0, fmt.Errorf("decode employees: %w", err)
	}
	return employees, total, nil
}

// FindByID returns the employee or nil when absent.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find employee %s: %w", id, err)
	}
	return &employee, nil
}

// FindByIDs fetches all employees whose id is in ids with a single $in query.
// Missing ids are simply absent from the result.
func (r *EmployeeRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find employees by ids: %w", err)
	}
	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return employees, nil
}

// FindByEmail returns the employee with the given normalized email, or nil.
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return &employee, nil
}

// ExistsByEmail reports whether another employee already uses the email.
func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := bson.M{"email": email}
	if excludeID != "" {
		query["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return false, fmt.Errorf("count employees by email: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new employee, assigning its id and timestamps.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	now := time.Now().UTC()
	if employee.ID == "" {
		employee.ID = primitive.NewObjectID().Hex()
	}
	employee.CreatedAt = now
	employee.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, employee); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of a partial update to the employee.
func (r *EmployeeRepository) Update(ctx context.Context, id string, input models.UpdateEmployeeInput) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Email != nil {
		set["email"] = *input.Email
	}
	if input.Age != nil {
		set["age"] = *input.Age
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}
	if input.Class != nil {
		set["class"] = *input.Class
	}
	if input.Subjects != nil {
		set["subjects"] = input.Subjects
	}
	if input.Role != nil {
		set["role"] = *input.Role
	}

	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
		return fmt.Errorf("update employee %s: %w", id, err)
	}
	return nil
}

// SetAttendance writes the recomputed attendance percentage and the
// last-attendance-update timestamp. Only the attendance service calls this.
func (r *EmployeeRepository) SetAttendance(ctx context.Context, id string, attendance float64, updatedAt time.Time) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"attendance":           attendance,
		"lastAttendanceUpdate": updatedAt,
		"updatedAt":            updatedAt,
	}})
	if err != nil {
		return fmt.Errorf("set attendance for employee %s: %w", id, err)
	}
	return nil
}

// ListAll returns every employee matching the filter, sorted by name. Used
// by report generation where pagination does not apply.
func (r *EmployeeRepository) ListAll(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	cursor, err := r.collection.Find(ctx, BuildEmployeeQuery(filter),
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return employees, nil
}

// Count returns the number of employee documents.
func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}

// Totals aggregates the employee count plus average attendance and age.
func (r *EmployeeRepository) Totals(ctx context.Context) (int64, float64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"count":         bson.M{"$sum": 1},
			"avgAttendance": bson.M{"$avg": "$attendance"},
			"avgAge":        bson.M{"$avg": "$age"},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("aggregate employee totals: %w", err)
	}
	var rows []struct {
		Count         int64   `bson:"count"`
		AvgAttendance float64 `bson:"avgAttendance"`
		AvgAge        float64 `bson:"avgAge"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, 0, fmt.Errorf("decode employee totals: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, 0, nil
	}
	return rows[0].Count, rows[0].AvgAttendance, rows[0].AvgAge, nil
}

// ByClass aggregates per-class employee counts and attendance averages.
func (r *EmployeeRepository) ByClass(ctx context.Context) ([]models.ClassStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           "$class",
			"count":         bson.M{"$sum": 1},
			"avgAttendance": bson.M{"$avg": "$attendance"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate employees by class: %w", err)
	}
	var stats []models.ClassStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("decode class stats: %w", err)
	}
	return stats, nil
}
