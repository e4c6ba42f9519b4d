package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workpulse/attendance-api/pkg/config"
)

// Collection names used across the repositories.
const (
	CollectionEmployees  = "employees"
	CollectionAttendance = "attendance_records"
)

// Mongo wraps the client and database handles with an explicit lifecycle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes the Mongo connection and pings the server.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the uniqueness constraints the domain relies on:
// one employee per email, one attendance record per (employee, date).
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	employees := m.DB.Collection(CollectionEmployees)
	if _, err := employees.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create email index: %w", err)
	}

	attendance := m.DB.Collection(CollectionAttendance)
	if _, err := attendance.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create attendance index: %w", err)
	}

	return nil
}
