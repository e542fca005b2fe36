// Package repository stores completed sessions in MongoDB.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// appName identifies photorank connections in server logs.
const appName = "photorank"

// MongoDB wraps a connected client and the archive database.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *slog.Logger
}

// MongoDBConfig contains configuration for the archive connection.
type MongoDBConfig struct {
	URI      string
	Database string
	// ConnectTimeout bounds server selection, the initial ping and index setup.
	ConnectTimeout time.Duration
}

// DefaultMongoDBConfig returns a local server configuration.
func DefaultMongoDBConfig() *MongoDBConfig {
	return &MongoDBConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "photorank",
		ConnectTimeout: 10 * time.Second,
	}
}

// NewMongoDB connects, verifies the server is reachable and creates the
// indexes the archive queries rely on.
func NewMongoDB(ctx context.Context, cfg *MongoDBConfig, logger *slog.Logger) (*MongoDB, error) {
	if cfg == nil {
		cfg = DefaultMongoDBConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	m := &MongoDB{
		client:   client,
		database: client.Database(cfg.Database),
		logger:   logger,
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		m.disconnect()
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	if err := m.ensureIndexes(ctx); err != nil {
		m.disconnect()
		return nil, err
	}

	logger.Info("Connected to MongoDB", "database", cfg.Database)
	return m, nil
}

// ensureIndexes supports listing recent sessions newest first.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "completed_at", Value: -1}},
		Options: options.Index().SetName("completed_at_desc"),
	}
	if _, err := m.Collection(ResultsCollection).Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create results index: %w", err)
	}
	return nil
}

func (m *MongoDB) disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Warn("Failed to disconnect from MongoDB", "error", err)
	}
}

// Close disconnects from MongoDB.
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// Collection returns a collection of the archive database.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}
