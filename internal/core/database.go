package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Config holds MongoDB connection configuration loaded from environment variables
type Config struct {
	URL  string // DATABASE_URL - MongoDB connection string (e.g., "mongodb://localhost:27017")
	Name string // DATABASE_NAME - database name
}

// Handle is an explicitly constructed database handle passed into the
// repositories. It owns the client lifecycle: Connect opens it, Close
// releases it at process shutdown.
type Handle struct {
	client *mongo.Client
	db     *mongo.Database
}

// LoadConfig loads MongoDB configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		URL:  os.Getenv("DATABASE_URL"),
		Name: os.Getenv("DATABASE_NAME"),
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("DATABASE_NAME environment variable is required")
	}

	return cfg, nil
}

// Connect establishes the MongoDB client, verifies connectivity with a ping,
// and ensures the indexes the service relies on.
func Connect(ctx context.Context) (*Handle, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &Handle{
		client: client,
		db:     client.Database(cfg.Name),
	}

	if err := h.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return h, nil
}

// ensureIndexes creates the unique email index on the user collection.
// The signup pre-check alone leaves a check-then-insert race between
// concurrent signups; the unique index closes it at the store level.
func (h *Handle) ensureIndexes(ctx context.Context) error {
	_, err := h.db.Collection("user").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// DB returns the database for repository construction.
func (h *Handle) DB() *mongo.Database {
	return h.db
}

// Ping verifies connectivity to the primary.
func (h *Handle) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}

// CollectionNames lists the collections present in the database.
func (h *Handle) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := h.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// Close disconnects the client. Call once at process shutdown.
func (h *Handle) Close(ctx context.Context) error {
	if err := h.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect database: %w", err)
	}
	return nil
}
