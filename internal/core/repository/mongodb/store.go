// Package mongodb implements the document-store adapter and the
// repositories on top of it. Records live in two collections, "user" and
// "requestitem", addressed by store-generated object ids.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, fixed by the stored data.
const (
	CollectionUser        = "user"
	CollectionRequestItem = "requestitem"
)

// Store is a thin generic adapter over the database. Every operation targets
// a single document; atomicity comes from the store itself.
type Store struct {
	db *mongo.Database
}

// NewStore creates a store adapter over an open database handle.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// CreateDocument persists one record and returns its newly assigned id.
func (s *Store) CreateDocument(ctx context.Context, kind string, doc any) (primitive.ObjectID, error) {
	res, err := s.db.Collection(kind).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert %s document: %w", kind, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert %s document: unexpected id type %T", kind, res.InsertedID)
	}
	return oid, nil
}

// FindOne decodes the first match into dest. A miss is (false, nil), not an
// error.
func (s *Store) FindOne(ctx context.Context, kind string, filter bson.M, dest any) (bool, error) {
	err := s.db.Collection(kind).FindOne(ctx, filter).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find %s document: %w", kind, err)
	}
	return true, nil
}

// FindMany decodes up to limit matches into dest (a pointer to a slice).
// Sort is applied explicitly; store-native order is not stable across calls.
func (s *Store) FindMany(ctx context.Context, kind string, filter bson.M, limit int64, sort bson.D, dest any) error {
	opts := options.Find().SetLimit(limit)
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cur, err := s.db.Collection(kind).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find %s documents: %w", kind, err)
	}
	if err := cur.All(ctx, dest); err != nil {
		return fmt.Errorf("decode %s documents: %w", kind, err)
	}
	return nil
}

// UpdateOne merges the given fields into the document with the given id.
// An empty field set is a no-op that never touches the store; the caller
// sees "not updated". Returns false when no document matched.
func (s *Store) UpdateOne(ctx context.Context, kind string, id primitive.ObjectID, fields bson.M) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	res, err := s.db.Collection(kind).UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("update %s document: %w", kind, err)
	}
	return res.MatchedCount > 0, nil
}
