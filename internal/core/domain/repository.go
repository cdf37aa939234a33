package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines data access for the user collection
type UserRepository interface {
	Create(ctx context.Context, user *User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*User, bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, bool, error)
	// UpdateFields merges the given partial fields into the user document.
	// Returns false when no document matched.
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error)
}

// RequestRepository defines data access for the requestitem collection
type RequestRepository interface {
	Create(ctx context.Context, item *RequestItem) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]RequestItem, error)
}
