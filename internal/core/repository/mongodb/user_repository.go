package mongodb

import (
	"context"
	"fmt"

	"github.com/duynhne/messaging-service/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository implements domain.UserRepository over the user collection
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new user. A duplicate-key violation on the unique email
// index maps to domain.ErrEmailTaken, closing the signup pre-check race.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	id, err := r.store.CreateDocument(ctx, CollectionUser, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("create user %q: %w", user.Email, domain.ErrEmailTaken)
		}
		return primitive.NilObjectID, err
	}
	return id, nil
}

// FindByEmail returns the user with the given email, or found=false on a miss.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	var user domain.User
	found, err := r.store.FindOne(ctx, CollectionUser, bson.M{"email": email}, &user)
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}

// FindByID returns the user with the given id, or found=false on a miss.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, bool, error) {
	var user domain.User
	found, err := r.store.FindOne(ctx, CollectionUser, bson.M{"_id": id}, &user)
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}

// UpdateFields merges the given partial fields into the user document.
func (r *UserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error) {
	return r.store.UpdateOne(ctx, CollectionUser, id, bson.M(fields))
}
