package mongodb

import (
	"context"

	"github.com/duynhne/messaging-service/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestRepository implements domain.RequestRepository over the requestitem
// collection
type RequestRepository struct {
	store *Store
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(store *Store) *RequestRepository {
	return &RequestRepository{store: store}
}

// Create inserts an immutable request item.
func (r *RequestRepository) Create(ctx context.Context, item *domain.RequestItem) (primitive.ObjectID, error) {
	return r.store.CreateDocument(ctx, CollectionRequestItem, item)
}

// ListByUser returns up to limit items for the given user id, oldest first.
// The explicit created_at sort keeps the listing stable across calls.
func (r *RequestRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.RequestItem, error) {
	items := []domain.RequestItem{}
	err := r.store.FindMany(ctx, CollectionRequestItem,
		bson.M{"user_id": userID},
		limit,
		bson.D{{Key: "created_at", Value: 1}},
		&items,
	)
	if err != nil {
		return nil, err
	}
	return items, nil
}
