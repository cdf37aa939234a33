package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID validates an opaque identifier against the store's native key
// format, a 24-character hex object id. Malformed input yields ErrInvalidID
// so callers can report a client error instead of a miss.
func ParseID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("parse id %q: %w", raw, ErrInvalidID)
	}
	return oid, nil
}
