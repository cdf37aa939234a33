package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User maps to the "user" collection. The password hash never appears in JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	PhotoURL     *string            `bson:"photo_url" json:"photo_url"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Identity is the success body of signup and login. No credential artifact
// is issued; callers get a bare identity record.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile is the success body of profile reads and updates.
type Profile struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photo_url"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil means "leave
// unchanged"; a request where both are nil is a no-op.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	PhotoURL *string `json:"photo_url"`
}

// Fields returns the non-nil fields as a partial update map.
func (r UpdateProfileRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.PhotoURL != nil {
		fields["photo_url"] = *r.PhotoURL
	}
	return fields
}
