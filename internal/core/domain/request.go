package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestType discriminates the five request variants. Each variant
// populates exactly the fields valid for its tag; construction goes through
// the New*Request constructors below, which is what keeps the flat stored
// document honest.
type RequestType string

const (
	RequestText     RequestType = "text"
	RequestVoice    RequestType = "voice"
	RequestPhoto    RequestType = "photo"
	RequestContact  RequestType = "contact"
	RequestLocation RequestType = "location"
)

// StatusSent is the only status a request ever holds; items are immutable
// after creation.
const StatusSent = "sent"

// Location is the structured payload of a location request.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// RequestItem maps to the "requestitem" collection. Fields irrelevant to
// Type stay nil in storage (omitempty) but serialize as explicit JSON nulls,
// matching what listing clients expect. UserID is a plain text reference and
// is not checked against the user collection.
type RequestItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	Type         RequestType        `bson:"type" json:"type"`
	Text         *string            `bson:"text,omitempty" json:"text"`
	VoiceURL     *string            `bson:"voice_url,omitempty" json:"voice_url"`
	PhotoURL     *string            `bson:"photo_url,omitempty" json:"photo_url"`
	ContactName  *string            `bson:"contact_name,omitempty" json:"contact_name"`
	ContactPhone *string            `bson:"contact_phone,omitempty" json:"contact_phone"`
	Location     *Location          `bson:"location,omitempty" json:"location"`
	Status       string             `bson:"status" json:"status"`
	Meta         map[string]any     `bson:"meta,omitempty" json:"meta"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

func newRequestItem(userID string, t RequestType) (*RequestItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id: %w", ErrMissingField)
	}
	return &RequestItem{
		UserID:    userID,
		Type:      t,
		Status:    StatusSent,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewTextRequest builds a text request.
func NewTextRequest(userID, text string) (*RequestItem, error) {
	item, err := newRequestItem(userID, RequestText)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("text: %w", ErrMissingField)
	}
	item.Text = &text
	return item, nil
}

// NewContactRequest builds a contact request. Name and phone are required
// together.
func NewContactRequest(userID, contactName, contactPhone string) (*RequestItem, error) {
	item, err := newRequestItem(userID, RequestContact)
	if err != nil {
		return nil, err
	}
	if contactName == "" {
		return nil, fmt.Errorf("contact_name: %w", ErrMissingField)
	}
	if contactPhone == "" {
		return nil, fmt.Errorf("contact_phone: %w", ErrMissingField)
	}
	item.ContactName = &contactName
	item.ContactPhone = &contactPhone
	return item, nil
}

// NewLocationRequest builds a location request.
func NewLocationRequest(userID string, lat, lng float64) (*RequestItem, error) {
	item, err := newRequestItem(userID, RequestLocation)
	if err != nil {
		return nil, err
	}
	item.Location = &Location{Lat: lat, Lng: lng}
	return item, nil
}

// NewPhotoRequest builds a photo request. The upload itself is not stored;
// sizeBytes records how much was received.
func NewPhotoRequest(userID, photoURL string, sizeBytes int64) (*RequestItem, error) {
	item, err := newRequestItem(userID, RequestPhoto)
	if err != nil {
		return nil, err
	}
	if photoURL == "" {
		return nil, fmt.Errorf("photo_url: %w", ErrMissingField)
	}
	item.PhotoURL = &photoURL
	item.Meta = map[string]any{"size": sizeBytes}
	return item, nil
}

// NewVoiceRequest builds a voice request. Same upload handling as photo.
func NewVoiceRequest(userID, voiceURL string, sizeBytes int64) (*RequestItem, error) {
	item, err := newRequestItem(userID, RequestVoice)
	if err != nil {
		return nil, err
	}
	if voiceURL == "" {
		return nil, fmt.Errorf("voice_url: %w", ErrMissingField)
	}
	item.VoiceURL = &voiceURL
	item.Meta = map[string]any{"size": sizeBytes}
	return item, nil
}

// Payloads bound by the web layer.

type TextRequestPayload struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type ContactRequestPayload struct {
	UserID       string `json:"user_id" binding:"required"`
	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
}

// LocationRequestPayload uses pointers so that lat/lng 0 binds as present.
type LocationRequestPayload struct {
	UserID string   `json:"user_id" binding:"required"`
	Lat    *float64 `json:"lat" binding:"required"`
	Lng    *float64 `json:"lng" binding:"required"`
}
