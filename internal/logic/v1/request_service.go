package v1

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/duynhne/messaging-service/internal/core/domain"
	"github.com/duynhne/messaging-service/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// listLimit caps request listings; there is no pagination cursor.
const listLimit = 100

// RequestService implements request submission and per-user listing
type RequestService struct {
	requests domain.RequestRepository
}

// NewRequestService creates a new request service
func NewRequestService(requests domain.RequestRepository) *RequestService {
	return &RequestService{requests: requests}
}

// SubmitText creates a text request and returns its id.
func (s *RequestService) SubmitText(ctx context.Context, userID, text string) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "request.submit_text", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	item, err := domain.NewTextRequest(userID, text)
	if err != nil {
		return "", err
	}
	return s.create(ctx, span, item)
}

// SubmitContact creates a contact request and returns its id.
func (s *RequestService) SubmitContact(ctx context.Context, userID, contactName, contactPhone string) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "request.submit_contact", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	item, err := domain.NewContactRequest(userID, contactName, contactPhone)
	if err != nil {
		return "", err
	}
	return s.create(ctx, span, item)
}

// SubmitLocation creates a location request and returns its id.
func (s *RequestService) SubmitLocation(ctx context.Context, userID string, lat, lng float64) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "request.submit_location", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	item, err := domain.NewLocationRequest(userID, lat, lng)
	if err != nil {
		return "", err
	}
	return s.create(ctx, span, item)
}

// SubmitPhoto creates a photo request. The upload is measured, not stored:
// sizeBytes lands in meta and the returned URL is synthesized from the
// original filename's extension.
func (s *RequestService) SubmitPhoto(ctx context.Context, userID, filename string, sizeBytes int64) (id, photoURL string, err error) {
	ctx, span := middleware.StartSpan(ctx, "request.submit_photo", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
		attribute.Int64("upload.size", sizeBytes),
	))
	defer span.End()

	photoURL = uploadURL(filename)
	item, err := domain.NewPhotoRequest(userID, photoURL, sizeBytes)
	if err != nil {
		return "", "", err
	}
	id, err = s.create(ctx, span, item)
	if err != nil {
		return "", "", err
	}
	return id, photoURL, nil
}

// SubmitVoice creates a voice request; upload handling matches SubmitPhoto.
func (s *RequestService) SubmitVoice(ctx context.Context, userID, filename string, sizeBytes int64) (id, voiceURL string, err error) {
	ctx, span := middleware.StartSpan(ctx, "request.submit_voice", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
		attribute.Int64("upload.size", sizeBytes),
	))
	defer span.End()

	voiceURL = uploadURL(filename)
	item, err := domain.NewVoiceRequest(userID, voiceURL, sizeBytes)
	if err != nil {
		return "", "", err
	}
	id, err = s.create(ctx, span, item)
	if err != nil {
		return "", "", err
	}
	return id, voiceURL, nil
}

// ListByUser returns up to 100 requests for the given user, oldest first.
// The user id is a plain filter value; it is not validated to exist.
func (s *RequestService) ListByUser(ctx context.Context, userID string) ([]domain.RequestItem, error) {
	ctx, span := middleware.StartSpan(ctx, "request.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	items, err := s.requests.ListByUser(ctx, userID, listLimit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list requests: %w", err)
	}

	span.SetAttributes(attribute.Int("request.count", len(items)))
	return items, nil
}

func (s *RequestService) create(ctx context.Context, span trace.Span, item *domain.RequestItem) (string, error) {
	id, err := s.requests.Create(ctx, item)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("create request: %w", err)
	}
	span.SetAttributes(attribute.String("request.id", id.Hex()))
	return id.Hex(), nil
}

// uploadURL synthesizes the path an upload would live at. A random name
// keeps concurrent uploads with the same client filename from colliding and
// keeps unsanitized filenames out of the path.
func uploadURL(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return "/uploads/" + uuid.NewString() + ext
}
