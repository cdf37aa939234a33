package v1

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duynhne/messaging-service/internal/core/domain"
	"github.com/duynhne/messaging-service/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// HashPassword produces a salted one-way digest of the plaintext. The salt
// is random, so the same plaintext yields a different digest on every call.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext matches the digest. A malformed
// digest compares as false rather than erroring.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// UserService implements signup, login and profile management
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new user service
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Signup registers a new account: uniqueness pre-check, hash, persist.
// A taken email short-circuits before anything is written. The pre-check is
// not atomic with the insert; the unique email index backstops the race and
// the repository maps the duplicate-key error to the same ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Identity, error) {
	ctx, span := middleware.StartSpan(ctx, "user.signup", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	_, found, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if found {
		span.SetAttributes(attribute.Bool("user.created", false))
		return nil, fmt.Errorf("signup %q: %w", req.Email, domain.ErrEmailTaken)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PhotoURL:     nil,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			span.SetAttributes(attribute.Bool("user.created", false))
			return nil, err
		}
		span.RecordError(err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", id.Hex()),
		attribute.Bool("user.created", true),
	)
	span.AddEvent("user.created")

	return &domain.Identity{
		ID:    id.Hex(),
		Email: req.Email,
		Name:  req.Name,
	}, nil
}

// Login verifies credentials and returns a bare identity record. Unknown
// email and wrong password collapse into one ErrInvalidCredentials outcome.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Identity, error) {
	ctx, span := middleware.StartSpan(ctx, "user.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	user, found, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if !found || !CheckPassword(req.Password, user.PasswordHash) {
		span.SetAttributes(attribute.Bool("login.ok", false))
		return nil, domain.ErrInvalidCredentials
	}

	span.SetAttributes(attribute.Bool("login.ok", true))
	return &domain.Identity{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

// GetProfile retrieves a user's profile by raw identifier.
func (s *UserService) GetProfile(ctx context.Context, rawID string) (*domain.Profile, error) {
	ctx, span := middleware.StartSpan(ctx, "user.profile", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", rawID),
	))
	defer span.End()

	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	user, found, err := s.users.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user profile: %w", err)
	}
	if !found {
		span.SetAttributes(attribute.Bool("profile.found", false))
		return nil, fmt.Errorf("get profile %q: %w", rawID, domain.ErrUserNotFound)
	}

	span.SetAttributes(attribute.Bool("profile.found", true))
	return profileOf(user), nil
}

// UpdateProfile merges the provided fields into the user record and returns
// the fresh profile. A request with no effective fields returns updated=false
// without touching the store; repeating the same update is idempotent.
func (s *UserService) UpdateProfile(ctx context.Context, rawID string, req domain.UpdateProfileRequest) (*domain.Profile, bool, error) {
	ctx, span := middleware.StartSpan(ctx, "user.update_profile", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", rawID),
	))
	defer span.End()

	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, false, err
	}

	fields := req.Fields()
	if len(fields) == 0 {
		span.SetAttributes(attribute.Bool("profile.updated", false))
		return nil, false, nil
	}

	matched, err := s.users.UpdateFields(ctx, id, fields)
	if err != nil {
		span.RecordError(err)
		return nil, false, fmt.Errorf("update profile: %w", err)
	}
	if !matched {
		span.SetAttributes(attribute.Bool("profile.updated", false))
		return nil, false, fmt.Errorf("update profile %q: %w", rawID, domain.ErrUserNotFound)
	}

	user, found, err := s.users.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, false, fmt.Errorf("reload profile: %w", err)
	}
	if !found {
		return nil, false, fmt.Errorf("reload profile %q: %w", rawID, domain.ErrUserNotFound)
	}

	span.SetAttributes(attribute.Bool("profile.updated", true))
	return profileOf(user), true, nil
}

func profileOf(user *domain.User) *domain.Profile {
	return &domain.Profile{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	}
}
