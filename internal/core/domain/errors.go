package domain

import "errors"

// Sentinel errors for user and request operations.
var (
	// ErrInvalidID indicates the supplied identifier is not a valid
	// 24-character hex object id. Distinct from ErrUserNotFound so malformed
	// ids never surface as a miss.
	// HTTP Status: 400 Bad Request
	ErrInvalidID = errors.New("invalid identifier")

	// ErrUserNotFound indicates the requested user does not exist.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates a user with the same email is already registered.
	// HTTP Status: 400 Bad Request
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password, deliberately indistinguishable.
	// HTTP Status: 400 Bad Request
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingField indicates a required field for the request type is blank.
	// HTTP Status: 400 Bad Request
	ErrMissingField = errors.New("missing required field")
)
