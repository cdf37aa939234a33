package v1

import (
	"errors"
	"net/http"

	"github.com/duynhne/messaging-service/internal/core/domain"
	logicv1 "github.com/duynhne/messaging-service/internal/logic/v1"
	"github.com/duynhne/messaging-service/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for signup, login and profile operations
type UserHandler struct {
	service *logicv1.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *logicv1.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Signup handles POST /auth/signup
func (h *UserHandler) Signup(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Error("Invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": sanitizeValidationError(err)})
		return
	}

	identity, err := h.service.Signup(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to sign up user", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	logger.Info("User signed up", zap.String("user_id", identity.ID))
	c.JSON(http.StatusOK, identity)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": sanitizeValidationError(err)})
		return
	}

	identity, err := h.service.Login(ctx, req)
	if err != nil {
		span.RecordError(err)

		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// One message for unknown email and wrong password
			logger.Warn("Login rejected")
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid credentials"})
		default:
			logger.Error("Failed to log in user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	logger.Info("User logged in", zap.String("user_id", identity.ID))
	c.JSON(http.StatusOK, identity)
}

// GetProfile handles GET /profile/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id := c.Param("id")
	span.SetAttributes(attribute.String("user.id", id))

	profile, err := h.service.GetProfile(ctx, id)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to get profile", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user id"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	logger.Info("Profile retrieved", zap.String("user_id", id))
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /profile/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id := c.Param("id")
	span.SetAttributes(attribute.String("user.id", id))

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Error("Invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": sanitizeValidationError(err)})
		return
	}

	profile, updated, err := h.service.UpdateProfile(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to update profile", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user id"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	if !updated {
		logger.Info("Profile update was a no-op", zap.String("user_id", id))
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}

	logger.Info("Profile updated", zap.String("user_id", id))
	c.JSON(http.StatusOK, profile)
}
