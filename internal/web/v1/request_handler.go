package v1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/duynhne/messaging-service/internal/core/domain"
	logicv1 "github.com/duynhne/messaging-service/internal/logic/v1"
	"github.com/duynhne/messaging-service/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RequestHandler handles HTTP requests for request submission and listing
type RequestHandler struct {
	service *logicv1.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(service *logicv1.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// contextWithSpan bundles the span-carrying context with its span so the
// submit handlers share one setup path.
type contextWithSpan struct {
	ctx  context.Context
	span trace.Span
}

func (h *RequestHandler) startSpan(c *gin.Context) contextWithSpan {
	spanCtx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	return contextWithSpan{spanCtx, span}
}

// SubmitText handles POST /request/text
func (h *RequestHandler) SubmitText(c *gin.Context) {
	ws := h.startSpan(c)
	defer ws.span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.TextRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid text request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": sanitizeValidationError(err)})
		return
	}

	id, err := h.service.SubmitText(ws.ctx, req.UserID, req.Text)
	if err != nil {
		h.writeSubmitError(c, ws, logger, err)
		return
	}

	logger.Info("Text request created", zap.String("request_id", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "ok"})
}

// SubmitContact handles POST /request/contact
func (h *RequestHandler) SubmitContact(c *gin.Context) {
	ws := h.startSpan(c)
	defer ws.span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.ContactRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": sanitizeValidationError(err)})
		return
	}

	id, err := h.service.SubmitContact(ws.ctx, req.UserID, req.ContactName, req.ContactPhone)
	if err != nil {
		h.writeSubmitError(c, ws, logger, err)
		return
	}

	logger.Info("Contact request created", zap.String("request_id", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "ok"})
}

// SubmitLocation handles POST /request/location
func (h *RequestHandler) SubmitLocation(c *gin.Context) {
	ws := h.startSpan(c)
	defer ws.span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.LocationRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid location request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": sanitizeValidationError(err)})
		return
	}

	id, err := h.service.SubmitLocation(ws.ctx, req.UserID, *req.Lat, *req.Lng)
	if err != nil {
		h.writeSubmitError(c, ws, logger, err)
		return
	}

	logger.Info("Location request created", zap.String("request_id", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "ok"})
}

// SubmitPhoto handles POST /request/photo (multipart: user_id, file)
func (h *RequestHandler) SubmitPhoto(c *gin.Context) {
	ws := h.startSpan(c)
	defer ws.span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	userID, filename, size, ok := h.readUpload(c, logger)
	if !ok {
		return
	}

	id, photoURL, err := h.service.SubmitPhoto(ws.ctx, userID, filename, size)
	if err != nil {
		h.writeSubmitError(c, ws, logger, err)
		return
	}

	logger.Info("Photo request created",
		zap.String("request_id", id),
		zap.Int64("size", size),
	)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "ok", "photo_url": photoURL})
}

// SubmitVoice handles POST /request/voice (multipart: user_id, file)
func (h *RequestHandler) SubmitVoice(c *gin.Context) {
	ws := h.startSpan(c)
	defer ws.span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	userID, filename, size, ok := h.readUpload(c, logger)
	if !ok {
		return
	}

	id, voiceURL, err := h.service.SubmitVoice(ws.ctx, userID, filename, size)
	if err != nil {
		h.writeSubmitError(c, ws, logger, err)
		return
	}

	logger.Info("Voice request created",
		zap.String("request_id", id),
		zap.Int64("size", size),
	)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "ok", "voice_url": voiceURL})
}

// ListByUser handles GET /requests/:user_id
func (h *RequestHandler) ListByUser(c *gin.Context) {
	ws := h.startSpan(c)
	defer ws.span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	userID := c.Param("user_id")
	ws.span.SetAttributes(attribute.String("user.id", userID))

	items, err := h.service.ListByUser(ws.ctx, userID)
	if err != nil {
		ws.span.RecordError(err)
		logger.Error("Failed to list requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	logger.Info("Requests listed",
		zap.String("user_id", userID),
		zap.Int("count", len(items)),
	)
	c.JSON(http.StatusOK, items)
}

// readUpload extracts the multipart fields and measures the file by reading
// it to completion. The content is discarded; only the byte count survives.
func (h *RequestHandler) readUpload(c *gin.Context, logger *zap.Logger) (userID, filename string, size int64, ok bool) {
	userID = c.PostForm("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "user_id is required"})
		return "", "", 0, false
	}

	header, err := c.FormFile("file")
	if err != nil {
		logger.Error("Missing upload file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return "", "", 0, false
	}

	f, err := header.Open()
	if err != nil {
		logger.Error("Failed to open upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable upload"})
		return "", "", 0, false
	}
	defer f.Close()

	size, err = io.Copy(io.Discard, f)
	if err != nil {
		logger.Error("Failed to read upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable upload"})
		return "", "", 0, false
	}

	return userID, header.Filename, size, true
}

func (h *RequestHandler) writeSubmitError(c *gin.Context, ws contextWithSpan, logger *zap.Logger, err error) {
	ws.span.RecordError(err)
	logger.Error("Failed to create request", zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"detail": sanitizeValidationError(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
