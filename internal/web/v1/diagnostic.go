package v1

import (
	"net/http"
	"os"

	database "github.com/duynhne/messaging-service/internal/core"
	"github.com/duynhne/messaging-service/internal/core/repository/mongodb"
	"github.com/gin-gonic/gin"
)

// DiagnosticHandler serves the status and store-connectivity endpoints
type DiagnosticHandler struct {
	db *database.Handle
}

// NewDiagnosticHandler creates a new diagnostic handler
func NewDiagnosticHandler(db *database.Handle) *DiagnosticHandler {
	return &DiagnosticHandler{db: db}
}

// Root handles GET /
func (h *DiagnosticHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend is running"})
}

// Schema handles GET /schema
func (h *DiagnosticHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"collections": []string{mongodb.CollectionUser, mongodb.CollectionRequestItem},
	})
}

// TestDatabase handles GET /test. It reports store connectivity and whether
// the connection environment variables are set; failures land in the payload
// rather than an error status so the endpoint stays usable as a probe.
func (h *DiagnosticHandler) TestDatabase(c *gin.Context) {
	response := gin.H{
		"backend":           "running",
		"database":          "not available",
		"database_url":      presence(os.Getenv("DATABASE_URL")),
		"database_name":     presence(os.Getenv("DATABASE_NAME")),
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if h.db == nil {
		c.JSON(http.StatusOK, response)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.Ping(ctx); err != nil {
		response["database"] = "error: " + truncate(err.Error(), 50)
		c.JSON(http.StatusOK, response)
		return
	}

	response["database"] = "connected"
	response["connection_status"] = "connected"

	if names, err := h.db.CollectionNames(ctx); err == nil {
		if len(names) > 10 {
			names = names[:10]
		}
		response["collections"] = names
	} else {
		response["database"] = "error: " + truncate(err.Error(), 50)
	}

	c.JSON(http.StatusOK, response)
}

func presence(value string) string {
	if value != "" {
		return "set"
	}
	return "not set"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
