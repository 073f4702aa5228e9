package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/note-manager-api/internal/errors"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the welcome and health endpoints.
type SystemHandler struct {
	db Pinger
}

func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

func (h *SystemHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Notemanager"})
}

// Health reports whether the store answers a ping.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		apierrors.ServiceUnavailable(c, "Database is unreachable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Note Manager API is running",
	})
}
