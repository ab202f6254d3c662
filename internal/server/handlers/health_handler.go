package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger checks a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewHealthHandler constructs the health endpoint. db may be nil.
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{db: db, logger: logger}
}

// Health answers 200 when the database responds within two seconds, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "unknown"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, Envelope{
				Status:  false,
				Message: "database unavailable",
				Data:    gin.H{"database": "down"},
			})
			return
		}
		database = "up"
	}

	respondOK(c, "ok", gin.H{"database": database})
}
