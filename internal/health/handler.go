// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/database/database"
)

const checkTimeout = 5 * time.Second

// StoreChecker reports whether the payment proof store is writable.
type StoreChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	store  StoreChecker
	logger *zap.SugaredLogger
}

// New creates a new health handler instance. store may be nil.
func New(db *gorm.DB, store StoreChecker, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:     db,
		store:  store,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Services: map[string]string{"database": "ok"}}
	code := http.StatusOK

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "service", "database", "error", err)
		resp.Services["database"] = "unavailable"
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	if h.store != nil {
		resp.Services["storage"] = "ok"
		if err := h.store.HealthCheck(ctx); err != nil {
			h.logger.Warnw("health check failed", "service", "storage", "error", err)
			resp.Services["storage"] = "unavailable"
			resp.Status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, resp)
}

// RegisterRoutes registers the health endpoint.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.GET("/health", h.Check)
}
