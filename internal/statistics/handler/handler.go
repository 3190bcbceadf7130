// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/statistics/model"
	"github.com/festy23/hacksavvy/internal/statistics/service"
	"github.com/festy23/hacksavvy/pkg/apierror"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetSummary handles GET /api/admin/stats request.
// @Summary Admin dashboard counters
// @Tags Admin
// @Produce json
// @Success 200 {object} model.SummaryResponse
// @Failure 403 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /api/admin/stats [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetSummary(c *gin.Context) {
	resp, err := h.service.Summary(c.Request.Context(), auth.IdentityFrom(c))
	if err != nil {
		if errors.Is(err, model.ErrForbidden) {
			apierror.Write(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}
		h.logger.Errorw("error getting application statistics", "error", err)
		apierror.Write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	c.JSON(http.StatusOK, resp)
}
