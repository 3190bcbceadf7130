// Package handler provides HTTP handlers for legacy registration endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/legacy/model"
	"github.com/festy23/hacksavvy/internal/legacy/service"
	"github.com/festy23/hacksavvy/pkg/apierror"
)

// Handler handles HTTP requests for legacy registration endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new legacy registration handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// List handles GET /api/admin/legacy/registrations request.
// @Summary List legacy registrations, newest first
// @Tags Legacy
// @Produce json
// @Success 200 {object} model.ListResponse
// @Failure 403 {object} apierror.Response
// @Router /api/admin/legacy/registrations [get].
func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), auth.IdentityFrom(c))
	if err != nil {
		h.writeError(c, "list registrations", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify handles POST /api/admin/legacy/registrations/:id/verify request.
// @Summary Verify a legacy registration's payment
// @Tags Legacy
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} model.VerifyResponse
// @Failure 403 {object} apierror.Response
// @Failure 404 {object} apierror.Response
// @Router /api/admin/legacy/registrations/{id}/verify [post].
func (h *Handler) Verify(c *gin.Context) {
	resp, err := h.service.Verify(c.Request.Context(), auth.IdentityFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, "verify registration", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, model.ErrForbidden):
		apierror.Write(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
	case errors.Is(err, model.ErrRegistrationNotFound):
		apierror.Write(c, http.StatusNotFound, "NOT_FOUND", "registration not found")
	default:
		h.logger.Errorw("request failed", "operation", op, "error", err)
		apierror.Write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
