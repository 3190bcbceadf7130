// Package handler provides HTTP handlers for registration, dashboard state
// and admin review endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/auth"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
	"github.com/festy23/hacksavvy/internal/team/service"
	"github.com/festy23/hacksavvy/pkg/apierror"
)

// multipartOverhead is the allowance for the JSON field and multipart framing.
const multipartOverhead = 1 << 20

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	registration service.RegistrationService
	resolver     service.StateResolver
	review       service.ReviewService
	maxProofSize int64
	logger       *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(
	registration service.RegistrationService,
	resolver service.StateResolver,
	review service.ReviewService,
	maxProofSize int64,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		registration: registration,
		resolver:     resolver,
		review:       review,
		maxProofSize: maxProofSize,
		logger:       logger,
	}
}

// Options handles GET /api/register/options request.
// @Summary Registration form constraints
// @Tags Registration
// @Produce json
// @Success 200 {object} teamModel.Options
// @Router /api/register/options [get].
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.registration.Options())
}

// Me handles GET /api/me request.
// @Summary Caller's application state
// @Tags Registration
// @Produce json
// @Success 200 {object} teamModel.ResolveResult
// @Failure 500 {object} apierror.Response
// @Router /api/me [get].
func (h *Handler) Me(c *gin.Context) {
	result, err := h.resolver.Resolve(c.Request.Context(), auth.IdentityFrom(c))
	if err != nil {
		h.writeError(c, "resolve", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Submit handles POST /api/register request.
// @Summary Register a team
// @Tags Registration
// @Accept multipart/form-data
// @Produce json
// @Param data formData string true "RegisterRequest as JSON"
// @Param screenshot formData file true "Payment screenshot"
// @Success 201 {object} teamModel.SubmitResult
// @Failure 400 {object} apierror.Response "VALIDATION_ERROR"
// @Failure 409 {object} apierror.Response "DUPLICATE_TEAM_NAME, ALREADY_REGISTERED"
// @Failure 502 {object} apierror.Response "UPLOAD_ERROR"
// @Router /api/register [post].
func (h *Handler) Submit(c *gin.Context) {
	req, proof, ok := h.bindRegistration(c)
	if !ok {
		return
	}
	result, err := h.registration.Submit(c.Request.Context(), auth.IdentityFrom(c), req, proof)
	if err != nil {
		h.writeError(c, "submit", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Resubmit handles PUT /api/register request.
// @Summary Resubmit a rejected application
// @Tags Registration
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} teamModel.SubmitResult
// @Failure 400 {object} apierror.Response "VALIDATION_ERROR"
// @Failure 404 {object} apierror.Response "NOT_FOUND"
// @Failure 409 {object} apierror.Response "INVALID_TRANSITION, RESUBMISSION_DISABLED"
// @Router /api/register [put].
func (h *Handler) Resubmit(c *gin.Context) {
	req, proof, ok := h.bindRegistration(c)
	if !ok {
		return
	}
	result, err := h.registration.Resubmit(c.Request.Context(), auth.IdentityFrom(c), req, proof)
	if err != nil {
		h.writeError(c, "resubmit", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// bindRegistration reads the "data" JSON field and the optional "screenshot" file.
// A missing file yields a nil proof so the service reports it with the other fields.
func (h *Handler) bindRegistration(c *gin.Context) (*teamModel.RegisterRequest, *teamModel.ProofFile, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxProofSize+multipartOverhead)

	raw := c.PostForm("data")
	if raw == "" {
		var maxErr *http.MaxBytesError
		if err := c.Request.ParseMultipartForm(multipartOverhead); err != nil && errors.As(err, &maxErr) {
			h.writeError(c, "bind", teamModel.NewValidationError("screenshot", fmt.Sprintf("must be at most %d bytes", h.maxProofSize)))
			return nil, nil, false
		}
		h.writeError(c, "bind", teamModel.NewValidationError("data", "registration details are required"))
		return nil, nil, false
	}

	var req teamModel.RegisterRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		h.writeError(c, "bind", teamModel.NewValidationError("data", "must be a valid JSON document"))
		return nil, nil, false
	}

	fh, err := c.FormFile("screenshot")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return &req, nil, true
		}
		h.writeError(c, "bind", teamModel.NewValidationError("screenshot", "could not read uploaded file"))
		return nil, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		h.writeError(c, "bind", fmt.Errorf("open screenshot: %w", err))
		return nil, nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxProofSize+1))
	if err != nil {
		h.writeError(c, "bind", fmt.Errorf("read screenshot: %w", err))
		return nil, nil, false
	}

	return &req, &teamModel.ProofFile{Filename: fh.Filename, Data: data}, true
}

// ListApplications handles GET /api/admin/applications request.
// @Summary List applications, newest first
// @Tags Admin
// @Produce json
// @Param status query string false "pending, verified or rejected"
// @Success 200 {object} map[string][]teamModel.ApplicationResponse
// @Failure 400 {object} apierror.Response
// @Router /api/admin/applications [get].
func (h *Handler) ListApplications(c *gin.Context) {
	apps, err := h.review.ListApplications(c.Request.Context(), auth.IdentityFrom(c), c.Query("status"))
	if err != nil {
		h.writeError(c, "list applications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// ListPending handles GET /api/admin/applications/pending request.
// @Summary List pending applications, oldest first
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string][]teamModel.ApplicationResponse
// @Router /api/admin/applications/pending [get].
func (h *Handler) ListPending(c *gin.Context) {
	apps, err := h.review.ListPending(c.Request.Context(), auth.IdentityFrom(c))
	if err != nil {
		h.writeError(c, "list pending", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// GetApplication handles GET /api/admin/applications/:id request.
// @Summary Application with its review history
// @Tags Admin
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} teamModel.ApplicationDetail
// @Failure 404 {object} apierror.Response
// @Router /api/admin/applications/{id} [get].
func (h *Handler) GetApplication(c *gin.Context) {
	detail, err := h.review.GetApplication(c.Request.Context(), auth.IdentityFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, "get application", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Approve handles POST /api/admin/applications/:id/approve request.
// Approving an already verified application returns 200 with changed=false.
// @Summary Verify payment
// @Tags Admin
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} teamModel.ReviewResult
// @Failure 404 {object} apierror.Response
// @Failure 409 {object} apierror.Response "INVALID_TRANSITION"
// @Router /api/admin/applications/{id}/approve [post].
func (h *Handler) Approve(c *gin.Context) {
	result, err := h.review.Approve(c.Request.Context(), auth.IdentityFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, "approve", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reject handles POST /api/admin/applications/:id/reject request.
// The body is optional; an empty reason uses the default text.
// @Summary Reject payment
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body teamModel.RejectRequest false "Reason"
// @Success 200 {object} teamModel.ReviewResult
// @Failure 404 {object} apierror.Response
// @Failure 409 {object} apierror.Response "INVALID_TRANSITION"
// @Router /api/admin/applications/{id}/reject [post].
func (h *Handler) Reject(c *gin.Context) {
	var req teamModel.RejectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	result, err := h.review.Reject(c.Request.Context(), auth.IdentityFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		h.writeError(c, "reject", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
