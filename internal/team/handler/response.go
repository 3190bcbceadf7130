package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festy23/hacksavvy/internal/auth"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
	"github.com/festy23/hacksavvy/pkg/apierror"
)

func fieldErrors(fields []teamModel.FieldError) []apierror.Field {
	out := make([]apierror.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, apierror.Field{Field: f.Field, Message: f.Message})
	}
	return out
}

// writeError maps a service error to its HTTP status and code.
// Unknown errors are logged by the caller and reported as INTERNAL_ERROR.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	var verr *teamModel.ValidationError
	switch {
	case errors.As(err, &verr):
		apierror.Write(c, http.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", fieldErrors(verr.Fields)...)
	case errors.Is(err, teamModel.ErrUnauthorized):
		if auth.IdentityFrom(c) == nil {
			apierror.Write(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		apierror.Write(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
	case errors.Is(err, teamModel.ErrDuplicateTeamName):
		apierror.Write(c, http.StatusConflict, "DUPLICATE_TEAM_NAME", "team name is already taken")
	case errors.Is(err, teamModel.ErrAlreadyRegistered):
		apierror.Write(c, http.StatusConflict, "ALREADY_REGISTERED", "you have already registered a team")
	case errors.Is(err, teamModel.ErrInvalidTransition):
		apierror.Write(c, http.StatusConflict, "INVALID_TRANSITION", "application status does not allow this action")
	case errors.Is(err, teamModel.ErrResubmissionDisabled):
		apierror.Write(c, http.StatusConflict, "RESUBMISSION_DISABLED", "resubmission is disabled")
	case errors.Is(err, teamModel.ErrApplicationNotFound):
		apierror.Write(c, http.StatusNotFound, "NOT_FOUND", "application not found")
	case errors.Is(err, teamModel.ErrUpload):
		h.logger.Errorw("upload error", "operation", op, "error", err)
		apierror.Write(c, http.StatusBadGateway, "UPLOAD_ERROR", "payment screenshot upload failed, please try again")
	default:
		h.logger.Errorw("request failed", "operation", op, "error", err)
		apierror.Write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
