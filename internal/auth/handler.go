package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/config"
)

const (
	adminLanding    = "/admin/dashboard"
	userLanding     = "/dashboard"
	loginFailedPath = "/login?error=AuthFailed"
)

// Handler serves the sign-in callback and logout endpoints.
type Handler struct {
	verifier TokenVerifier
	policy   Policy
	cfg      config.AuthConfig
	logger   *zap.SugaredLogger
}

// NewHandler creates a new auth handler instance.
func NewHandler(verifier TokenVerifier, policy Policy, cfg config.AuthConfig, logger *zap.SugaredLogger) *Handler {
	return &Handler{verifier: verifier, policy: policy, cfg: cfg, logger: logger}
}

// Callback handles GET /auth/callback.
// It stores the provider token as the session cookie and sends admins to
// the review console and everyone else to the participant dashboard.
func (h *Handler) Callback(c *gin.Context) {
	token := c.Query("access_token")
	id, err := h.verifier.Verify(token)
	if err != nil {
		h.logger.Warnw("sign-in callback rejected", "error", err, "client_ip", c.ClientIP())
		c.Redirect(http.StatusFound, loginFailedPath)
		return
	}

	h.setSession(c, token, int(h.cfg.SessionTTL.Seconds()))

	next := userLanding
	if h.policy.IsAdmin(id.Email) {
		next = adminLanding
	}
	h.logger.Infow("user signed in", "user_id", id.UserID, "admin", next == adminLanding)
	c.Redirect(http.StatusFound, next)
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *Handler) setSession(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, value, maxAge, "/", "", h.cfg.CookieSecure, true)
}

// RegisterRoutes registers the auth endpoints.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.GET("/auth/callback", h.Callback)
	r.POST("/auth/logout", h.Logout)
}
