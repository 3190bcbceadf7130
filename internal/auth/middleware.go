package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festy23/hacksavvy/pkg/apierror"
)

const identityKey = "auth.identity"

// TokenVerifier turns a raw token into an identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// Authenticate attaches the caller's identity to the context when a valid
// token is present, either as a Bearer header or as the session cookie.
// Requests without a valid token continue anonymously.
func Authenticate(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie
			}
		}
		if token != "" {
			if id, err := verifier.Verify(token); err == nil {
				c.Set(identityKey, id)
				c.Set("user_id", id.UserID)
			}
		}
		c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) == nil {
			apierror.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id == nil {
			apierror.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		if !policy.IsAdmin(id.Email) {
			apierror.Abort(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity or nil.
func IdentityFrom(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}

// WithIdentity stores id on the context. Intended for tests of downstream handlers.
func WithIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
	if id != nil {
		c.Set("user_id", id.UserID)
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
