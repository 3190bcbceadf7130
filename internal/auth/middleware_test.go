package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(v *Verifier, policy Policy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(v, "hs_session"))

	whoami := func(c *gin.Context) {
		id := IdentityFrom(c)
		if id == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.UserID)
	}
	r.GET("/public", whoami)
	r.GET("/user", RequireUser(), whoami)
	r.GET("/admin", RequireAdmin(policy), whoami)

	h := NewHandler(v, policy, testAuthConfig(), zap.NewNop().Sugar())
	RegisterRoutes(r, h)
	return r
}

func doRequest(r http.Handler, method, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	v := NewVerifier(testAuthConfig())
	r := setupRouter(v, NewPolicy([]string{"admin@example.com"}))

	userToken, err := v.Issue(Identity{UserID: "user-1", Email: "alice@example.com"})
	require.NoError(t, err)
	adminToken, err := v.Issue(Identity{UserID: "admin-1", Email: "Admin@Example.com"})
	require.NoError(t, err)

	bearer := func(token string) func(*http.Request) {
		return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }
	}
	cookie := func(token string) func(*http.Request) {
		return func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "hs_session", Value: token}) }
	}

	tests := []struct {
		name       string
		path       string
		mutate     func(*http.Request)
		wantStatus int
		wantBody   string
	}{
		{name: "public anonymous", path: "/public", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "public invalid token stays anonymous", path: "/public", mutate: bearer("junk"), wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "public with bearer", path: "/public", mutate: bearer(userToken), wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "public with cookie", path: "/public", mutate: cookie(userToken), wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "user anonymous", path: "/user", wantStatus: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "user authenticated", path: "/user", mutate: cookie(userToken), wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "admin anonymous", path: "/admin", wantStatus: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "admin as user", path: "/admin", mutate: bearer(userToken), wantStatus: http.StatusForbidden, wantBody: "FORBIDDEN"},
		{name: "admin as admin", path: "/admin", mutate: bearer(adminToken), wantStatus: http.StatusOK, wantBody: "admin-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tt.path, tt.mutate)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Callback(t *testing.T) {
	v := NewVerifier(testAuthConfig())
	r := setupRouter(v, NewPolicy([]string{"admin@example.com"}))

	userToken, err := v.Issue(Identity{UserID: "user-1", Email: "alice@example.com"})
	require.NoError(t, err)
	adminToken, err := v.Issue(Identity{UserID: "admin-1", Email: "admin@example.com"})
	require.NoError(t, err)

	t.Run("participant lands on dashboard", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/auth/callback?access_token="+userToken, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "hs_session", cookies[0].Name)
		assert.Equal(t, userToken, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("admin lands on console", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/auth/callback?access_token="+adminToken, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	})

	t.Run("invalid token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/auth/callback?access_token=bogus", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?error=AuthFailed", w.Header().Get("Location"))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/auth/callback", nil)
		assert.Equal(t, "/login?error=AuthFailed", w.Header().Get("Location"))
	})
}

func TestHandler_Logout(t *testing.T) {
	r := setupRouter(NewVerifier(testAuthConfig()), Policy{})

	w := doRequest(r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "hs_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
