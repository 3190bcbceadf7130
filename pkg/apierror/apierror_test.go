package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		fields   []Field
		wantJSON string
	}{
		{
			name:     "without fields",
			wantJSON: `{"error":{"code":"NOT_FOUND","message":"team not found"}}`,
		},
		{
			name:     "with fields",
			fields:   []Field{{Field: "name", Message: "is required"}},
			wantJSON: `{"error":{"code":"NOT_FOUND","message":"team not found","fields":[{"field":"name","message":"is required"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Write(c, http.StatusNotFound, "NOT_FOUND", "team not found", tt.fields...)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, tt.wantJSON, w.Body.String())
		})
	}
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/", func(c *gin.Context) {
		Abort(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	assert.Empty(t, resp.Error.Fields)
}
