package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/statistics/model"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&teamModel.Team{}))
	return db
}

func setupRouter(t *testing.T, caller *auth.Identity) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	policy := auth.NewPolicy([]string{"admin@example.com"})

	r.Use(func(c *gin.Context) {
		if caller != nil {
			auth.WithIdentity(c, caller)
		}
		c.Next()
	})
	admin := r.Group("/api/admin", auth.RequireAdmin(policy))
	RegisterRoutes(admin, setupTestDB(t), policy, zap.NewNop().Sugar())
	return r
}

func TestRegisterRoutes(t *testing.T) {
	t.Run("admin gets empty statistics", func(t *testing.T) {
		router := setupRouter(t, &auth.Identity{UserID: "a", Email: "admin@example.com"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp model.SummaryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Statistics.Total)
		assert.Empty(t, resp.Statistics.Tracks)
	})

	t.Run("participant is forbidden", func(t *testing.T) {
		router := setupRouter(t, &auth.Identity{UserID: "u", Email: "alice@example.com"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		router := setupRouter(t, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
