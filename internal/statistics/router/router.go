// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/statistics/handler"
	"github.com/festy23/hacksavvy/internal/statistics/repository"
	"github.com/festy23/hacksavvy/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes on an admin-gated group.
func RegisterRoutes(admin gin.IRouter, db *gorm.DB, policy auth.Policy, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, policy, logger)
	h := handler.New(svc, logger)

	admin.GET("/stats", h.GetSummary)
}
