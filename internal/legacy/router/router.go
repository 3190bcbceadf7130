// Package router provides legacy registration routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/legacy/handler"
	"github.com/festy23/hacksavvy/internal/legacy/repository"
	"github.com/festy23/hacksavvy/internal/legacy/service"
)

// RegisterRoutes registers legacy registration routes on an admin-gated group.
func RegisterRoutes(admin gin.IRouter, db *gorm.DB, policy auth.Policy, notifier service.Notifier, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, policy, notifier, logger)
	h := handler.New(svc, logger)

	legacy := admin.Group("/legacy")
	legacy.GET("/registrations", h.List)
	legacy.POST("/registrations/:id/verify", h.Verify)
}
