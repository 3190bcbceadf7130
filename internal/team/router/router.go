// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/config"
	"github.com/festy23/hacksavvy/internal/storage"
	"github.com/festy23/hacksavvy/internal/team/handler"
	"github.com/festy23/hacksavvy/internal/team/repository"
	"github.com/festy23/hacksavvy/internal/team/service"
)

// Deps are the collaborators of the team module.
type Deps struct {
	DB           *gorm.DB
	Store        storage.ObjectStore
	Notifier     service.Notifier
	Policy       auth.Policy
	Storage      config.StorageConfig
	Registration config.RegistrationConfig
	Logger       *zap.SugaredLogger
}

// RegisterRoutes registers team module routes. api is the /api group with
// identity attached; admin is the admin-gated /api/admin group.
func RegisterRoutes(api gin.IRouter, admin gin.IRouter, deps Deps) {
	repo := repository.New(deps.DB, deps.Logger)
	registration := service.NewRegistrationService(repo, deps.DB, deps.Store, deps.Notifier, deps.Storage, deps.Registration, deps.Logger)
	resolver := service.NewStateResolver(repo, deps.Policy, deps.Logger)
	review := service.NewReviewService(repo, deps.DB, deps.Policy, deps.Notifier, deps.Logger)
	h := handler.New(registration, resolver, review, deps.Storage.MaxProofSize, deps.Logger)

	api.GET("/register/options", h.Options)
	api.GET("/me", h.Me)

	participant := api.Group("", auth.RequireUser())
	participant.POST("/register", h.Submit)
	participant.PUT("/register", h.Resubmit)

	admin.GET("/applications", h.ListApplications)
	admin.GET("/applications/pending", h.ListPending)
	admin.GET("/applications/:id", h.GetApplication)
	admin.POST("/applications/:id/approve", h.Approve)
	admin.POST("/applications/:id/reject", h.Reject)
}
