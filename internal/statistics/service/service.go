// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/statistics/model"
	"github.com/festy23/hacksavvy/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// Summary returns the admin dashboard counters.
	Summary(ctx context.Context, actor *auth.Identity) (*model.SummaryResponse, error)
}

type service struct {
	repo   repository.Repository
	policy auth.Policy
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, policy auth.Policy, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

// Summary returns the admin dashboard counters.
func (s *service) Summary(ctx context.Context, actor *auth.Identity) (*model.SummaryResponse, error) {
	if !s.policy.IsAdminIdentity(actor) {
		return nil, model.ErrForbidden
	}

	stats, err := s.repo.GetApplicationStatistics(ctx)
	if err != nil {
		s.logger.Errorw("Summary failed", "stage", "counters", "error", err)
		return nil, err
	}

	tracks, err := s.repo.GetTrackCounts(ctx)
	if err != nil {
		s.logger.Errorw("Summary failed", "stage", "tracks", "error", err)
		return nil, err
	}
	if tracks == nil {
		tracks = []model.TrackCount{}
	}
	stats.Tracks = tracks

	sizes, err := s.repo.GetMemberSizes(ctx)
	if err != nil {
		s.logger.Errorw("Summary failed", "stage", "participants", "error", err)
		return nil, err
	}
	for _, n := range sizes {
		stats.Participants += n
	}

	s.logger.Debugw("Summary completed", "total", stats.Total, "pending", stats.Pending)
	return &model.SummaryResponse{Statistics: *stats}, nil
}
