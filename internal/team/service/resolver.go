package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/auth"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
	"github.com/festy23/hacksavvy/internal/team/repository"
)

// StateResolver derives the caller's application state. It never mutates.
type StateResolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (*teamModel.ResolveResult, error)
}

type stateResolver struct {
	repo   repository.Repository
	policy auth.Policy
	logger *zap.SugaredLogger
}

// NewStateResolver creates a new state resolver instance.
func NewStateResolver(repo repository.Repository, policy auth.Policy, logger *zap.SugaredLogger) StateResolver {
	return &stateResolver{repo: repo, policy: policy, logger: logger}
}

// Resolve returns GUEST for anonymous callers, NEW when the caller owns no
// application and the application's status otherwise.
func (r *stateResolver) Resolve(ctx context.Context, identity *auth.Identity) (result *teamModel.ResolveResult, err error) {
	defer recoverPanic(r.logger, "resolve", &err)

	if identity == nil {
		return &teamModel.ResolveResult{State: teamModel.StateGuest}, nil
	}

	result = &teamModel.ResolveResult{
		Authenticated: true,
		IsAdmin:       r.policy.IsAdmin(identity.Email),
		User: &teamModel.Identity{
			ID:    identity.UserID,
			Email: identity.Email,
			Name:  identity.Name,
		},
		State: teamModel.StateNew,
	}

	team, err := r.repo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, teamModel.ErrApplicationNotFound) {
			return result, nil
		}
		return nil, persistenceError("resolve application", err)
	}

	app := teamModel.NewApplicationResponse(team)
	result.Application = &app
	result.State = app.State
	return result, nil
}
