// Package service provides the admin operations over legacy registrations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/legacy/model"
	"github.com/festy23/hacksavvy/internal/legacy/repository"
	"github.com/festy23/hacksavvy/internal/mail"
)

// Notifier sends the seat reservation email.
type Notifier interface {
	SeatReserved(ctx context.Context, team mail.TeamSummary, registrant mail.Recipient) error
}

// Service defines the interface for legacy registration operations.
// Every operation re-checks the actor against the admin policy.
type Service interface {
	// List returns every registration, newest first.
	List(ctx context.Context, actor *auth.Identity) (*model.ListResponse, error)

	// Verify marks a registration's payment as verified and notifies the registrant.
	// Verifying an already verified registration succeeds without a second email.
	Verify(ctx context.Context, actor *auth.Identity, id string) (*model.VerifyResponse, error)
}

type service struct {
	repo     repository.Repository
	policy   auth.Policy
	notifier Notifier
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// New creates a new legacy registration service instance.
func New(repo repository.Repository, policy auth.Policy, notifier Notifier, logger *zap.SugaredLogger) Service {
	return &service{
		repo:     repo,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// recoverPanic turns a panic in a service operation into ErrPersistence.
func recoverPanic(logger *zap.SugaredLogger, op string, errp *error) {
	if r := recover(); r != nil {
		logger.Errorw("panic recovered in service operation", "operation", op, "panic", r)
		*errp = fmt.Errorf("%w: panic in %s: %v", model.ErrPersistence, op, r)
	}
}

// List returns every registration, newest first.
func (s *service) List(ctx context.Context, actor *auth.Identity) (resp *model.ListResponse, err error) {
	defer recoverPanic(s.logger, "list registrations", &err)

	if !s.policy.IsAdminIdentity(actor) {
		return nil, model.ErrForbidden
	}

	regs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list registrations: %v", model.ErrPersistence, err)
	}

	out := make([]model.RegistrationResponse, 0, len(regs))
	for i := range regs {
		out = append(out, model.NewRegistrationResponse(&regs[i]))
	}
	return &model.ListResponse{Registrations: out, Total: len(out)}, nil
}

// Verify marks a registration's payment as verified.
func (s *service) Verify(ctx context.Context, actor *auth.Identity, id string) (resp *model.VerifyResponse, err error) {
	defer recoverPanic(s.logger, "verify registration", &err)

	if !s.policy.IsAdminIdentity(actor) {
		return nil, model.ErrForbidden
	}

	regID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrRegistrationNotFound, id)
	}

	changed, err := s.repo.MarkVerified(ctx, regID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: verify registration: %v", model.ErrPersistence, err)
	}

	reg, err := s.repo.GetByID(ctx, regID)
	if err != nil {
		if errors.Is(err, model.ErrRegistrationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reload registration: %v", model.ErrPersistence, err)
	}

	resp = &model.VerifyResponse{Registration: model.NewRegistrationResponse(reg), Changed: changed}
	if !changed {
		s.logger.Infow("registration already verified", "registration_id", regID)
		return resp, nil
	}

	s.logger.Infow("registration verified", "registration_id", regID, "actor", actor.Email)

	team := mail.TeamSummary{Track: reg.Track}
	if reg.TeamName != nil {
		team.Name = *reg.TeamName
	}
	if err := s.notifier.SeatReserved(ctx, team, mail.Recipient{Name: reg.FullName, Email: reg.Email}); err != nil {
		s.logger.Warnw("seat reserved notification failed", "registration_id", regID, "error", err)
	} else {
		resp.NotificationSent = true
	}
	return resp, nil
}
