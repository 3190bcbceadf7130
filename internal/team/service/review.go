package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/auth"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
	"github.com/festy23/hacksavvy/internal/team/repository"
)

// ReviewService is the admin console's view of applications.
// Every operation re-checks the actor against the admin policy.
type ReviewService interface {
	// ListPending returns pending applications, oldest first.
	ListPending(ctx context.Context, actor *auth.Identity) ([]teamModel.ApplicationResponse, error)

	// ListApplications returns all applications, newest first, optionally filtered by status.
	ListApplications(ctx context.Context, actor *auth.Identity, status string) ([]teamModel.ApplicationResponse, error)

	// GetApplication returns one application with its review history.
	GetApplication(ctx context.Context, actor *auth.Identity, id string) (*teamModel.ApplicationDetail, error)

	// Approve moves a pending application to verified and notifies the leader.
	// Approving an already verified application succeeds without a second notification.
	Approve(ctx context.Context, actor *auth.Identity, id string) (*teamModel.ReviewResult, error)

	// Reject moves a pending application to rejected and notifies the leader with the reason.
	// Rejecting an already rejected application succeeds without a second notification.
	Reject(ctx context.Context, actor *auth.Identity, id, reason string) (*teamModel.ReviewResult, error)
}

type reviewService struct {
	repo     repository.Repository
	db       *gorm.DB
	policy   auth.Policy
	notifier Notifier
	logger   *zap.SugaredLogger
	now      Clock
}

// NewReviewService creates a new review service instance.
func NewReviewService(
	repo repository.Repository,
	db *gorm.DB,
	policy auth.Policy,
	notifier Notifier,
	logger *zap.SugaredLogger,
) ReviewService {
	return &reviewService{
		repo:     repo,
		db:       db,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
		now:      utcNow,
	}
}

func (s *reviewService) authorize(actor *auth.Identity) error {
	if actor == nil {
		return teamModel.ErrUnauthorized
	}
	if !s.policy.IsAdmin(actor.Email) {
		s.logger.Warnw("non-admin attempted review operation", "user_id", actor.UserID)
		return fmt.Errorf("%w: admin access required", teamModel.ErrUnauthorized)
	}
	return nil
}

// ListPending returns pending applications, oldest first.
func (s *reviewService) ListPending(ctx context.Context, actor *auth.Identity) (apps []teamModel.ApplicationResponse, err error) {
	defer recoverPanic(s.logger, "list pending", &err)

	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	teams, err := s.repo.ListByStatus(ctx, teamModel.StatusPending)
	if err != nil {
		return nil, persistenceError("list pending applications", err)
	}
	return teamModel.NewApplicationList(teams), nil
}

// ListApplications returns all applications, newest first.
func (s *reviewService) ListApplications(
	ctx context.Context,
	actor *auth.Identity,
	status string,
) (apps []teamModel.ApplicationResponse, err error) {
	defer recoverPanic(s.logger, "list applications", &err)

	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	filter := teamModel.PaymentStatus(status)
	if status != "" && !filter.Valid() {
		return nil, teamModel.NewValidationError("status", "must be one of: pending, verified, rejected")
	}
	teams, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, persistenceError("list applications", err)
	}
	return teamModel.NewApplicationList(teams), nil
}

// GetApplication returns one application with its review history.
func (s *reviewService) GetApplication(
	ctx context.Context,
	actor *auth.Identity,
	id string,
) (detail *teamModel.ApplicationDetail, err error) {
	defer recoverPanic(s.logger, "get application", &err)

	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	appID, err := parseApplicationID(id)
	if err != nil {
		return nil, err
	}
	team, err := s.repo.GetByID(ctx, appID)
	if err != nil {
		return nil, persistenceError("get application", err)
	}
	events, err := s.repo.ListReviewEvents(ctx, appID)
	if err != nil {
		return nil, persistenceError("list review events", err)
	}
	out := teamModel.NewApplicationDetail(team, events)
	return &out, nil
}

// Approve moves a pending application to verified.
func (s *reviewService) Approve(ctx context.Context, actor *auth.Identity, id string) (result *teamModel.ReviewResult, err error) {
	defer recoverPanic(s.logger, "approve", &err)

	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	team, changed, err := s.transition(ctx, actor, id, teamModel.StatusVerified, nil)
	if err != nil {
		return nil, err
	}

	result = &teamModel.ReviewResult{Application: teamModel.NewApplicationResponse(team), Changed: changed}
	if changed {
		if notifyErr := s.notifier.RegistrationConfirmed(ctx, teamSummary(team), leaderRecipient(team)); notifyErr != nil {
			s.logNotifyFailure("confirmation", team, notifyErr)
		} else {
			result.NotificationSent = true
		}
	}
	return result, nil
}

// Reject moves a pending application to rejected.
func (s *reviewService) Reject(ctx context.Context, actor *auth.Identity, id, reason string) (result *teamModel.ReviewResult, err error) {
	defer recoverPanic(s.logger, "reject", &err)

	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	reason, err = teamModel.NormalizeRejectionReason(reason)
	if err != nil {
		return nil, err
	}
	team, changed, err := s.transition(ctx, actor, id, teamModel.StatusRejected, &reason)
	if err != nil {
		return nil, err
	}

	result = &teamModel.ReviewResult{Application: teamModel.NewApplicationResponse(team), Changed: changed}
	if changed {
		if notifyErr := s.notifier.PaymentRejected(ctx, teamSummary(team), leaderRecipient(team), reason); notifyErr != nil {
			s.logNotifyFailure("rejection", team, notifyErr)
		} else {
			result.NotificationSent = true
		}
	}
	return result, nil
}

// transition applies pending -> to as a compare-and-swap and records the
// review event in the same transaction. When the swap misses, the current
// row decides: already in target status is an idempotent success, anything
// else is an invalid transition.
func (s *reviewService) transition(
	ctx context.Context,
	actor *auth.Identity,
	id string,
	to teamModel.PaymentStatus,
	reason *string,
) (*teamModel.Team, bool, error) {
	appID, err := parseApplicationID(id)
	if err != nil {
		return nil, false, err
	}

	var (
		team    *teamModel.Team
		changed bool
	)
	now := s.now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		ok, txErr := txRepo.TransitionStatus(ctx, appID, teamModel.StatusPending, to, now)
		if txErr != nil {
			return txErr
		}

		team, txErr = txRepo.GetByID(ctx, appID)
		if txErr != nil {
			return txErr
		}

		if !ok {
			if team.PaymentStatus == to {
				return nil
			}
			return fmt.Errorf("%w: application is %s", teamModel.ErrInvalidTransition, team.PaymentStatus)
		}

		changed = true
		return txRepo.RecordReviewEvent(ctx, &teamModel.ReviewEvent{
			TeamID:     appID,
			ActorEmail: actor.Email,
			FromStatus: teamModel.StatusPending,
			ToStatus:   to,
			Reason:     reason,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, false, persistenceError("transition application", err)
	}

	if changed {
		s.logger.Infow("application reviewed",
			"application_id", appID,
			"status", to,
			"actor", actor.Email,
		)
	} else {
		s.logger.Infow("review already applied", "application_id", appID, "status", to)
	}
	return team, changed, nil
}

func (s *reviewService) logNotifyFailure(kind string, team *teamModel.Team, err error) {
	s.logger.Warnw("review notification failed",
		"kind", kind,
		"application_id", team.ID,
		"error", fmt.Errorf("%w: %v", teamModel.ErrMail, err),
	)
}

func parseApplicationID(id string) (uuid.UUID, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", teamModel.ErrApplicationNotFound, id)
	}
	return appID, nil
}
