// Package service provides the registration, state resolution and admin
// review business logic of the team module.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/mail"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
)

// Notifier sends lifecycle notifications. Errors are logged, never returned to callers.
type Notifier interface {
	ApplicationReceived(ctx context.Context, team mail.TeamSummary, members []mail.Recipient) error
	RegistrationConfirmed(ctx context.Context, team mail.TeamSummary, leader mail.Recipient) error
	PaymentRejected(ctx context.Context, team mail.TeamSummary, leader mail.Recipient, reason string) error
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// recoverPanic converts a panic in a service operation into a persistence error.
// It must be deferred with a pointer to the operation's named error result.
func recoverPanic(logger *zap.SugaredLogger, op string, errp *error) {
	if r := recover(); r != nil {
		logger.Errorw("panic recovered in service operation", "operation", op, "panic", r)
		*errp = fmt.Errorf("%w: panic in %s: %v", teamModel.ErrPersistence, op, r)
	}
}

// domainErrors pass through persistence wrapping unchanged.
var domainErrors = []error{
	teamModel.ErrUnauthorized,
	teamModel.ErrValidation,
	teamModel.ErrDuplicateTeamName,
	teamModel.ErrAlreadyRegistered,
	teamModel.ErrUpload,
	teamModel.ErrPersistence,
	teamModel.ErrApplicationNotFound,
	teamModel.ErrInvalidTransition,
	teamModel.ErrResubmissionDisabled,
}

// persistenceError wraps store failures that are not already domain errors.
func persistenceError(op string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", teamModel.ErrPersistence, op, err)
}

func teamSummary(t *teamModel.Team) mail.TeamSummary {
	return mail.TeamSummary{Name: t.TeamName, Track: t.Track, TransactionID: t.TransactionID}
}

func recipients(members []teamModel.Member) []mail.Recipient {
	out := make([]mail.Recipient, 0, len(members))
	for _, m := range members {
		out = append(out, mail.Recipient{Name: m.Name, Email: m.Email})
	}
	return out
}

func leaderRecipient(t *teamModel.Team) mail.Recipient {
	l := t.Leader()
	return mail.Recipient{Name: l.Name, Email: l.Email}
}
