// Package repository provides data access layer for the team registration module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	teamModel "github.com/festy23/hacksavvy/internal/team/model"
)

// Unique constraint names declared by the teams migration.
const (
	constraintLeaderUnique   = "teams_leader_user_id_key"
	constraintTeamNameUnique = "teams_team_name_key"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// ResubmitFields are the columns a resubmission overwrites.
type ResubmitFields struct {
	TeamName             string
	Track                string
	MembersData          []teamModel.Member
	TransactionID        string
	PaymentScreenshotURL string
	AccommodationNeeded  bool
}

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a new application.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds an application by id.
	GetByID(ctx context.Context, id uuid.UUID) (*teamModel.Team, error)

	// GetByLeader finds the application owned by a leader.
	GetByLeader(ctx context.Context, leaderUserID string) (*teamModel.Team, error)

	// ListByStatus returns applications with the given status, oldest first.
	ListByStatus(ctx context.Context, status teamModel.PaymentStatus) ([]teamModel.Team, error)

	// ListAll returns every application, newest first. An empty status means no filter.
	ListAll(ctx context.Context, status teamModel.PaymentStatus) ([]teamModel.Team, error)

	// TransitionStatus moves an application from one status to another.
	// It reports false when the row is missing or not in the expected status.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to teamModel.PaymentStatus, at time.Time) (bool, error)

	// Resubmit overwrites a rejected application and returns it to pending.
	// It reports false when the row is missing or no longer rejected.
	Resubmit(ctx context.Context, id uuid.UUID, fields ResubmitFields, at time.Time) (bool, error)

	// RecordReviewEvent appends an audit entry.
	RecordReviewEvent(ctx context.Context, event *teamModel.ReviewEvent) error

	// ListReviewEvents returns the audit trail of an application, oldest first.
	ListReviewEvents(ctx context.Context, teamID uuid.UUID) ([]teamModel.ReviewEvent, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new application.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return r.mapWriteError(err)
	}
	return nil
}

// GetByID finds an application by id.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrApplicationNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByLeader finds the application owned by a leader.
func (r *repository) GetByLeader(ctx context.Context, leaderUserID string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("leader_user_id = ?", leaderUserID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrApplicationNotFound
		}
		return nil, err
	}
	return &team, nil
}

// ListByStatus returns applications with the given status, oldest first.
func (r *repository) ListByStatus(ctx context.Context, status teamModel.PaymentStatus) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", status).
		Order("created_at ASC").
		Order("id ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListAll returns every application, newest first.
func (r *repository) ListAll(ctx context.Context, status teamModel.PaymentStatus) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id ASC")
	if status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if err := q.Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// TransitionStatus is a compare-and-swap on payment_status.
// payment_verified_at is set when moving to verified and cleared otherwise.
func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to teamModel.PaymentStatus, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"payment_status": to,
		"updated_at":     at,
	}
	if to == teamModel.StatusVerified {
		updates["payment_verified_at"] = at
	} else {
		updates["payment_verified_at"] = nil
	}

	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ? AND payment_status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Resubmit overwrites a rejected application and returns it to pending.
func (r *repository) Resubmit(ctx context.Context, id uuid.UUID, fields ResubmitFields, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ? AND payment_status = ?", id, teamModel.StatusRejected).
		Updates(map[string]interface{}{
			"team_name":              fields.TeamName,
			"track":                  fields.Track,
			"members_data":           datatypes.JSONSlice[teamModel.Member](fields.MembersData),
			"transaction_id":         fields.TransactionID,
			"payment_screenshot_url": fields.PaymentScreenshotURL,
			"accommodation_needed":   fields.AccommodationNeeded,
			"payment_status":         teamModel.StatusPending,
			"payment_verified_at":    nil,
			"updated_at":             at,
		})
	if result.Error != nil {
		return false, r.mapWriteError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// RecordReviewEvent appends an audit entry.
func (r *repository) RecordReviewEvent(ctx context.Context, event *teamModel.ReviewEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListReviewEvents returns the audit trail of an application, oldest first.
func (r *repository) ListReviewEvents(ctx context.Context, teamID uuid.UUID) ([]teamModel.ReviewEvent, error) {
	var events []teamModel.ReviewEvent
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// mapWriteError converts unique violations into domain errors.
func (r *repository) mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		r.logger.Debugw("unique constraint violated", "constraint", pgErr.ConstraintName)
		switch pgErr.ConstraintName {
		case constraintLeaderUnique:
			return teamModel.ErrAlreadyRegistered
		case constraintTeamNameUnique:
			return teamModel.ErrDuplicateTeamName
		}
	}
	if isDuplicateError(err) {
		if strings.Contains(err.Error(), "leader_user_id") {
			return teamModel.ErrAlreadyRegistered
		}
		return teamModel.ErrDuplicateTeamName
	}
	return err
}

// isDuplicateError checks if error is a duplicate key error.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
