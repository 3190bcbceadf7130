// Package repository provides data access layer for legacy registrations.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/legacy/model"
)

// Repository defines the interface for legacy registration data access operations.
type Repository interface {
	// List returns every registration, newest first.
	List(ctx context.Context) ([]model.Registration, error)

	// GetByID finds a registration by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)

	// MarkVerified moves a pending registration to verified.
	// It reports false when the row is missing or not pending.
	MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new legacy registration repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// List returns every registration, newest first.
func (r *repository) List(ctx context.Context) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Find(&regs).Error
	if err != nil {
		r.logger.Errorw("List registrations database error", "error", err)
		return nil, err
	}
	return regs, nil
}

// GetByID finds a registration by id.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// MarkVerified is a compare-and-swap from pending (or unset) to verified.
func (r *repository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("id = ? AND (payment_status = ? OR payment_status = '')", id, model.StatusPending).
		Updates(map[string]interface{}{
			"payment_status":      model.StatusVerified,
			"payment_verified_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
