// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetApplicationStatistics returns status and accommodation counters.
	GetApplicationStatistics(ctx context.Context) (*model.ApplicationStatistics, error)

	// GetTrackCounts returns the number of applications per track, largest first.
	GetTrackCounts(ctx context.Context) ([]model.TrackCount, error)

	// GetMemberSizes returns the team size of every application.
	GetMemberSizes(ctx context.Context) ([]int, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetApplicationStatistics returns status and accommodation counters.
func (r *repository) GetApplicationStatistics(ctx context.Context) (*model.ApplicationStatistics, error) {
	var result struct {
		Total         int64 `gorm:"column:total"`
		Pending       int64 `gorm:"column:pending"`
		Verified      int64 `gorm:"column:verified"`
		Rejected      int64 `gorm:"column:rejected"`
		Accommodation int64 `gorm:"column:accommodation"`
	}

	err := r.db.WithContext(ctx).
		Table("teams").
		Select(`
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN payment_status = 'pending' THEN 1 ELSE 0 END), 0) as pending,
			COALESCE(SUM(CASE WHEN payment_status = 'verified' THEN 1 ELSE 0 END), 0) as verified,
			COALESCE(SUM(CASE WHEN payment_status = 'rejected' THEN 1 ELSE 0 END), 0) as rejected,
			COALESCE(SUM(CASE WHEN accommodation_needed THEN 1 ELSE 0 END), 0) as accommodation
		`).
		Scan(&result).Error
	if err != nil {
		r.logger.Errorw("GetApplicationStatistics database error", "error", err)
		return nil, err
	}

	return &model.ApplicationStatistics{
		Total:                 int(result.Total),
		Pending:               int(result.Pending),
		Verified:              int(result.Verified),
		Rejected:              int(result.Rejected),
		AccommodationRequests: int(result.Accommodation),
	}, nil
}

// GetTrackCounts returns the number of applications per track, largest first.
func (r *repository) GetTrackCounts(ctx context.Context) ([]model.TrackCount, error) {
	var counts []model.TrackCount

	err := r.db.WithContext(ctx).
		Table("teams").
		Select("track, COUNT(*) as count").
		Group("track").
		Order("count DESC, track ASC").
		Scan(&counts).Error
	if err != nil {
		r.logger.Errorw("GetTrackCounts database error", "error", err)
		return nil, err
	}

	if counts == nil {
		counts = []model.TrackCount{}
	}
	return counts, nil
}

// GetMemberSizes returns the team size of every application.
// members_data is decoded in Go so the query stays portable across drivers.
func (r *repository) GetMemberSizes(ctx context.Context) ([]int, error) {
	var rows []struct {
		MembersData []byte `gorm:"column:members_data"`
	}

	err := r.db.WithContext(ctx).
		Table("teams").
		Select("members_data").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("GetMemberSizes database error", "error", err)
		return nil, err
	}

	sizes := make([]int, 0, len(rows))
	for _, row := range rows {
		n, err := countJSONArray(row.MembersData)
		if err != nil {
			r.logger.Warnw("skipping malformed members_data", "error", err)
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func countJSONArray(raw []byte) (int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("decode members_data: %w", err)
	}
	return len(items), nil
}
