// Package model provides domain models and DTOs for legacy single-person registrations.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses of the registrations table. There is no rejected state.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
)

// Registration is one row of the flat registrations table.
type Registration struct {
	ID                   uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	UserID               string     `gorm:"column:user_id;type:varchar(255);not null"`
	FullName             string     `gorm:"column:full_name;type:varchar(255);not null"`
	Email                string     `gorm:"column:email;type:varchar(255);not null"`
	Phone                *string    `gorm:"column:phone;type:varchar(32)"`
	College              *string    `gorm:"column:college;type:varchar(255)"`
	TeamName             *string    `gorm:"column:team_name;type:varchar(255)"`
	Track                string     `gorm:"column:track;type:varchar(64);not null"`
	TransactionID        *string    `gorm:"column:transaction_id;type:varchar(255)"`
	PaymentScreenshotURL *string    `gorm:"column:payment_screenshot_url"`
	PaymentStatus        string     `gorm:"column:payment_status;type:varchar(16);not null;default:pending"`
	CreatedAt            time.Time  `gorm:"column:created_at;not null"`
	PaymentVerifiedAt    *time.Time `gorm:"column:payment_verified_at"`
}

// TableName specifies the table name for GORM.
func (Registration) TableName() string {
	return "registrations"
}

// Status returns the payment status, treating an empty value as pending.
func (r *Registration) Status() string {
	if r.PaymentStatus == "" {
		return StatusPending
	}
	return r.PaymentStatus
}

// RegistrationResponse represents a legacy registration in API responses.
type RegistrationResponse struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	FullName             string     `json:"full_name"`
	Email                string     `json:"email"`
	Phone                *string    `json:"phone"`
	College              *string    `json:"college"`
	TeamName             *string    `json:"team_name"`
	Track                string     `json:"track"`
	TransactionID        *string    `json:"transaction_id"`
	PaymentScreenshotURL *string    `json:"payment_screenshot_url"`
	PaymentStatus        string     `json:"payment_status"`
	CreatedAt            time.Time  `json:"created_at"`
	PaymentVerifiedAt    *time.Time `json:"payment_verified_at"`
}

// NewRegistrationResponse converts a stored registration into its API form.
func NewRegistrationResponse(r *Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:                   r.ID.String(),
		UserID:               r.UserID,
		FullName:             r.FullName,
		Email:                r.Email,
		Phone:                r.Phone,
		College:              r.College,
		TeamName:             r.TeamName,
		Track:                r.Track,
		TransactionID:        r.TransactionID,
		PaymentScreenshotURL: r.PaymentScreenshotURL,
		PaymentStatus:        r.Status(),
		CreatedAt:            r.CreatedAt,
		PaymentVerifiedAt:    r.PaymentVerifiedAt,
	}
}

// ListResponse is returned by the legacy list endpoint.
type ListResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
	Total         int                    `json:"total"`
}

// VerifyResponse is returned by the legacy verify endpoint.
// Changed is false when the registration was already verified.
type VerifyResponse struct {
	Registration     RegistrationResponse `json:"registration"`
	Changed          bool                 `json:"changed"`
	NotificationSent bool                 `json:"notification_sent"`
}
