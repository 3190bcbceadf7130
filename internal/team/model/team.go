// Package model provides domain models and DTOs for the team registration module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentStatus is the stored lifecycle field of an application.
type PaymentStatus string

// Payment statuses.
const (
	StatusPending  PaymentStatus = "pending"
	StatusVerified PaymentStatus = "verified"
	StatusRejected PaymentStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// State is the application state derived for a visitor.
type State string

// Application states. NEW and GUEST are never stored.
const (
	StateGuest    State = "GUEST"
	StateNew      State = "NEW"
	StatePending  State = "PENDING"
	StateVerified State = "VERIFIED"
	StateRejected State = "REJECTED"
)

// StateFor maps a stored status to its state.
func StateFor(s PaymentStatus) State {
	switch s {
	case StatusVerified:
		return StateVerified
	case StatusRejected:
		return StateRejected
	default:
		return StatePending
	}
}

// Member is one entry of members_data. The leader is always first.
type Member struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	College        string `json:"college"`
	RollNo         string `json:"roll_no,omitempty"`
	DietPreference string `json:"diet_preference"`
}

// Team is one registration application. Matches the teams table schema.
type Team struct {
	ID                   uuid.UUID                   `gorm:"primaryKey;column:id;type:uuid"`
	LeaderUserID         string                      `gorm:"column:leader_user_id;type:varchar(255);not null;uniqueIndex:teams_leader_user_id_key"`
	TeamName             string                      `gorm:"column:team_name;type:varchar(255);not null;uniqueIndex:teams_team_name_key"`
	Track                string                      `gorm:"column:track;type:varchar(64);not null"`
	MembersData          datatypes.JSONSlice[Member] `gorm:"column:members_data;not null"`
	TransactionID        string                      `gorm:"column:transaction_id;type:varchar(255);not null"`
	PaymentScreenshotURL *string                     `gorm:"column:payment_screenshot_url"`
	AccommodationNeeded  bool                        `gorm:"column:accommodation_needed;not null"`
	PaymentStatus        PaymentStatus               `gorm:"column:payment_status;type:varchar(16);not null"`
	CreatedAt            time.Time                   `gorm:"column:created_at;not null"`
	UpdatedAt            time.Time                   `gorm:"column:updated_at;not null"`
	PaymentVerifiedAt    *time.Time                  `gorm:"column:payment_verified_at"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(*gorm.DB) error {
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Leader returns the first member, or the zero Member when members_data is empty.
func (t *Team) Leader() Member {
	if len(t.MembersData) == 0 {
		return Member{}
	}
	return t.MembersData[0]
}

// Size returns the team size including the leader.
func (t *Team) Size() int {
	return len(t.MembersData)
}

// ReviewEvent is one status transition recorded for an application.
type ReviewEvent struct {
	ID         uint64        `gorm:"primaryKey;column:id;autoIncrement"`
	TeamID     uuid.UUID     `gorm:"column:team_id;type:uuid;not null;index:idx_review_events_team_id"`
	ActorEmail string        `gorm:"column:actor_email;type:varchar(255);not null"`
	FromStatus PaymentStatus `gorm:"column:from_status;type:varchar(16);not null"`
	ToStatus   PaymentStatus `gorm:"column:to_status;type:varchar(16);not null"`
	Reason     *string       `gorm:"column:reason"`
	CreatedAt  time.Time     `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for GORM.
func (ReviewEvent) TableName() string {
	return "review_events"
}
