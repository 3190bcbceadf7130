package model

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthorized indicates a missing identity or an actor outside the admin allow-list.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation indicates a malformed registration payload or proof file.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateTeamName indicates the team name is already taken.
	ErrDuplicateTeamName = errors.New("team name already exists")
	// ErrAlreadyRegistered indicates the leader already owns an application.
	ErrAlreadyRegistered = errors.New("leader already registered a team")
	// ErrUpload indicates the object store rejected or failed the proof upload.
	ErrUpload = errors.New("payment proof upload failed")
	// ErrPersistence indicates a data store failure.
	ErrPersistence = errors.New("persistence failure")
	// ErrMail indicates a notification could not be delivered.
	ErrMail = errors.New("notification failed")
	// ErrApplicationNotFound indicates that the requested application does not exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrInvalidTransition indicates the application is not in a state that allows the change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrResubmissionDisabled indicates resubmission after rejection is turned off.
	ErrResubmissionDisabled = errors.New("resubmission is disabled")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError is a shorthand for a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
