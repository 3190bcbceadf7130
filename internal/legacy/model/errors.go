package model

import "errors"

var (
	// ErrRegistrationNotFound indicates that the requested registration does not exist.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrForbidden indicates the caller is not on the admin allow-list.
	ErrForbidden = errors.New("admin access required")
	// ErrPersistence indicates a failure of the backing store.
	ErrPersistence = errors.New("persistence failure")
)
