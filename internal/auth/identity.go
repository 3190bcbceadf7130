// Package auth authenticates visitors from identity-provider access tokens
// and decides admin access from the configured email allow-list.
package auth

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidToken indicates a missing, malformed, expired or otherwise unverifiable token.
	ErrInvalidToken = errors.New("invalid access token")
	// ErrMissingEmail indicates a token verified but carried no email claim.
	ErrMissingEmail = errors.New("access token has no email")
)

// Identity is an authenticated visitor.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// Policy is the admin allow-list. The zero value admits nobody.
type Policy struct {
	admins map[string]struct{}
}

// NewPolicy builds a policy from a list of admin emails.
// Emails are trimmed and compared case-insensitively; blanks are ignored.
func NewPolicy(emails []string) Policy {
	admins := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		if e := normalizeEmail(email); e != "" {
			admins[e] = struct{}{}
		}
	}
	return Policy{admins: admins}
}

// IsAdmin reports whether email is on the allow-list.
func (p Policy) IsAdmin(email string) bool {
	e := normalizeEmail(email)
	if e == "" {
		return false
	}
	_, ok := p.admins[e]
	return ok
}

// IsAdminIdentity reports whether id is non-nil and allow-listed.
func (p Policy) IsAdminIdentity(id *Identity) bool {
	return id != nil && p.IsAdmin(id.Email)
}

// Size returns the number of admin emails.
func (p Policy) Size() int {
	return len(p.admins)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
