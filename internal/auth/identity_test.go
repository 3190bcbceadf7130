package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_IsAdmin(t *testing.T) {
	policy := NewPolicy([]string{" Admin@Example.com ", "", "ops@example.com"})

	tests := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"ADMIN@EXAMPLE.COM", true},
		{"  ops@example.com", true},
		{"user@example.com", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.IsAdmin(tt.email), tt.email)
	}
	assert.Equal(t, 2, policy.Size())
}

func TestPolicy_ZeroValue(t *testing.T) {
	var policy Policy
	assert.False(t, policy.IsAdmin("admin@example.com"))
	assert.False(t, policy.IsAdminIdentity(nil))
}

func TestPolicy_IsAdminIdentity(t *testing.T) {
	policy := NewPolicy([]string{"admin@example.com"})
	assert.True(t, policy.IsAdminIdentity(&Identity{UserID: "u1", Email: "admin@example.com"}))
	assert.False(t, policy.IsAdminIdentity(&Identity{UserID: "u2", Email: "user@example.com"}))
	assert.False(t, policy.IsAdminIdentity(nil))
}
