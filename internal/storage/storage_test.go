package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProofPath(t *testing.T) {
	p := ProofPath("user_2abc-XYZ", ".png")
	parts := strings.Split(p, "/")
	require.Len(t, parts, 3)
	assert.Equal(t, "payment-proofs", parts[0])
	assert.Equal(t, "user_2abc-XYZ", parts[1])
	assert.True(t, strings.HasSuffix(parts[2], ".png"))
	assert.Len(t, strings.TrimSuffix(parts[2], ".png"), 36)

	assert.NotEqual(t, p, ProofPath("user_2abc-XYZ", ".png"), "paths must not collide")
}

func TestProofPath_SanitizesOwner(t *testing.T) {
	assert.True(t, strings.HasPrefix(ProofPath("../../etc", ".png"), "payment-proofs/______etc/"))
	assert.True(t, strings.HasPrefix(ProofPath("", ".jpg"), "payment-proofs/anonymous/"))
}

func TestCleanObjectPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "payment-proofs/u1/a.png", want: "payment-proofs/u1/a.png"},
		{in: "/payment-proofs/u1/a.png", want: "payment-proofs/u1/a.png"},
		{in: "", wantErr: true},
		{in: "/", wantErr: true},
		{in: "../secret", wantErr: true},
		{in: "a/../../b", wantErr: true},
		{in: "a//b", wantErr: true},
	}

	for _, tt := range tests {
		got, err := cleanObjectPath(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPath, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
