// Package storage stores uploaded payment proofs and hands out their public URLs.
package storage

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath indicates an object path that is empty or escapes the store root.
var ErrInvalidPath = errors.New("invalid object path")

// ObjectStore is the object storage collaborator.
type ObjectStore interface {
	// Upload writes data under objectPath and returns its public URL.
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	// PublicURL returns the public URL for objectPath without touching storage.
	PublicURL(objectPath string) string
	// Delete removes objectPath. Deleting a missing object is not an error.
	Delete(ctx context.Context, objectPath string) error
	// HealthCheck verifies the store is writable.
	HealthCheck(ctx context.Context) error
}

const proofPrefix = "payment-proofs"

// ProofPath returns a collision-resistant object path for a payment proof
// namespaced by the uploader: payment-proofs/<owner>/<uuid><ext>.
func ProofPath(ownerID, ext string) string {
	return path.Join(proofPrefix, safeSegment(ownerID), uuid.NewString()+ext)
}

// ObjectPath recovers the object path from a URL handed out by store.
// It reports false for URLs the store did not produce.
func ObjectPath(store ObjectStore, url string) (string, bool) {
	prefix := store.PublicURL("")
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	p, err := cleanObjectPath(strings.TrimPrefix(url, prefix))
	if err != nil {
		return "", false
	}
	return p, true
}

// safeSegment keeps letters, digits, dash and underscore.
func safeSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "anonymous"
	}
	return b.String()
}

// cleanObjectPath normalizes p into a relative slash path inside the store.
func cleanObjectPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean("/" + p)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(p, "/") || strings.Contains(p, "..") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
