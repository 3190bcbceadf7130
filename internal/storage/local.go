package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/config"
)

// LocalStore keeps objects on the local filesystem under a root directory
// and serves them from PublicBaseURL.
type LocalStore struct {
	root    string
	baseURL string
	logger  *zap.SugaredLogger
}

// NewLocalStore creates the root directory if needed and returns a store.
func NewLocalStore(cfg config.StorageConfig, logger *zap.SugaredLogger) (*LocalStore, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:  logger,
	}, nil
}

// Root returns the absolute directory objects are written to.
func (s *LocalStore) Root() string {
	return s.root
}

// Upload writes data atomically via a temp file and rename.
func (s *LocalStore) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close object: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("failed to set object permissions: %w", err)
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("failed to commit object: %w", err)
	}

	s.logger.Debugw("object stored", "path", rel, "content_type", contentType, "size", len(data))
	return s.PublicURL(rel), nil
}

// PublicURL joins the public base URL and the object path.
func (s *LocalStore) PublicURL(objectPath string) string {
	return s.baseURL + "/" + strings.TrimPrefix(objectPath, "/")
}

// Delete removes the object file.
func (s *LocalStore) Delete(ctx context.Context, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := cleanObjectPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// HealthCheck writes and removes a probe file in the root directory.
func (s *LocalStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.root, ".health-*")
	if err != nil {
		return fmt.Errorf("storage root is not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
