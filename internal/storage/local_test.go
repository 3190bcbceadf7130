package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/config"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(config.StorageConfig{
		Root:          filepath.Join(t.TempDir(), "uploads"),
		PublicBaseURL: "/uploads/",
		MaxProofSize:  1 << 20,
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return store
}

func TestLocalStore_UploadAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	url, err := store.Upload(ctx, "payment-proofs/u1/proof.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/payment-proofs/u1/proof.png", url)

	data, err := os.ReadFile(filepath.Join(store.Root(), "payment-proofs", "u1", "proof.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	entries, err := os.ReadDir(filepath.Join(store.Root(), "payment-proofs", "u1"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, store.Delete(ctx, "payment-proofs/u1/proof.png"))
	_, err = os.Stat(filepath.Join(store.Root(), "payment-proofs", "u1", "proof.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "payment-proofs/u1/proof.png"), "deleting twice is not an error")
}

func TestLocalStore_RejectsEscapingPaths(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload(context.Background(), "../outside.png", "image/png", []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, store.Delete(context.Background(), "../outside.png"), ErrInvalidPath)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, "payment-proofs/u1/a.png", "image/png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.HealthCheck(ctx), context.Canceled)
}

func TestLocalStore_HealthCheck(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.HealthCheck(context.Background()))

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_PublicURL(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, "/uploads/a/b.png", store.PublicURL("/a/b.png"))
}

func TestObjectPath(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{name: "own url", url: store.PublicURL("payment-proofs/u1/a.png"), want: "payment-proofs/u1/a.png", wantOK: true},
		{name: "foreign url", url: "https://cdn.example.com/payment-proofs/u1/a.png"},
		{name: "base only", url: "/uploads/"},
		{name: "escaping path", url: "/uploads/../etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ObjectPath(store, tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
