package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGetMigrationsPath(t *testing.T) {
	t.Setenv("MIGRATIONS_PATH", "")
	assert.Equal(t, "migrations", GetMigrationsPath())

	t.Setenv("MIGRATIONS_PATH", "custom/migrations")
	assert.Equal(t, "custom/migrations", GetMigrationsPath())
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolvePath(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	_, err = ResolvePath(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	file := filepath.Join(dir, "file.sql")
	require.NoError(t, os.WriteFile(file, []byte("select 1;"), 0o600))
	_, err = ResolvePath(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(nil, t.TempDir(), zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection is nil")
}

func TestMigrate_MissingDirectory(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = Migrate(db, filepath.Join(t.TempDir(), "nope"), zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory does not exist")
}

// The repository migrations must always ship as up/down pairs.
func TestRepositoryMigrationsArePaired(t *testing.T) {
	ups, err := filepath.Glob(filepath.Join("..", "..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := os.Stat(down)
		assert.NoError(t, err, "missing down migration for %s", filepath.Base(up))
	}
}
