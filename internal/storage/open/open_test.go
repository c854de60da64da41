package open

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/course-api/internal/config"
	"github.com/aanand-mishra/course-api/internal/storage/memory"
	"github.com/aanand-mishra/course-api/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		store, err := Storage(ctx, config.Storage{Driver: config.DriverMemory})
		require.NoError(t, err)
		assert.IsType(t, &memory.Memory{}, store)
	})
	t.Run("SQLite", func(t *testing.T) {
		store, err := Storage(ctx, config.Storage{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "course.db"),
		})
		require.NoError(t, err)
		defer store.Close(ctx)
		assert.IsType(t, &sqlite.SQLite{}, store)
	})
	t.Run("Unknown", func(t *testing.T) {
		_, err := Storage(ctx, config.Storage{Driver: "cassandra"})
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}
