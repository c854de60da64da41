package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// clearEnv unsets the override variables for the duration of the test so
// the values under test come from the file.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENV", "HTTP_SERVER_ADDR", "STORAGE_DRIVER", "MONGO_URI",
		"MONGO_DATABASE", "STORAGE_PATH", "STORAGE_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
env: staging
http_server:
  address: "localhost:9090"
storage:
  driver: sqlite
  path: /tmp/course-test.db
  timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "localhost:9090", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/course-test.db", cfg.Storage.Path)
	assert.Equal(t, 3*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "course_db", cfg.Storage.Database)
}

func TestLoadEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
env: dev
http_server:
  address: "localhost:9090"
`)
	t.Setenv("HTTP_SERVER_ADDR", "0.0.0.0:8000")
	t.Setenv("STORAGE_DRIVER", DriverMemory)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("UnknownDriver", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, `
env: dev
http_server:
  address: "localhost:9090"
storage:
  driver: postgres
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}
