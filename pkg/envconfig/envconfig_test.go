package envconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushi-gajendra/restaurant-insights/pkg/database"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("INSIGHTS_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("INSIGHTS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("INSIGHTS_TEST_ABSENT", "fallback"))

	t.Setenv("INSIGHTS_TEST_EMPTY", "")
	assert.Equal(t, "fallback", GetEnv("INSIGHTS_TEST_EMPTY", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("INSIGHTS_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("INSIGHTS_TEST_INT", 7))

	t.Setenv("INSIGHTS_TEST_INT", "not a number")
	assert.Equal(t, 7, GetEnvInt("INSIGHTS_TEST_INT", 7))

	assert.Equal(t, 7, GetEnvInt("INSIGHTS_TEST_ABSENT", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("INSIGHTS_TEST_BOOL", "true")
	assert.True(t, GetEnvBool("INSIGHTS_TEST_BOOL", false))

	t.Setenv("INSIGHTS_TEST_BOOL", "0")
	assert.False(t, GetEnvBool("INSIGHTS_TEST_BOOL", true))

	t.Setenv("INSIGHTS_TEST_BOOL", "maybe")
	assert.True(t, GetEnvBool("INSIGHTS_TEST_BOOL", true))
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logger.LevelWarn, GetLogLevel())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, logger.LevelInfo, GetLogLevel())
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `
# database settings
DB_HOST=db.internal
DB_PORT=6543
QUOTED="hello world"

NOT_A_PAIR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("DB_HOST", "already-set")
	t.Setenv("DB_PORT", "")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("QUOTED")
	t.Cleanup(func() {
		os.Unsetenv("DB_PORT")
		os.Unsetenv("QUOTED")
	})

	require.NoError(t, LoadEnvFile(path))

	assert.Equal(t, "already-set", os.Getenv("DB_HOST"), "existing variables are not overridden")
	assert.Equal(t, "6543", os.Getenv("DB_PORT"))
	assert.Equal(t, "hello world", os.Getenv("QUOTED"))
}

func TestLoadEnvFileMissing(t *testing.T) {
	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
}

func TestApplyDatabaseEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/srv/restaurant.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_CONN_MAX_LIFETIME", "2m")

	cfg := ApplyDatabaseEnv(database.DefaultConfig())

	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "/srv/restaurant.db", cfg.Path)
	assert.Equal(t, 50, cfg.MaxOpenConns)
	assert.Equal(t, 2*time.Minute, cfg.ConnMaxLifetime)

	// Untouched settings keep their defaults.
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
}

func TestApplyDatabaseEnvRejectsBadValues(t *testing.T) {
	t.Setenv("DB_PORT", "not a port")
	t.Setenv("DB_MAX_OPEN_CONNS", "-5")
	t.Setenv("DB_MAX_IDLE_CONNS", "many")

	cfg := ApplyDatabaseEnv(database.DefaultConfig())

	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, database.DefaultMaxOpenConns, cfg.MaxOpenConns)
	assert.Equal(t, database.DefaultMaxIdleConns, cfg.MaxIdleConns)
}
