package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/config"
)

type testConfig struct {
	Host    string        `env:"TEST_API_HOST"`
	Port    int           `env:"TEST_API_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_API_TIMEOUT" envDefault:"15s"`
	Debug   bool          `env:"TEST_API_DEBUG" envDefault:"false"`
}

type requiredConfig struct {
	Token string `env:"TEST_API_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("parses environment variables", func(t *testing.T) {
		t.Setenv("TEST_API_HOST", "https://api.example.com")
		t.Setenv("TEST_API_PORT", "9090")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://api.example.com", cfg.Host)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("applies defaults for unset variables", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
		assert.False(t, cfg.Debug)
	})

	t.Run("reflects environment changes between loads", func(t *testing.T) {
		t.Setenv("TEST_API_PORT", "1000")
		var first testConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, 1000, first.Port)

		t.Setenv("TEST_API_PORT", "2000")
		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, 2000, second.Port)
	})

	t.Run("missing required variable errors", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer errors", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("unparseable value errors", func(t *testing.T) {
		t.Setenv("TEST_API_PORT", "not-a-number")
		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoadFrom(t *testing.T) {
	t.Run("reads variables from env files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.env")
		require.NoError(t, os.WriteFile(path, []byte("TEST_API_HOST=https://from-file.example.com\n"), 0o600))

		var cfg testConfig
		require.NoError(t, config.LoadFrom(&cfg, path))
		assert.Equal(t, "https://from-file.example.com", cfg.Host)
		t.Cleanup(func() { _ = os.Unsetenv("TEST_API_HOST") })
	})

	t.Run("environment wins over file values", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.env")
		require.NoError(t, os.WriteFile(path, []byte("TEST_API_PORT=1111\n"), 0o600))

		t.Setenv("TEST_API_PORT", "2222")
		var cfg testConfig
		require.NoError(t, config.LoadFrom(&cfg, path))
		assert.Equal(t, 2222, cfg.Port)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("returns config on success", func(t *testing.T) {
		t.Setenv("TEST_API_HOST", "https://api.example.com")
		var cfg testConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "https://api.example.com", cfg.Host)
	})

	t.Run("panics on failure", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
