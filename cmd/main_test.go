package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/venvctl/pkg/logger"
)

func TestResolveLogMode(t *testing.T) {
	configWithMode := func(t *testing.T, mode string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log": {"mode": "`+mode+`"}}`), 0o644))
		return path
	}

	t.Run("config file applies when flag untouched", func(t *testing.T) {
		path := configWithMode(t, "debug")
		assert.Equal(t, logger.LogModeDebug, resolveLogMode(false, "pretty", path))
	})

	t.Run("explicit flag beats config file", func(t *testing.T) {
		path := configWithMode(t, "debug")
		assert.Equal(t, logger.LogModeProd, resolveLogMode(true, "prod", path))
	})

	t.Run("defaults to pretty without a config", func(t *testing.T) {
		assert.Equal(t, logger.LogModePretty, resolveLogMode(false, "pretty", ""))
	})

	t.Run("unknown mode falls back to pretty", func(t *testing.T) {
		path := configWithMode(t, "verbose")
		assert.Equal(t, logger.LogModePretty, resolveLogMode(false, "pretty", path))
	})
}
