package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "./trading_journal.db", cfg.Journal.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
journal:
  db_path: /var/lib/bitjournal/journal.db
exchange:
  base_url: https://fapi.example.test
log:
  level: debug
  file: ./bitjournal.log
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/bitjournal/journal.db", cfg.Journal.DBPath)
	assert.Equal(t, "https://fapi.example.test", cfg.Exchange.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./bitjournal.log", cfg.Log.File)
}

func TestLoadFromJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "journal": {"db_path": "journal.db"},
  "log": {"level": "warn"}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "journal.db", cfg.Journal.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BITJOURNAL_DB", "/tmp/override.db")
	t.Setenv("BITJOURNAL_LOG_LEVEL", "error")
	t.Setenv("BITUNIX_BASE_URL", "https://staging.example.test")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "/tmp/override.db", cfg.Journal.DBPath)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "https://staging.example.test", cfg.Exchange.BaseURL)
}

func TestValidateRejectsBadLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresDBPath(t *testing.T) {
	cfg := Default()
	cfg.Journal.DBPath = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
