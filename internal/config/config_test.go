package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Store.Path)
	assert.Equal(t, "tasks.json", filepath.Base(cfg.Store.Path))
	assert.True(t, cfg.Store.SeedSamples)

	assert.Equal(t, "kanban", cfg.Board.View)
	assert.True(t, cfg.Board.ShowCompleted)
	assert.Equal(t, 30, cfg.Board.RefreshSeconds)

	assert.True(t, cfg.Reminders.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.DueNowWindow())
	assert.Equal(t, 10*time.Minute, cfg.SnoozeDuration())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "", cfg.Timezone)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromAuroraJSON(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `{
  "version": 2,
  "store": {"path": "/tmp/work.yaml", "format": "yaml"},
  "board": {"view": "split", "showCompleted": false},
  "timezone": "Europe/London"
}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(configContent), 0644))

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/work.yaml", cfg.Store.Path)
	assert.Equal(t, "yaml", cfg.Store.Format)
	assert.Equal(t, "split", cfg.Board.View)
	assert.False(t, cfg.Board.ShowCompleted)

	// defaults filled in
	assert.Equal(t, 30, cfg.Board.RefreshSeconds)
	assert.True(t, cfg.Reminders.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestLoadConfigNoFiles(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Board, cfg.Board)
	assert.Equal(t, defaults.Reminders, cfg.Reminders)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	invalidContent := `{
  "board": {
    "view": "kanban"
  // missing closing brace
}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(invalidContent), 0644))

	_, err := LoadConfig(tmpDir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse .aurora.json")
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown view", `{"version": 2, "board": {"view": "gantt"}}`},
		{"unknown timezone", `{"version": 2, "timezone": "Mars/Olympus"}`},
		{"unknown log level", `{"version": 2, "log": {"level": "chatty"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(tt.content), 0644))
			_, err := LoadConfig(tmpDir)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	tmpDir := t.TempDir()

	dotenv := "AURORA_DATA_FILE=/data/home.json\nAURORA_LOG_LEVEL=DEBUG\nAURORA_REFRESH_SECONDS=5\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(dotenv), 0644))

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/data/home.json", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval())

	_, set := os.LookupEnv("AURORA_DATA_FILE")
	assert.False(t, set, ".env must not leak into the process environment")
}

func TestLoadConfigEnvBeatsDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("AURORA_VIEW=split\n"), 0644))
	t.Setenv("AURORA_VIEW", "calendar")
	t.Setenv("AURORA_REMINDERS", "false")

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "calendar", cfg.Board.View)
	assert.False(t, cfg.Reminders.Enabled)
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("AURORA_REFRESH_SECONDS", "soon")
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "test-config.json")

	cfg := DefaultConfig()
	cfg.Store.Path = "/srv/tasks.yaml"
	cfg.Board.View = "calendar"
	cfg.Board.ShowCompleted = false
	cfg.Timezone = "America/New_York"

	require.NoError(t, SaveConfig(cfg, configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), data, 0644))

	reloaded, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/tasks.yaml", reloaded.Store.Path)
	assert.Equal(t, "calendar", reloaded.Board.View)
	assert.False(t, reloaded.Board.ShowCompleted)
	assert.Equal(t, "America/New_York", reloaded.Timezone)
}

func TestMergeWithDefaults(t *testing.T) {
	partial := &Config{
		Store: StoreConfig{Path: "/tmp/x.json"},
		Board: BoardConfig{View: "split"},
	}

	merged := MergeWithDefaults(partial)

	assert.Equal(t, "/tmp/x.json", merged.Store.Path)
	assert.Equal(t, "split", merged.Board.View)
	assert.Equal(t, 30, merged.Board.RefreshSeconds)
	assert.Equal(t, 30, merged.Reminders.DueNowWindowMinutes)
	assert.Equal(t, 10, merged.Reminders.SnoozeMinutes)
	assert.Equal(t, "info", merged.Log.Level)
	assert.NotEmpty(t, merged.Log.Path)
}

func TestMergeWithDefaultsEmptyConfig(t *testing.T) {
	merged := MergeWithDefaults(&Config{})

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Store.Path, merged.Store.Path)
	assert.Equal(t, defaults.Board.View, merged.Board.View)
	assert.Equal(t, defaults.Log.Format, merged.Log.Format)
}
