package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// FileName is the per-directory config file
const FileName = ".aurora.json"

// Config represents the full Aurora configuration
type Config struct {
	Store     StoreConfig    `json:"store"`
	Board     BoardConfig    `json:"board"`
	Reminders ReminderConfig `json:"reminders"`
	Log       LogConfig      `json:"log"`
	// Timezone is an IANA name; empty means the system zone
	Timezone string `json:"timezone,omitempty"`
}

// StoreConfig contains task file settings
type StoreConfig struct {
	Path        string `json:"path" validate:"required"`
	Format      string `json:"format,omitempty" validate:"omitempty,oneof=json yaml"`
	SeedSamples bool   `json:"seedSamples"`
}

// BoardConfig contains view preferences
type BoardConfig struct {
	View           string `json:"view" validate:"oneof=kanban calendar split"`
	ShowCompleted  bool   `json:"showCompleted"`
	RefreshSeconds int    `json:"refreshSeconds" validate:"min=1"`
}

// ReminderConfig contains in-app reminder settings
type ReminderConfig struct {
	Enabled             bool `json:"enabled"`
	DueNowWindowMinutes int  `json:"dueNowWindowMinutes" validate:"min=1"`
	SnoozeMinutes       int  `json:"snoozeMinutes" validate:"min=1"`
}

// LogConfig contains log file settings
type LogConfig struct {
	Path       string `json:"path"`
	Level      string `json:"level" validate:"oneof=debug info warn error"`
	Format     string `json:"format" validate:"oneof=text json"`
	MaxSizeMB  int    `json:"maxSizeMB" validate:"min=1"`
	MaxBackups int    `json:"maxBackups" validate:"min=0"`
	MaxAgeDays int    `json:"maxAgeDays" validate:"min=0"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dir := dataDir()

	return &Config{
		Store: StoreConfig{
			Path:        filepath.Join(dir, "tasks.json"),
			SeedSamples: true,
		},
		Board: BoardConfig{
			View:           "kanban",
			ShowCompleted:  true,
			RefreshSeconds: 30,
		},
		Reminders: ReminderConfig{
			Enabled:             true,
			DueNowWindowMinutes: 30,
			SnoozeMinutes:       10,
		},
		Log: LogConfig{
			Path:       filepath.Join(dir, "logs", "aurora.log"),
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// dataDir is ~/.aurora, or ./.aurora when there is no home directory
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aurora"
	}
	return filepath.Join(home, ".aurora")
}

// LoadConfig loads configuration from project path with priority:
// 1. AURORA_* environment variables
// 2. .env in project root
// 3. .aurora.json in project root (with version migration support)
// 4. ~/.aurora/config.json
// 5. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	cfg, err := loadFile(projectPath)
	if err != nil {
		return nil, err
	}

	env, err := readDotEnv(filepath.Join(projectPath, ".env"))
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(projectPath string) (*Config, error) {
	local := filepath.Join(projectPath, FileName)
	if data, err := os.ReadFile(local); err == nil {
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
		return MergeWithDefaults(cfg), nil
	}

	global := filepath.Join(dataDir(), "config.json")
	if data, err := os.ReadFile(global); err == nil {
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", global, err)
		}
		return MergeWithDefaults(cfg), nil
	}

	return DefaultConfig(), nil
}

// readDotEnv parses a .env file without touching the process environment
func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return env, nil
}

// applyEnv overrides config values from AURORA_* variables
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("AURORA_DATA_FILE", &cfg.Store.Path)
	str("AURORA_STORE_FORMAT", &cfg.Store.Format)
	str("AURORA_TIMEZONE", &cfg.Timezone)
	str("AURORA_VIEW", &cfg.Board.View)
	str("AURORA_LOG_PATH", &cfg.Log.Path)
	str("AURORA_LOG_LEVEL", &cfg.Log.Level)
	str("AURORA_LOG_FORMAT", &cfg.Log.Format)

	if v, ok := lookup("AURORA_REMINDERS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AURORA_REMINDERS %q: %w", v, err)
		}
		cfg.Reminders.Enabled = b
	}
	if v, ok := lookup("AURORA_REFRESH_SECONDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid AURORA_REFRESH_SECONDS %q: %w", v, err)
		}
		cfg.Board.RefreshSeconds = n
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	return nil
}

// Validate checks field constraints and that Timezone resolves
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone, defaulting to time.Local
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RefreshInterval returns the board re-evaluation period
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Board.RefreshSeconds) * time.Second
}

// DueNowWindow returns how long after its due instant a task still fires
func (c *Config) DueNowWindow() time.Duration {
	return time.Duration(c.Reminders.DueNowWindowMinutes) * time.Minute
}

// SnoozeDuration returns the snooze length
func (c *Config) SnoozeDuration() time.Duration {
	return time.Duration(c.Reminders.SnoozeMinutes) * time.Minute
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge Store config
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaults.Store.Path
	}

	// Merge Board config
	if cfg.Board.View == "" {
		cfg.Board.View = defaults.Board.View
	}
	if cfg.Board.RefreshSeconds == 0 {
		cfg.Board.RefreshSeconds = defaults.Board.RefreshSeconds
	}

	// Merge Reminders config
	if cfg.Reminders.DueNowWindowMinutes == 0 {
		cfg.Reminders.DueNowWindowMinutes = defaults.Reminders.DueNowWindowMinutes
	}
	if cfg.Reminders.SnoozeMinutes == 0 {
		cfg.Reminders.SnoozeMinutes = defaults.Reminders.SnoozeMinutes
	}

	// Merge Log config
	if cfg.Log.Path == "" {
		cfg.Log.Path = defaults.Log.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = defaults.Log.MaxSizeMB
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
