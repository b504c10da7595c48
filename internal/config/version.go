package config

import (
	"encoding/json"
	"fmt"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 2

// VersionedConfig wraps a Config with a version field for migrations.
// Files may either nest the settings under "config" or inline them.
type VersionedConfig struct {
	Version int     `json:"version"`
	Config  *Config `json:"config,omitempty"`
}

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]interface{}) (map[string]interface{}, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// 0 -> 1: legacy preference documents kept view settings under "prefs"
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]interface{}) (map[string]interface{}, error) {
			if prefs, ok := data["prefs"].(map[string]interface{}); ok {
				board := section(data, "board")
				for _, key := range []string{"view", "showCompleted"} {
					if v, ok := prefs[key]; ok {
						if _, set := board[key]; !set {
							board[key] = v
						}
					}
				}
				delete(data, "prefs")
			}
			data["version"] = 1
			return data, nil
		},
	},
	// 1 -> 2: top-level "dataFile" moved into the store section
	{
		FromVersion: 1,
		ToVersion:   2,
		Migrate: func(data map[string]interface{}) (map[string]interface{}, error) {
			if old, ok := data["dataFile"]; ok {
				path, isString := old.(string)
				if !isString {
					return nil, fmt.Errorf("dataFile must be a string, got %T", old)
				}
				store := section(data, "store")
				if _, set := store["path"]; !set {
					store["path"] = path
				}
				delete(data, "dataFile")
			}
			data["version"] = 2
			return data, nil
		},
	},
}

// section returns data[key] as an object, creating it when absent
func section(data map[string]interface{}, key string) map[string]interface{} {
	if m, ok := data[key].(map[string]interface{}); ok {
		return m
	}
	m := make(map[string]interface{})
	data[key] = m
	return m
}

// ParseVersionedConfig parses config data with version migration support.
// Fields absent from data keep their DefaultConfig values.
func ParseVersionedConfig(data []byte) (*Config, error) {
	// First, parse as raw JSON to get version
	var rawConfig map[string]interface{}
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := rawConfig["version"].(float64); ok {
		version = int(v)
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and unmarshal to get proper types
	migratedData, err := json.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	versioned := VersionedConfig{Config: DefaultConfig()}
	if _, nested := rawConfig["config"]; nested {
		if err := json.Unmarshal(migratedData, &versioned); err != nil {
			return nil, fmt.Errorf("failed to parse versioned config: %w", err)
		}
		return versioned.Config, nil
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(migratedData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flat config: %w", err)
	}
	return cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]interface{}, fromVersion int) (map[string]interface{}, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config as a flat object with a
// leading version field
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var cfgMap map[string]interface{}
	if err := json.Unmarshal(cfgData, &cfgMap); err != nil {
		return nil, err
	}

	result := make(map[string]interface{}, len(cfgMap)+1)
	result["version"] = CurrentVersion
	for k, v := range cfgMap {
		result[k] = v
	}

	return json.MarshalIndent(result, "", "  ")
}
