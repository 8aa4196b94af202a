// Package config loads the shard tuning file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds shard-level knobs. Township economy knobs live in the
// persisted township settings registry, not here.
type Config struct {
	SaveRoot string `yaml:"save_root"` // Base directory for saves and logs
	DBPath   string `yaml:"db_path"`   // SQLite world-save store

	Seed      int64 `yaml:"seed"`
	MapWidth  int   `yaml:"map_width"`
	MapHeight int   `yaml:"map_height"`

	TickIntervalMs int `yaml:"tick_interval_ms"`
	TicksPerDay    int `yaml:"ticks_per_day"`

	APIPort int `yaml:"api_port"` // 0 disables the status API

	SeedHouses int `yaml:"seed_houses"` // Houses generated on a fresh shard
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		SaveRoot:       "Saves/AngelIsland",
		DBPath:         "data/townshard.db",
		Seed:           42,
		MapWidth:       1024,
		MapHeight:      1024,
		TickIntervalMs: 1000,
		TicksPerDay:    1440,
		APIPort:        8080,
		SeedHouses:     120,
	}
}

// Load reads the YAML config at path. A missing file is not an error;
// defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("shard config: %w", err)
	}
	return cfg, nil
}
