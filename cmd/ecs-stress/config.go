package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

type Config struct {
	Run     RunConfig     `toml:"run"`
	Logging LoggingConfig `toml:"logging"`
	Profile ProfileConfig `toml:"profile"`
}

type RunConfig struct {
	Duration       time.Duration `toml:"duration"`
	Entities       int           `toml:"entities"`
	MaxEntities    int           `toml:"max_entities"` // page size hint for every pool
	Systems        int           `toml:"systems"`
	ChurnPerFrame  int           `toml:"churn_per_frame"` // entities destroyed and respawned each frame
	Seed           int64         `toml:"seed"`
	GCPauseMetrics bool          `toml:"gc_pause_metrics"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu" or "mem"
	Path string `toml:"path"`
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Run: RunConfig{
			Duration:      10 * time.Second,
			Entities:      10000,
			MaxEntities:   4096,
			Systems:       len(systemFactories),
			ChurnPerFrame: 16,
			Seed:          1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}

var errInvalidConfig = eris.New("invalid config")

func (c *Config) validate() error {
	switch {
	case c.Run.Duration <= 0:
		return eris.Wrap(errInvalidConfig, "run.duration must be positive")
	case c.Run.Entities < 0:
		return eris.Wrap(errInvalidConfig, "run.entities must not be negative")
	case c.Run.Systems < 0:
		return eris.Wrap(errInvalidConfig, "run.systems must not be negative")
	case c.Run.ChurnPerFrame < 0:
		return eris.Wrap(errInvalidConfig, "run.churn_per_frame must not be negative")
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return eris.Wrapf(errInvalidConfig, "unknown profile mode %q", c.Profile.Mode)
	}
	return nil
}
