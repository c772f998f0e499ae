// Package config loads runtime settings for worlds, logging, scripting and
// the stress tool from TOML or YAML files.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/tickworld/ecs"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

type Config struct {
	World     WorldConfig     `toml:"world" yaml:"world"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Scripting ScriptingConfig `toml:"scripting" yaml:"scripting"`
	Stress    StressConfig    `toml:"stress" yaml:"stress"`
}

type WorldConfig struct {
	InitialCapacity int           `toml:"initial_capacity" yaml:"initial_capacity"`
	TickRate        time.Duration `toml:"tick_rate" yaml:"tick_rate"`
	MaxDelta        time.Duration `toml:"max_delta" yaml:"max_delta"` // 0 disables the cap
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type ScriptingConfig struct {
	Enabled  bool   `toml:"enabled" yaml:"enabled"`
	Dir      string `toml:"dir" yaml:"dir"`
	Priority int    `toml:"priority" yaml:"priority"`
}

type StressConfig struct {
	Duration      time.Duration `toml:"duration" yaml:"duration"`
	Entities      int           `toml:"entities" yaml:"entities"`
	ChurnPerFrame int           `toml:"churn_per_frame" yaml:"churn_per_frame"`
	Profile       string        `toml:"profile" yaml:"profile"` // "", "cpu" or "mem"
	ReportPath    string        `toml:"report_path" yaml:"report_path"`
}

// Options converts the settings into World construction options.
func (c WorldConfig) Options() []ecs.WorldOption {
	opts := []ecs.WorldOption{ecs.WithMaxDelta(c.MaxDelta)}
	if c.InitialCapacity > 0 {
		opts = append(opts, ecs.WithInitialCapacity(c.InitialCapacity))
	}
	return opts
}

// Load reads a config file. The format is chosen from the extension:
// .toml, .yaml or .yml. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, eris.Wrapf(err, "parse config %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, eris.Wrapf(err, "parse config %s", path)
		}
	default:
		return nil, eris.Errorf("config %s: unsupported format %q", path, ext)
	}
	return cfg, nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			InitialCapacity: 1024,
			TickRate:        16 * time.Millisecond,
			MaxDelta:        250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scripting: ScriptingConfig{
			Enabled:  false,
			Dir:      "scripts",
			Priority: 50,
		},
		Stress: StressConfig{
			Duration:      5 * time.Second,
			Entities:      10000,
			ChurnPerFrame: 100,
			ReportPath:    "",
		},
	}
}
