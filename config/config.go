// Package config loads lattice index settings from YAML.
//
// Example document:
//
//	checks: false
//	capacity: 4096
//	log:
//	  level: debug
//	  format: json
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	lattice "github.com/kmiermans/lattice-hashmap"
)

// Config holds index settings. Unset fields keep the library defaults.
type Config struct {
	// Checks toggles precondition checking. Nil leaves it enabled.
	Checks *bool `yaml:"checks,omitempty"`

	// Capacity is a size hint for the number of occupied coordinates.
	Capacity int `yaml:"capacity,omitempty"`

	Log Log `yaml:"log,omitempty"`
}

// Log selects the index logger. An empty Level disables logging.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // "text" (default) or "json"
}

// Load decodes a Config from r. Unknown fields are rejected.
func Load(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and decodes the Config at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Load(bytes.NewReader(data))
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must be non-negative, got %d", c.Capacity)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Options converts c into index options.
func (c Config) Options() ([]lattice.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var opts []lattice.Option
	if c.Checks != nil {
		opts = append(opts, lattice.WithChecks(*c.Checks))
	}
	if c.Capacity > 0 {
		opts = append(opts, lattice.WithCapacity(c.Capacity))
	}
	if c.Log.Level != "" {
		level, _ := c.Log.level()
		if c.Log.Format == "json" {
			opts = append(opts, lattice.WithLogger(lattice.NewJSONLogger(level)))
		} else {
			opts = append(opts, lattice.WithLogLevel(level))
		}
	}
	return opts, nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
