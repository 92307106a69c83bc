// Package config handles pratt.toml driver configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "pratt.toml"

// Config represents a pratt.toml file.
type Config struct {
	Output Output `toml:"output"`
	Trace  Trace  `toml:"trace"`
	Log    Log    `toml:"log"`

	// Path is the file the configuration was read from (empty for defaults).
	Path string `toml:"-"`
}

// Output controls what the driver prints besides the result.
type Output struct {
	Disassemble bool `toml:"disassemble"`
}

// Trace controls per-instruction logging.
type Trace struct {
	Enabled bool `toml:"enabled"`
}

// Log configures the commonlog backend. Verbosity 0 logs notices and above,
// 1 adds info and 2 adds debug.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no pratt.toml exists.
func Default() *Config {
	return &Config{
		Output: Output{Disassemble: true},
	}
}

// Load parses the file at path on top of the defaults. Unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) {
		cfg.Log.File = filepath.Join(filepath.Dir(cfg.Path), cfg.Log.File)
	}
	return cfg, nil
}

// FindAndLoad walks up from startDir looking for pratt.toml and loads the
// first one found. Without a file the defaults are returned.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
