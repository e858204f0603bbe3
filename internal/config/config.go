// Package config loads optional user settings from a YAML file.
// Everything has a working default; a missing config file is not an
// error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the tunables of the browser.
type Config struct {
	// CacheSize bounds the directory snapshot LRU.
	CacheSize int `yaml:"cache_size"`
	// MaxFileSize caps viewable file size in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
	// Style names the chroma style used for file highlighting.
	Style string `yaml:"style"`
	// LogFile receives structured logs; empty disables logging.
	LogFile string `yaml:"log_file"`
	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		CacheSize:   100,
		MaxFileSize: 10 << 20,
		Style:       "base16-snazzy",
	}
}

// DefaultPath returns the conventional config location, or "" when the
// user config dir cannot be resolved.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "peruse", "config.yaml")
}

// Load reads the config at path, layered over the defaults. A missing
// file returns the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = Default().CacheSize
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = Default().MaxFileSize
	}
	if cfg.Style == "" {
		cfg.Style = Default().Style
	}
	return cfg, nil
}
