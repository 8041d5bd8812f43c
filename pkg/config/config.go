// Package config loads the optional user configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/olimci/sprout/pkg/pkgmgr"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

var ErrConfigNotFound = errors.New("config file not found")

// Config holds user defaults. Command line flags and environment variables
// take precedence over every field.
type Config struct {
	Templates      string `toml:"templates" yaml:"templates" json:"templates"`
	Git            bool   `toml:"git" yaml:"git" json:"git"`
	Install        bool   `toml:"install" yaml:"install" json:"install"`
	PackageManager string `toml:"package_manager" yaml:"package_manager" json:"package_manager"`
}

// DefaultPath returns <user config dir>/sprout/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "sprout", FileName), nil
}

// Load reads the config file at path. A missing file is an error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := new(Config)
	if err := decodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when given. With an empty path it tries
// DefaultPath and returns an empty Config when that file does not exist. The
// returned string is the file that was read, or "" if none was.
func LoadOrDefault(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	path, err := DefaultPath()
	if err != nil {
		return new(Config), "", nil
	}

	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return new(Config), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	c.Templates = strings.TrimSpace(c.Templates)
	c.PackageManager = strings.TrimSpace(c.PackageManager)

	if c.PackageManager != "" {
		if _, err := pkgmgr.Lookup(c.PackageManager); err != nil {
			return fmt.Errorf("package_manager: %w", err)
		}
	}

	return nil
}
