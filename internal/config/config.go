// Package config provides reading and writing of tdf configuration.
// Supports both global (~/.tdf/config.yaml) and local (.tdf/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.tdf/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .tdf/config.yaml
	ScopeLocal
)

// Author represents the author metadata stored in the repository config.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Check holds validation-related configuration options.
type Check struct {
	// Profile names the validation profile applied by "tdf check" when
	// no --profile flag is given.
	Profile string `yaml:"profile,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxName  *int `yaml:"max_name,omitempty"`
	MaxValue *int `yaml:"max_value,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxName  = 512
	DefaultMaxValue = 64 * 1024 // 64 KB - a TDF string is metadata, not payload
)

// Validation bounds for configuration values.
const (
	MinMaxName  = 1
	MaxMaxName  = 65536
	MinMaxValue = 1
	MaxMaxValue = 16 * 1024 * 1024 // 16 MB
)

// Config contains configuration for tdf.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Check  Check  `yaml:"check,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxName != nil {
		v := *c.Limits.MaxName
		if v < MinMaxName || v > MaxMaxName {
			return fmt.Errorf("%w: max_name must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxName, MaxMaxName, v)
		}
	}
	if c.Limits.MaxValue != nil {
		v := *c.Limits.MaxValue
		if v < MinMaxValue || v > MaxMaxValue {
			return fmt.Errorf("%w: max_value must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxValue, MaxMaxValue, v)
		}
	}
	return nil
}

// DefaultProfile returns the profile applied when no --profile flag is
// given (empty when not configured).
func (c *Config) DefaultProfile() string {
	return c.Check.Profile
}

// MaxName returns the maximum entry name length in bytes (defaults to 512).
func (c *Config) MaxName() int {
	if c.Limits.MaxName == nil {
		return DefaultMaxName
	}
	return *c.Limits.MaxName
}

// MaxValue returns the maximum serialized value length in bytes (defaults
// to 64 KB).
func (c *Config) MaxValue() int {
	if c.Limits.MaxValue == nil {
		return DefaultMaxValue
	}
	return *c.Limits.MaxValue
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".tdf", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.tdf/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tdf", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
