// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go owns the YAML structure and loading; this file
// handles the CLI and MCP interface where config is accessed by string keys
// (e.g., "limits.max_value").
//
// Pointers are used for optional fields to distinguish "not set" (nil) from
// "explicitly set to zero", so defaults only apply when the user hasn't set
// a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"check.profile",
		"limits.max_name", "limits.max_value",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "check.profile":
		return c.Check.Profile, nil
	case "limits.max_name":
		return strconv.Itoa(c.MaxName()), nil
	case "limits.max_value":
		return strconv.Itoa(c.MaxValue()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "check.profile":
		c.Check.Profile = value
	case "limits.max_name":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_name must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxName = &n
	case "limits.max_value":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_value must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxValue = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":      c.Author.Name,
		"author.email":     c.Author.Email,
		"check.profile":    c.Check.Profile,
		"limits.max_name":  strconv.Itoa(c.MaxName()),
		"limits.max_value": strconv.Itoa(c.MaxValue()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "check.profile":
		return c.Check.Profile != ""
	case "limits.max_name":
		return c.Limits.MaxName != nil
	case "limits.max_value":
		return c.Limits.MaxValue != nil
	default:
		return false
	}
}
