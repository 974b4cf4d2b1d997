package config

import (
	"fmt"
	"strconv"
	"strings"

	"dario.cat/mergo"
)

// Config wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
//
// Keys are case-insensitive: they are lowercased on construction.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	lowered := make(map[string]any, len(data))
	for k, v := range data {
		lowered[strings.ToLower(k)] = v
	}
	return Config{data: lowered}
}

// Merge returns a Config holding c's values overridden by other's.
// Used to layer environment variables over a config file.
func (c Config) Merge(other Config) (Config, error) {
	merged := make(map[string]any, len(c.data)+len(other.data))
	for _, src := range []map[string]any{c.data, other.data} {
		if len(src) == 0 {
			continue
		}
		if err := mergo.Merge(&merged, src, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("merge config: %w", err)
		}
	}
	return Config{data: merged}, nil
}

// String returns the string value for key, or defaultVal if missing.
// Numbers and booleans are formatted, so env and YAML sources agree.
func (c Config) String(key, defaultVal string) string {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - bool: used directly
//   - string: parsed with strconv.ParseBool ("true", "1", "false", ...)
func (c Config) Bool(key string, defaultVal bool) bool {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - int: used directly
//   - float64: converted only if there is no fractional part
//   - string: parsed with strconv.Atoi
func (c Config) Int(key string, defaultVal int) int {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return defaultVal
}

// Sub returns the nested section for key as a Config.
// A missing or non-map value yields an empty Config.
func (c Config) Sub(key string) Config {
	if m, ok := c.data[key].(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	if c.data == nil {
		return map[string]any{}
	}
	return c.data
}
