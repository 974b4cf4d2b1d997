package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// FromEnv collects variables named PREFIX_KEY into a Config keyed by
// lowercase KEY. FLOWCHART_LOG_LEVEL=debug with prefix "flowchart" becomes
// log_level: "debug".
//
// Variables are read from the given dotenv files first and then from the
// process environment, which wins on conflict. Dotenv files that do not
// exist are skipped; the process environment is never modified.
func FromEnv(prefix string, dotenvFiles ...string) (Config, error) {
	vars := make(map[string]string)

	for _, path := range dotenvFiles {
		fileVars, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read env file %s: %w", path, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	wantPrefix := strings.ToUpper(prefix) + "_"
	data := make(map[string]any)
	for k, v := range vars {
		if key, ok := strings.CutPrefix(strings.ToUpper(k), wantPrefix); ok && key != "" {
			data[strings.ToLower(key)] = v
		}
	}
	return New(data), nil
}
