package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Store drivers accepted by Settings.StoreDriver.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Settings is the typed configuration of the flowchart tools.
type Settings struct {
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`
	Metrics     bool
	Tracing     bool
	StoreDriver string `validate:"oneof=sqlite memory"`
	StorePath   string `validate:"required_if=StoreDriver sqlite"`
	UniqueIDs   bool
}

// DefaultSettings returns the settings used for keys that are not configured.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:    "info",
		LogFormat:   "text",
		StoreDriver: DriverSQLite,
		StorePath:   "flows.db",
	}
}

// SettingsFrom reads Settings from c, falling back to DefaultSettings.
//
// Keys may be flat (log_level, store_path) or grouped in sections
// (log: {level}, store: {path}); flat keys win.
func SettingsFrom(c Config) Settings {
	d := DefaultSettings()
	log := c.Sub("log")
	store := c.Sub("store")
	validate := c.Sub("validate")

	return Settings{
		LogLevel:    strings.ToLower(c.String("log_level", log.String("level", d.LogLevel))),
		LogFormat:   strings.ToLower(c.String("log_format", log.String("format", d.LogFormat))),
		Metrics:     c.Bool("metrics", d.Metrics),
		Tracing:     c.Bool("tracing", d.Tracing),
		StoreDriver: strings.ToLower(c.String("store_driver", store.String("driver", d.StoreDriver))),
		StorePath:   c.String("store_path", store.String("path", d.StorePath)),
		UniqueIDs:   c.Bool("unique_ids", validate.Bool("unique_ids", d.UniqueIDs)),
	}
}

var settingsValidator = validator.New()

// Validate checks the settings and reports every invalid field.
func (s Settings) Validate() error {
	err := settingsValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate settings: %w", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			errs = append(errs, fmt.Errorf("%s: %q fails %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
		} else {
			errs = append(errs, fmt.Errorf("%s: fails %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.Join(errs...)
}

// Level returns the slog level for LogLevel. Unknown values map to info.
func (s Settings) Level() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
