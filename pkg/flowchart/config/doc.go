/*
Package config loads flowchart tool configuration.

# Overview

Config wraps a map[string]any and provides typed accessor methods that
handle missing keys and type mismatches by returning default values. Values
may come from YAML or JSON files or from PREFIX_ environment variables, so
accessors also accept the string forms environment variables carry.

Settings is the typed view the tools actually consume. It is decoded from a
Config and validated with struct tags.

# Basic Usage

	file, err := config.FromFile("flowchart.yaml")
	if err != nil {
	    return err
	}
	env, err := config.FromEnv("FLOWCHART", ".env")
	if err != nil {
	    return err
	}
	cfg, err := file.Merge(env) // environment wins
	if err != nil {
	    return err
	}

	settings := config.SettingsFrom(cfg)
	if err := settings.Validate(); err != nil {
	    return err
	}

# Keys

	log_level    debug | info | warn | error   (default info)
	log_format   text | json                   (default text)
	metrics      bool                          (default false)
	tracing      bool                          (default false)
	store_driver sqlite | memory               (default sqlite)
	store_path   SQLite file or ":memory:"     (default flows.db)
	unique_ids   bool                          (default false)

Files may group keys in sections instead:

	log:
	  level: debug
	  format: json
	store:
	  path: /var/lib/flowchart/flows.db

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
