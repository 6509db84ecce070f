/*
Package config loads event router settings from YAML, JSON or TOML files.

# Overview

Config wraps a map[string]any and provides typed accessor methods that
return defaults on missing keys or type mismatches. Settings is the typed
view of the "eventroute" section consumed by the setup package.

# File Loading

	settings, err := config.Load("app.yaml")
	if err != nil {
	    log.Fatal(err)
	}

Or decode an already-parsed document:

	cfg, err := config.FromTOML(data)
	settings := config.SettingsFrom(cfg)

# Section Layout

	eventroute:
	  enabled: true          # false or missing: the service is inert
	  errorsEnabled: true    # wires the error monitor
	  testing: false         # register error events but skip hooks
	  environment: production
	  events:
	    user:
	      LOGGED_IN: Logged In
	  log:
	    file: /var/log/app/events.log
	    level: info
	    maxSizeMB: 50
	    maxBackups: 3
	    maxAgeDays: 7

# Validation

Settings.Validate uses go-playground/validator. An enabled service needs an
environment, and every catalog tag, machine name and display name must be
non-empty. Disabled settings are always valid.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
