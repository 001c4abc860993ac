// Package config loads, normalizes, and validates creditscores configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies CREDITSCORES_* environment
// overrides on top of the file. The Config type centralizes every knob the
// API server and the CLI client need, so both binaries agree on where the
// database lives and which address the server listens on.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
