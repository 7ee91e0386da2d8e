// Package config loads and validates the ingest configuration from a YAML
// file with ${VAR} environment expansion. All settings travel in an explicit
// Config struct handed to the pipeline at construction; there is no
// package-level state.
package config
