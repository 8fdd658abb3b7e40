// Package config handles configuration for the bpd CLI.
//
// Configuration is resolved in precedence order: built-in defaults, then
// a YAML config file, then BPD_-prefixed environment variables, then
// command-line flags (applied by the commands via Merge).
package config
