// Package config handles configuration loading, parsing, and validation
// from command-line flags, environment variables, a .env file and an optional
// YAML config file. Flags take precedence over environment variables, which
// take precedence over the config file and then the built-in defaults.
package config
