// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional config.yaml and an optional .env
// file. It provides type-safe access to the settings the proxy needs while
// keeping configuration details separate from request handling.
package config
