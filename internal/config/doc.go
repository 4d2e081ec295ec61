// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides type-safe
// access to the settings needed by the server and the task store while keeping
// configuration details separate from business logic.
package config
