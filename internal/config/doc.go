// Package config loads, normalizes, and validates the TOML configuration for
// the tonie CLI: API endpoints, credentials, acquisition staging, optional
// push notifications, and log output.
package config
