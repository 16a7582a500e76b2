// Package logging builds the slog logger used across the CLI: a compact
// console handler for terminals and a JSON handler for machine consumption,
// with optional mirroring into the configured log directory.
package logging
