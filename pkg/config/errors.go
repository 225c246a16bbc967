package config

import "fmt"

// ConfigError reports a fatal configuration problem. Callers abort
// before any synchronization work when one is returned; partial or
// per-team error handling never applies to configuration.
type ConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidationError reports a single missing or malformed configuration
// field. Validate aggregates these so every problem is reported in one
// pass.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}
