package config

import "fmt"

// ConfigError is a fatal configuration problem: malformed exclusion
// pattern, unreadable config file, or a missing required setting. It aborts
// a run before any file is touched.
type ConfigError struct {
	Reason string
	Err    error
}

func NewError(reason string, err error) *ConfigError {
	return &ConfigError{Reason: reason, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }
