package config

import "path/filepath"

// Validate checks that cfg describes a usable project. Violations are
// ConfigErrors: fatal before any extraction begins.
func Validate(cfg *Config) error {
	if cfg.Project == "" {
		return NewError("project name must not be empty", nil)
	}
	if cfg.OutputDir == "" {
		return NewError("output_dir must not be empty", nil)
	}
	if filepath.Clean(cfg.OutputDir) == "." {
		return NewError("output_dir must not be the project root", nil)
	}
	if cfg.Workers < 0 {
		return NewError("workers must not be negative", nil)
	}
	if cfg.IgnoreFile == "" {
		return NewError("ignore_file must not be empty", nil)
	}
	return nil
}
