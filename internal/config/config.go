package config

import (
	"path/filepath"
	"runtime"
)

// FileName is the project configuration file at the repository root.
const FileName = "docshadow.config.json"

// DefaultIgnoreFile holds the exclusion pattern lines.
const DefaultIgnoreFile = ".docignore"

// Config represents the complete docshadow configuration.
// It is loaded from docshadow.config.json with environment variable
// overrides (DOCSHADOW_*).
type Config struct {
	Project    string      `json:"project" mapstructure:"project"`         // name recorded in docshadow.json
	OutputDir  string      `json:"output_dir" mapstructure:"output_dir"`   // artifact tree root, relative to the repo root
	IgnoreFile string      `json:"ignore_file" mapstructure:"ignore_file"` // exclusion pattern file
	Workers    int         `json:"workers" mapstructure:"workers"`         // extraction pool size, 0 = all CPUs
	Hooks      HooksConfig `json:"hooks" mapstructure:"hooks"`
}

// HooksConfig controls version-control hook integration.
type HooksConfig struct {
	PostCommit bool `json:"post_commit" mapstructure:"post_commit"` // regenerate docs after every commit
}

// Default returns a configuration with sensible defaults for rootDir.
func Default(rootDir string) *Config {
	return &Config{
		Project:    filepath.Base(rootDir),
		OutputDir:  ".docshadow",
		IgnoreFile: DefaultIgnoreFile,
		Workers:    runtime.GOMAXPROCS(0),
		Hooks: HooksConfig{
			PostCommit: true,
		},
	}
}
