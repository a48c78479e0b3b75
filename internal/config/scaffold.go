package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// defaultIgnoreContent seeds .docignore when the project has no .gitignore
// to copy.
const defaultIgnoreContent = `# docshadow ignore file
# Add patterns to exclude files from documentation generation

__pycache__/
*.pyc
*.pyo
*.pyd
build/
dist/
*.egg-info/
.pytest_cache/
.tox/
.venv/
venv/
`

// WriteDefault writes a default docshadow.config.json into rootDir.
// Refuses to overwrite an existing configuration.
func WriteDefault(rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return nil, NewError(FileName+" already exists", nil)
	}

	cfg := Default(rootDir)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return cfg, nil
}

// SeedIgnoreFile creates the ignore file if absent: a copy of .gitignore
// when the repo has one, a built-in default otherwise. Returns the path
// written, or "" when the file already existed.
func SeedIgnoreFile(rootDir, ignoreFile string) (string, error) {
	path := filepath.Join(rootDir, ignoreFile)
	if _, err := os.Stat(path); err == nil {
		return "", nil
	}

	content := []byte(defaultIgnoreContent)
	if data, err := os.ReadFile(filepath.Join(rootDir, ".gitignore")); err == nil {
		content = data
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ignoreFile, err)
	}
	return path, nil
}
