package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Defaults apply when no config file is present
// - File values override defaults, env vars override the file
// - Malformed config files and invalid values surface as ConfigError
// - Ignore patterns load in order, tolerate a missing file, normalize CRLF
// - Scaffolding writes a loadable default and never clobbers existing files

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestLoadFromDir_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), cfg.Project)
	assert.Equal(t, ".docshadow", cfg.OutputDir)
	assert.Equal(t, ".docignore", cfg.IgnoreFile)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.True(t, cfg.Hooks.PostCommit)
}

func TestLoadFromDir_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `{
  "project": "acme",
  "output_dir": "docs/shadow",
  "ignore_file": ".shadowignore",
  "workers": 2,
  "hooks": {"post_commit": false}
}`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Project)
	assert.Equal(t, "docs/shadow", cfg.OutputDir)
	assert.Equal(t, ".shadowignore", cfg.IgnoreFile)
	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.Hooks.PostCommit)
}

func TestLoadFromDir_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"project": "from-file"}`)
	t.Setenv("DOCSHADOW_PROJECT", "from-env")
	t.Setenv("DOCSHADOW_OUTPUT_DIR", "env-out")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Project)
	assert.Equal(t, "env-out", cfg.OutputDir)
}

func TestLoadFromDir_MalformedJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `{"project": `)

	_, err := LoadFromDir(dir)
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Project:    "p",
			OutputDir:  ".docshadow",
			IgnoreFile: ".docignore",
			Workers:    4,
		}
	}

	assert.NoError(t, Validate(valid()))

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty project", func(c *Config) { c.Project = "" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"output dir is root", func(c *Config) { c.OutputDir = "." }},
		{"empty ignore file", func(c *Config) { c.IgnoreFile = "" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tc.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.False(t, Exists(dir))

	writeConfig(t, dir, `{}`)
	assert.True(t, Exists(dir))
}

func TestLoadIgnorePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Default(dir)

	patterns, err := cfg.LoadIgnorePatterns(dir)
	require.NoError(t, err)
	assert.Nil(t, patterns, "missing ignore file means no exclusions")

	content := "# comment\r\n*.pyc\ntests/\n!tests/keep.py\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, cfg.IgnoreFile), []byte(content), 0644))

	patterns, err = cfg.LoadIgnorePatterns(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"# comment", "*.pyc", "tests/", "!tests/keep.py", ""}, patterns)
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), cfg.Project)

	loaded, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = WriteDefault(dir)
	require.Error(t, err, "an existing config must not be overwritten")
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSeedIgnoreFile(t *testing.T) {
	t.Parallel()

	t.Run("built-in default", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		path, err := SeedIgnoreFile(dir, ".docignore")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ".docignore"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "__pycache__/")
	})

	t.Run("copies gitignore when present", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0644))

		path, err := SeedIgnoreFile(dir, ".docignore")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "*.log\n", string(data))
	})

	t.Run("keeps existing file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".docignore"), []byte("mine\n"), 0644))

		path, err := SeedIgnoreFile(dir, ".docignore")
		require.NoError(t, err)
		assert.Empty(t, path)

		data, err := os.ReadFile(filepath.Join(dir, ".docignore"))
		require.NoError(t, err)
		assert.Equal(t, "mine\n", string(data))
	})
}
