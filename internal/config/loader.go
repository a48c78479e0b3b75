package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoadFromDir loads configuration with the following priority (highest to
// lowest): DOCSHADOW_* environment variables, docshadow.config.json in
// rootDir, defaults.
func LoadFromDir(rootDir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("docshadow.config")
	v.SetConfigType("json")
	v.AddConfigPath(rootDir)

	v.SetEnvPrefix("DOCSHADOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("project")
	v.BindEnv("output_dir")
	v.BindEnv("ignore_file")
	v.BindEnv("workers")
	v.BindEnv("hooks.post_commit")

	setDefaults(v, rootDir)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is acceptable: defaults plus env vars
		// still describe a valid project.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, NewError("failed to read "+FileName, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, NewError("failed to parse "+FileName, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper, rootDir string) {
	defaults := Default(rootDir)

	v.SetDefault("project", defaults.Project)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("ignore_file", defaults.IgnoreFile)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("hooks.post_commit", defaults.Hooks.PostCommit)
}

// Exists reports whether rootDir carries a docshadow configuration file.
func Exists(rootDir string) bool {
	_, err := os.Stat(filepath.Join(rootDir, FileName))
	return err == nil
}

// LoadIgnorePatterns reads the ordered exclusion pattern lines from the
// configured ignore file. A missing ignore file means no exclusions.
func (c *Config) LoadIgnorePatterns(rootDir string) ([]string, error) {
	path := filepath.Join(rootDir, c.IgnoreFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewError("failed to read "+c.IgnoreFile, err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}
