package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g.
	// CANONBRIDGE_DATABASE_PATH.
	EnvPrefix = "CANONBRIDGE"

	// ProjectFile is searched for from the working directory upward.
	ProjectFile = "canonbridge.toml"
)

// Load reads configuration. An explicit path is the only file read and must
// exist. Otherwise ~/.canonbridge/config.toml is merged first and the nearest
// canonbridge.toml above the working directory on top of it. Environment
// variables override both.
func Load(path string) (*Config, error) {
	// A missing .env is normal
	_ = godotenv.Load(".env")

	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViper builds the viper instance Load uses.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return v, nil
	}

	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadWithViper unmarshals and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configPaths lists the files to merge, lowest precedence first.
func configPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".canonbridge", "config.toml"))
	}
	if project := findProjectConfig(); project != "" {
		paths = append(paths, project)
	}
	return paths
}

// findProjectConfig walks up from the working directory looking for
// canonbridge.toml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges each existing file into v at config precedence, so
// environment variables still win.
func mergeConfigFiles(v *viper.Viper) error {
	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		file := viper.New()
		file.SetConfigFile(path)
		file.SetConfigType("toml")
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := v.MergeConfigMap(file.AllSettings()); err != nil {
			return fmt.Errorf("failed to merge config file %s: %w", path, err)
		}
	}
	return nil
}
