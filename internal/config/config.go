package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "catalogctl", "config.yml")
}

// SessionPath returns where the access token and user profile are cached.
func SessionPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "catalogctl", "session.yml")
}

// Load reads the config from disk (or env). A missing file is fine — the
// defaults point at a local server.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("defaults.per_page", 0)

	v.SetEnvPrefix("CATALOGCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("CATALOGCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Log.File = ExpandHome(cfg.Log.File)
	cfg.Cache.Dir = ExpandHome(cfg.Cache.Dir)
	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultLogFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "catalogctl", "catalogctl.log")
}

func defaultCacheDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "catalogctl", "covers")
}
