// Package config loads client configuration: where the backend lives
// and where local state (session cache, logs) is kept.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	// BackendURL is the base URL of the hosted backend project.
	BackendURL string `mapstructure:"backend_url"`
	// AnonKey is the project's public API key.
	AnonKey string `mapstructure:"anon_key"`
	// SignupRedirectURL is where the confirmation email lands users.
	SignupRedirectURL string `mapstructure:"signup_redirect_url"`
	// StateDir holds the session cache and log file.
	StateDir string `mapstructure:"state_dir"`
}

// Load reads READSHELF_* environment variables and, when present,
// ~/.readshelf/config.yaml. Environment wins.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("readshelf")
	v.AutomaticEnv()

	home, _ := os.UserHomeDir()
	defaultDir := filepath.Join(home, ".readshelf")
	v.SetDefault("state_dir", defaultDir)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"backend_url", "anon_key", "signup_redirect_url"} {
		if !v.IsSet(key) {
			v.SetDefault(key, "")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.BackendURL == "" {
		return nil, errors.New("backend_url is not configured (set READSHELF_BACKEND_URL)")
	}
	if cfg.AnonKey == "" {
		return nil, errors.New("anon_key is not configured (set READSHELF_ANON_KEY)")
	}
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) SessionCachePath() string {
	return filepath.Join(c.StateDir, "session.json")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "readshelf.log")
}
