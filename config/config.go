package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment. A missing config
// file is fine: every setting has a default or an env binding
// (REDGIFS_AUTH_USERNAME, REDGIFS_PROXY_URL, ...).
func Load(configPath string) (*Config, error) {
	// Pick up a local .env before viper reads the environment.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("redgifs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".redgifs"))
		}

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Empty defaults keep the
// env bindings visible to Unmarshal even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password", "")

	v.SetDefault("proxy.url", "")
	v.SetDefault("proxy.username", "")
	v.SetDefault("proxy.password", "")

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user_agent", "redgifs-go")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Proxy.URL != "" {
		if _, err := url.Parse(cfg.Proxy.URL); err != nil {
			return fmt.Errorf("invalid proxy.url: %w", err)
		}
	}

	if (cfg.Auth.Username == "") != (cfg.Auth.Password == "") {
		return fmt.Errorf("auth.username and auth.password must be set together")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
