package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Auth    AuthConfig    `mapstructure:"auth"`
	Proxy   ProxyConfig   `mapstructure:"proxy"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AuthConfig holds optional login credentials. When both are set the client
// upgrades the anonymous session to a user-scoped one.
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ProxyConfig holds an optional proxy endpoint and proxy-level credentials,
// applied to every request for the session's lifetime.
type ProxyConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// HTTPConfig contains transport settings
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
