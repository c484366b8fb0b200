package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rjoshi/gradevault/internal/pkg/ratelimit"
)

// Config holds the full application configuration. It is built once at
// startup and handed to components by reference; nothing mutates it after
// LoadConfig returns.
type Config struct {
	Server struct {
		Port      string `yaml:"port" env:"SERVER_PORT"`
		Mode      string `yaml:"mode" env:"SERVER_MODE"`
		StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`
	} `yaml:"server"`

	Database struct {
		// URL, when set, wins over the discrete fields below.
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	CAS struct {
		ServerURL   string `yaml:"server_url" env:"CAS_SERVER_URL"`
		HostBaseURL string `yaml:"host_base_url" env:"HOST_BASE_URL"`
		FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL"`
	} `yaml:"cas"`

	Token struct {
		Secret   string `yaml:"secret" env:"SECRET_KEY"`
		Lifetime string `yaml:"lifetime" env:"TOKEN_LIFETIME"`
		Issuer   string `yaml:"issuer" env:"TOKEN_ISSUER"`
	} `yaml:"token"`

	RateLimit struct {
		Default  string `yaml:"default" env:"RATE_LIMIT_DEFAULT"`
		Grades   string `yaml:"grades" env:"RATE_LIMIT_GRADES"`
		HasLogin string `yaml:"has_login" env:"RATE_LIMIT_HAS_LOGIN"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig builds configuration from defaults, an optional YAML file, and
// environment variable overrides, then validates the result.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8000"
	config.Server.Mode = "development"
	config.Server.StaticDir = "web"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "gradevault"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Token.Lifetime = "15m"
	config.Token.Issuer = "gradevault"

	config.RateLimit.Default = "30/minute"
	config.RateLimit.Grades = "10/minute"
	config.RateLimit.HasLogin = "120/minute"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig rejects configurations the service cannot safely start
// with. The signing secret and the CAS/frontend URLs have no safe defaults.
func validateConfig(config *Config) error {
	if config.Token.Secret == "" {
		return fmt.Errorf("token signing secret is required")
	}
	if config.CAS.ServerURL == "" {
		return fmt.Errorf("CAS server URL is required")
	}
	if config.CAS.HostBaseURL == "" {
		return fmt.Errorf("host base URL is required")
	}
	if config.CAS.FrontendURL == "" {
		return fmt.Errorf("frontend URL is required")
	}

	if _, err := time.ParseDuration(config.Token.Lifetime); err != nil {
		return fmt.Errorf("invalid token lifetime format: %w", err)
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime format: %w", err)
	}

	for name, rateString := range map[string]string{
		"default":   config.RateLimit.Default,
		"grades":    config.RateLimit.Grades,
		"has_login": config.RateLimit.HasLogin,
	} {
		if _, _, err := ratelimit.ParseRate(rateString); err != nil {
			return fmt.Errorf("invalid %s rate limit: %w", name, err)
		}
	}

	return nil
}

// TokenLifetime returns the parsed session token lifetime. The format was
// already checked by validateConfig.
func (c *Config) TokenLifetime() time.Duration {
	d, err := time.ParseDuration(c.Token.Lifetime)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// GetPostgresConnectionString returns the postgres connection string,
// preferring the DATABASE_URL-style override when present.
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
