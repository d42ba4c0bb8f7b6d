package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server modes
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		// URL takes precedence over the discrete connection fields when set
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

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Security struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_WORK_FACTOR"`
	} `yaml:"security"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Seed struct {
		AdminUsername string `yaml:"admin_username" env:"SEED_ADMIN_USERNAME"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and the environment still apply.
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

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3001"
	config.Server.Mode = ModeDevelopment
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "jobly"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.Secret = "secret-dev"
	config.JWT.TokenExpiration = "24h"
	config.JWT.Issuer = "jobly"

	config.Security.BcryptCost = 12

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.CORS.AllowedOrigins = []string{"*"}
}

// validateConfig collects every problem instead of stopping at the first one
func validateConfig(config *Config) error {
	var errs []error

	switch config.Server.Mode {
	case ModeDevelopment, ModeProduction, ModeTest:
	default:
		errs = append(errs, fmt.Errorf("server mode must be one of development, production, test; got %q", config.Server.Mode))
	}

	if config.Database.URL == "" && config.Database.Host == "" {
		errs = append(errs, errors.New("database host or url is required"))
	}

	if config.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT secret is required"))
	}
	if config.Server.Mode == ModeProduction && config.JWT.Secret == "secret-dev" {
		errs = append(errs, errors.New("JWT secret must be changed in production"))
	}

	for name, value := range map[string]string{
		"JWT token expiration":         config.JWT.TokenExpiration,
		"database connection lifetime": config.Database.ConnMaxLifetime,
		"server read timeout":          config.Server.ReadTimeout,
		"server write timeout":         config.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s format: %w", name, err))
		}
	}

	if config.Database.MaxOpenConns < 1 {
		errs = append(errs, errors.New("database max open connections must be at least 1"))
	}

	return errors.Join(errs...)
}

// IsTest reports whether the server runs in test mode
func (c *Config) IsTest() bool {
	return c.Server.Mode == ModeTest
}

// PasswordCost is the bcrypt work factor; test mode always uses the cheapest one
func (c *Config) PasswordCost() int {
	if c.IsTest() {
		return 1
	}
	return c.Security.BcryptCost
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dbName := c.Database.DBName
	if c.IsTest() && !strings.HasSuffix(dbName, "_test") {
		dbName += "_test"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     dbName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}
