package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server modes
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Throttle backends
const (
	ThrottleBackendMemory = "memory"
	ThrottleBackendRedis  = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`

		// Proxies allowed to set X-Forwarded-For; when empty the peer address is the client
		TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
	} `yaml:"server"`

	Database struct {
		Host            string   `yaml:"host" env:"DB_HOSTNAME"`
		Port            string   `yaml:"port" env:"DB_PORT"`
		User            string   `yaml:"user" env:"DB_USERNAME"`
		Password        string   `yaml:"password" env:"DB_PASSWORD"`
		DBName          string   `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string   `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int      `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int      `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		AutoMigrate     bool     `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	JWT struct {
		Secret                string   `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration Duration `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string   `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Session struct {
		CookieName   string   `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		CookieMaxAge Duration `yaml:"cookie_max_age" env:"SESSION_COOKIE_MAX_AGE"`
	} `yaml:"session"`

	Security struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	} `yaml:"security"`

	Throttle struct {
		Backend     string   `yaml:"backend" env:"THROTTLE_BACKEND"`
		Window      Duration `yaml:"window" env:"THROTTLE_WINDOW"`
		MaxAttempts int      `yaml:"max_attempts" env:"THROTTLE_MAX_ATTEMPTS"`
	} `yaml:"throttle"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
	} `yaml:"metrics"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; env vars alone are enough to run.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = ModeProduction

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "teacherauth"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = Duration(time.Hour)
	config.Database.AutoMigrate = true

	// JWT defaults
	config.JWT.AccessTokenExpiration = Duration(time.Hour)
	config.JWT.Issuer = "teacherauth"

	// Session cookie defaults
	config.Session.CookieName = "authToken"
	config.Session.CookieMaxAge = Duration(24 * time.Hour)

	config.Security.BcryptCost = 12

	// Login throttle defaults
	config.Throttle.Backend = ThrottleBackendMemory
	config.Throttle.Window = Duration(15 * time.Minute)
	config.Throttle.MaxAttempts = 5

	config.Redis.Addr = "localhost:6379"

	config.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	config.Metrics.Enabled = true

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.JWT.AccessTokenExpiration <= 0 {
		return fmt.Errorf("JWT access token expiration must be positive")
	}

	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if config.Session.CookieMaxAge <= 0 {
		return fmt.Errorf("session cookie max age must be positive")
	}

	if config.Throttle.Window <= 0 {
		return fmt.Errorf("throttle window must be positive")
	}

	if config.Throttle.MaxAttempts <= 0 {
		return fmt.Errorf("throttle max attempts must be positive")
	}

	switch strings.ToLower(config.Throttle.Backend) {
	case ThrottleBackendMemory:
	case ThrottleBackendRedis:
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis throttle backend")
		}
	default:
		return fmt.Errorf("unknown throttle backend %q", config.Throttle.Backend)
	}

	return nil
}

// IsDevelopment reports whether the server runs in local development mode.
// Anything but an explicit "development" is treated as production.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Mode, ModeDevelopment)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
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
