// config.go: This file contains the configuration for the sheet catalog
// backend. It defines the settings struct and the viper-based loading logic.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment names recognized by the application.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DatabaseSettings contains connection pool configuration for the database.
type DatabaseSettings struct {
	URL             string        // connection URL, postgres:// or sqlite://
	MaxOpenConns    int           // maximum open connections in the pool
	MaxIdleConns    int           // idle connections kept for reuse
	ConnMaxIdleTime time.Duration // idle connection reclamation
	ConnectTimeout  time.Duration // connection acquire timeout
}

// JWTSettings contains token signing configuration.
type JWTSettings struct {
	Secret    string        // shared HMAC secret, required
	ExpiresIn time.Duration // token lifetime, default 900s
}

// CORSSettings contains the allowed origin list for browser clients.
type CORSSettings struct {
	AllowedOrigins []string
}

// RateLimitSettings bounds request rates on the auth endpoints.
type RateLimitSettings struct {
	Enabled bool
	PerMin  int // requests per minute per client IP
}

// Settings holds the full runtime configuration.
type Settings struct {
	Port        string
	Environment string
	LogLevel    string
	Database    DatabaseSettings
	CORS        CORSSettings
	JWT         JWTSettings
	RateLimit   RateLimitSettings
}

// IsProduction reports whether the server runs with production error
// disclosure rules.
func (s *Settings) IsProduction() bool {
	return s.Environment == EnvProduction
}

// Load reads configuration from an optional config.yaml and the environment.
// Environment variables take the names the deployment already uses (PORT,
// NODE_ENV, DATABASE_URL, ALLOWED_ORIGINS, JWT_SECRET, JWT_EXPIRES_IN,
// LOG_LEVEL) so the service is a drop-in replacement.
func Load() (*Settings, error) {
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{
		Port:        viper.GetString("server.port"),
		Environment: viper.GetString("server.environment"),
		LogLevel:    viper.GetString("log.level"),
		Database: DatabaseSettings{
			URL:             viper.GetString("database.url"),
			MaxOpenConns:    viper.GetInt("database.maxopenconns"),
			MaxIdleConns:    viper.GetInt("database.maxidleconns"),
			ConnMaxIdleTime: viper.GetDuration("database.connmaxidletime"),
			ConnectTimeout:  viper.GetDuration("database.connecttimeout"),
		},
		CORS: CORSSettings{
			AllowedOrigins: splitOrigins(viper.GetString("cors.allowedorigins")),
		},
		JWT: JWTSettings{
			Secret:    viper.GetString("jwt.secret"),
			ExpiresIn: time.Duration(viper.GetInt("jwt.expiresin")) * time.Second,
		},
		RateLimit: RateLimitSettings{
			Enabled: viper.GetBool("ratelimit.enabled"),
			PerMin:  viper.GetInt("ratelimit.permin"),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks the invariants startup depends on.
func (s *Settings) Validate() error {
	if s.JWT.Secret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if s.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}
	if s.Environment != EnvDevelopment && s.Environment != EnvProduction {
		return fmt.Errorf("unsupported environment: %s", s.Environment)
	}
	if s.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("invalid JWT_EXPIRES_IN: %s", s.JWT.ExpiresIn)
	}
	return nil
}

// initViper sets defaults, binds environment variables and reads the optional
// configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.environment", EnvDevelopment)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("database.maxopenconns", 10)
	viper.SetDefault("database.maxidleconns", 2)
	viper.SetDefault("database.connmaxidletime", time.Minute)
	viper.SetDefault("database.connecttimeout", 5*time.Second)
	viper.SetDefault("cors.allowedorigins", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("jwt.expiresin", 900)
	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.permin", 5)

	bindings := map[string]string{
		"server.port":        "PORT",
		"server.environment": "NODE_ENV",
		"log.level":          "LOG_LEVEL",
		"database.url":       "DATABASE_URL",
		"database.maxopenconns": "DB_MAX_OPEN_CONNS",
		"database.maxidleconns": "DB_MAX_IDLE_CONNS",
		"cors.allowedorigins":   "ALLOWED_ORIGINS",
		"jwt.secret":            "JWT_SECRET",
		"jwt.expiresin":         "JWT_EXPIRES_IN",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, the environment is authoritative.
	}

	return nil
}

// splitOrigins parses the comma-separated ALLOWED_ORIGINS value.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
