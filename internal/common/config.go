// Package common provides shared utilities for CareHub
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for CareHub
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Auth        AuthConfig    `toml:"auth"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// AuthConfig holds authentication configuration for staff sessions and the
// identity-provider proxy.
type AuthConfig struct {
	JWTSecret     string         `toml:"jwt_secret"`
	TokenExpiry   string         `toml:"token_expiry"` // duration string, default "24h"
	RequireBearer bool           `toml:"require_bearer"`
	Identity      IdentityConfig `toml:"identity"`
}

// GetTokenExpiry parses and returns the staff token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// IdentityConfig holds the external identity provider settings used by the
// OAuth pass-through flows.
type IdentityConfig struct {
	BaseURL      string `toml:"base_url"`
	TenantID     string `toml:"tenant_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Scope        string `toml:"scope"`    // explicit API scope, wins over audience
	Audience     string `toml:"audience"` // app ID URI; derives "{audience}/access_as_user"
}

// APIScope resolves the API scope with the documented precedence: the
// explicit scope setting first, then "{audience}/access_as_user", else empty.
func (c *IdentityConfig) APIScope() string {
	if c.Scope != "" {
		return c.Scope
	}
	if c.Audience != "" {
		return c.Audience + "/access_as_user"
	}
	return ""
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000/rpc",
			Namespace: "carehub",
			Database:  "carehub",
			Username:  "root",
			Password:  "root",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Auth: AuthConfig{
			JWTSecret:     "dev-jwt-secret-change-in-production",
			TokenExpiry:   "24h",
			RequireBearer: false,
			Identity: IdentityConfig{
				BaseURL: "https://login.microsoftonline.com",
			},
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// identityEnvKeys maps each logical identity setting to its accepted
// environment variable spellings, in precedence order. Deployments have
// historically used several naming forms; the first non-empty value wins.
var identityEnvKeys = map[string][]string{
	"tenant_id":     {"CAREHUB_AZURE_TENANT_ID", "AZURE_AD_TENANT_ID", "AZURE_TENANT_ID"},
	"client_id":     {"CAREHUB_AZURE_CLIENT_ID", "AZURE_AD_CLIENT_ID", "AZURE_CLIENT_ID"},
	"client_secret": {"CAREHUB_AZURE_CLIENT_SECRET", "AZURE_AD_CLIENT_SECRET", "AZURE_CLIENT_SECRET"},
	"scope":         {"CAREHUB_AZURE_SCOPE", "AZURE_AD_SCOPE"},
	"audience":      {"CAREHUB_AZURE_AUDIENCE", "AZURE_AD_AUDIENCE"},
}

// ResolveIdentitySetting returns the first non-empty environment value for
// the named identity setting, or fallback when none is set.
func ResolveIdentitySetting(name, fallback string) string {
	for _, envName := range identityEnvKeys[name] {
		if v := os.Getenv(envName); v != "" {
			return v
		}
	}
	return fallback
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CAREHUB_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CAREHUB_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CAREHUB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("CAREHUB_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if addr := os.Getenv("CAREHUB_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if ns := os.Getenv("CAREHUB_STORAGE_NAMESPACE"); ns != "" {
		config.Storage.Namespace = ns
	}
	if db := os.Getenv("CAREHUB_STORAGE_DATABASE"); db != "" {
		config.Storage.Database = db
	}
	if user := os.Getenv("CAREHUB_STORAGE_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("CAREHUB_STORAGE_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}

	// Auth overrides
	if v := os.Getenv("CAREHUB_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("CAREHUB_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
	if v := os.Getenv("CAREHUB_AUTH_REQUIRE_BEARER"); v != "" {
		config.Auth.RequireBearer = strings.EqualFold(v, "true") || v == "1"
	}

	// Identity settings resolve through their accepted spellings
	id := &config.Auth.Identity
	id.TenantID = ResolveIdentitySetting("tenant_id", id.TenantID)
	id.ClientID = ResolveIdentitySetting("client_id", id.ClientID)
	id.ClientSecret = ResolveIdentitySetting("client_secret", id.ClientSecret)
	id.Scope = ResolveIdentitySetting("scope", id.Scope)
	id.Audience = ResolveIdentitySetting("audience", id.Audience)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
