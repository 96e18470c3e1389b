package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	API      APIConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LogLevel slog.Level
}

type ServerConfig struct {
	Port            string
	GinMode         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	TokenFile string
}

type DatabaseConfig struct {
	URL     string
	Host    string
	Port    string
	User    string
	Pass    string
	Name    string
	SSLMode string
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// Enabled reports whether a Postgres connection was configured at all.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != "" || d.Host != ""
}

// DSN prefers DATABASE_URL and falls back to the individual DB_* variables.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Pass, d.Name, d.SSLMode)
}

var defaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("PORT", "8090")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("JETSTAY_API_URL", "http://localhost:8080")
	v.SetDefault("JETSTAY_API_TIMEOUT", 30*time.Second)
	v.SetDefault("JETSTAY_TOKEN_FILE", defaultTokenFile())
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "jetstay")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CACHE_TTL", 10*time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			GinMode:         v.GetString("GIN_MODE"),
			AllowedOrigins:  origins(v.GetString("FRONTEND_URL")),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(v.GetString("JETSTAY_API_URL"), "/"),
			Timeout:   v.GetDuration("JETSTAY_API_TIMEOUT"),
			TokenFile: v.GetString("JETSTAY_TOKEN_FILE"),
		},
		Database: DatabaseConfig{
			URL:     v.GetString("DATABASE_URL"),
			Host:    v.GetString("DB_HOST"),
			Port:    v.GetString("DB_PORT"),
			User:    v.GetString("DB_USER"),
			Pass:    v.GetString("DB_PASSWORD"),
			Name:    v.GetString("DB_NAME"),
			SSLMode: v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("REDIS_URL"),
			CacheTTL: v.GetDuration("CACHE_TTL"),
		},
		LogLevel: level,
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("JETSTAY_API_URL must not be empty")
	}
	return cfg, nil
}

// origins appends the comma separated FRONTEND_URL list to the local dev origins.
func origins(raw string) []string {
	out := append([]string(nil), defaultOrigins...)
	for _, u := range strings.Split(raw, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".jetstay", "token")
	}
	return filepath.Join(home, ".jetstay", "token")
}
