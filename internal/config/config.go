package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Spendo"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	// API is the ledger service as seen from the client.
	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"http://127.0.0.1:8080/api"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
		Secret  string        `envconfig:"API_SECRET"`
		Subject string        `envconfig:"API_SUBJECT" default:"spendo-tui"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spendo"`
	}

	Store struct {
		Driver string `envconfig:"STORE" default:"memory"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	}

	Log struct {
		Level      string `envconfig:"LOG_LEVEL" default:"info"`
		File       string `envconfig:"LOG_FILE"`
		MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"10"`
		MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
		Stderr     bool   `envconfig:"LOG_STDERR" default:"true"`
	}

	UI struct {
		DoubleTapWindow time.Duration `envconfig:"UI_DOUBLE_TAP_WINDOW" default:"300ms"`
		Currency        string        `envconfig:"UI_CURRENCY" default:"원"`
		ExportDir       string        `envconfig:"UI_EXPORT_DIR" default:"exports"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// LogLevel maps Log.Level to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(cfg.Store.Driver)

	switch cfg.Store.Driver {
	case StoreMemory, StorePostgres:
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store.Driver)
	}

	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive, got %s", cfg.API.Timeout)
	}

	return &cfg, nil
}
