package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken      string         `envconfig:"BOT_TOKEN" required:"true"`
	AdminIDs      AdminIDs       `envconfig:"ADMIN_IDS" required:"true"`
	HTTPPort      int            `envconfig:"HTTP_PORT" default:"8080"`
	AssetsDir     string         `envconfig:"ASSETS_DIR" default:"photos"`
	ContentFile   string         `envconfig:"CONTENT_FILE"`
	Storage       string         `envconfig:"STORAGE" default:"memory"`
	SessionTTL    time.Duration  `envconfig:"SESSION_TTL" default:"24h"`
	SweepInterval time.Duration  `envconfig:"SESSION_SWEEP_INTERVAL" default:"1h"`
	LogLevel      string         `envconfig:"LOG_LEVEL" default:"info"`
	PollTimeout   time.Duration  `envconfig:"POLL_TIMEOUT" default:"10s"`
	Database      DatabaseConfig `envconfig:"DB"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"5432"`
	Name     string `envconfig:"NAME" default:"campusbot"`
	User     string `envconfig:"USER" default:"campusbot"`
	Password string `envconfig:"PASSWORD"`
}

// AdminIDs is a comma separated list of Telegram user IDs
type AdminIDs []int64

// Decode implements envconfig.Decoder
func (a *AdminIDs) Decode(value string) error {
	var ids AdminIDs
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	*a = ids
	return nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if len(c.AdminIDs) == 0 {
		return fmt.Errorf("ADMIN_IDS must list at least one user id")
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
