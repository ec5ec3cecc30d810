package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/vytor/intuition/internal/logger"
)

type Config struct {
	Addr               string        `env:"ADDR" envDefault:":8080"`
	DBPath             string        `env:"DB_PATH" envDefault:"file:intuition.db"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`
	EventWorkerCount   int           `env:"EVENT_WORKER_COUNT" envDefault:"2"`
	EventQueueSize     int           `env:"EVENT_QUEUE_SIZE" envDefault:"64"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxActiveSessions  int           `env:"MAX_ACTIVE_SESSIONS" envDefault:"1000"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from a .env file (if present) and environment
// variables. Missing variables take their envDefault.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.EventWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("EVENT_WORKER_COUNT must be at least 1, got %d", c.EventWorkerCount))
	}
	if c.EventQueueSize < 1 {
		errs = append(errs, fmt.Errorf("EVENT_QUEUE_SIZE must be at least 1, got %d", c.EventQueueSize))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.MaxActiveSessions < 1 {
		errs = append(errs, fmt.Errorf("MAX_ACTIVE_SESSIONS must be at least 1, got %d", c.MaxActiveSessions))
	}
	return errors.Join(errs...)
}
