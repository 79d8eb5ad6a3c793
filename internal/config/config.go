package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Environment string            `yaml:"environment" env:"APP_ENV" env-default:"development"`
	HTTP        HTTPConfig        `yaml:"http"`
	Storage     StorageConfig     `yaml:"storage"`
	Session     SessionConfig     `yaml:"session"`
	Redis       RedisConfig       `yaml:"redis"`
	Accounts    map[string]string `yaml:"accounts" env:"ACCOUNTS" env-default:"admin:qwerty"`
}

type HTTPConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite3"`
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"coursehub.db"`
	NoSeed bool   `yaml:"no_seed" env:"DB_NO_SEED"`
}

type SessionConfig struct {
	Name            string `yaml:"name" env:"SESSION_NAME" env-default:"coursehub"`
	Secret          string `yaml:"secret" env:"SESSION_SECRET" env-default:"a secret with minimum length of 32 characters"`
	Store           string `yaml:"store" env:"SESSION_STORE" env-default:"filesystem"`
	Dir             string `yaml:"dir" env:"SESSION_DIR"`
	MaxAge          int    `yaml:"max_age" env:"SESSION_MAX_AGE" env-default:"86400"`
	CleanupSchedule string `yaml:"cleanup_schedule" env:"SESSION_CLEANUP_SCHEDULE" env-default:"0 */30 * * * *"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"127.0.0.1:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	SessionFilesystem = "filesystem"
	SessionRedis      = "redis"
	SessionCookie     = "cookie"
)

// Load reads filename (a missing file is not an error), then applies
// environment overrides and defaults for anything left unset.
func Load(filename string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	switch c.Session.Store {
	case SessionFilesystem, SessionRedis, SessionCookie:
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}

	if len(c.Session.Secret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}

	return nil
}
