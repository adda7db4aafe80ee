// Package config loads runtime settings from .env, an optional YAML file and
// the process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port          string        `yaml:"port"`
	Env           string        `yaml:"env"`
	StorageDriver string        `yaml:"storage_driver"`
	StoreTimeout  time.Duration `yaml:"store_timeout"`

	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Issuer string        `yaml:"issuer"`
	TTL    time.Duration `yaml:"ttl"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Port:          "8080",
		Env:           "development",
		StorageDriver: StoragePostgres,
		StoreTimeout:  3 * time.Second,
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "kanso_user",
			Name:     "kanso_db",
			SSLMode:  "disable",
			MaxConns: 25,
		},
		Redis: RedisConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    "6379",
		},
		JWT: JWTConfig{
			Issuer: "kanso-fit",
			TTL:    24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads .env (if present), then CONFIG_FILE (if set), then the
// environment, and validates the result.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.StorageDriver, "STORAGE_DRIVER")

	setString(&cfg.DB.Host, "DB_HOST")
	setString(&cfg.DB.Port, "DB_PORT")
	setString(&cfg.DB.User, "DB_USER")
	setString(&cfg.DB.Password, "DB_PASSWORD")
	setString(&cfg.DB.Name, "DB_NAME")
	setString(&cfg.DB.SSLMode, "DB_SSLMODE")

	setString(&cfg.Redis.Host, "REDIS_HOST")
	setString(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.Issuer, "JWT_ISSUER")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	var errs []error
	errs = append(errs,
		setDuration(&cfg.StoreTimeout, "STORE_TIMEOUT"),
		setDuration(&cfg.JWT.TTL, "JWT_TTL"),
		setDuration(&cfg.RateLimit.Window, "RATE_LIMIT_WINDOW"),
		setInt(&cfg.RateLimit.Requests, "RATE_LIMIT_REQUESTS"),
		setInt(&cfg.DB.MaxConns, "DB_MAX_CONNS"),
		setInt(&cfg.Redis.DB, "REDIS_DB"),
		setBool(&cfg.Redis.Enabled, "REDIS_ENABLED"),
	)
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = b
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("config: unknown storage driver %q", c.StorageDriver))
	}

	if c.Port == "" {
		errs = append(errs, errors.New("config: port is required"))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("config: store timeout must be positive"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET is required"))
	} else if c.IsProduction() && len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("config: JWT_SECRET must be at least 32 characters in production"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("config: JWT ttl must be positive"))
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("config: rate limit requests and window must be positive"))
	}
	if c.StorageDriver == StoragePostgres && (c.DB.User == "" || c.DB.Name == "") {
		errs = append(errs, errors.New("config: DB_USER and DB_NAME are required for the postgres driver"))
	}

	return errors.Join(errs...)
}
