package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port           string        `yaml:"port" env:"PORT" validate:"required,numeric"`
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogJSON        bool          `yaml:"log_json" env:"LOG_JSON"`
	SecureCookies  bool          `yaml:"secure_cookies" env:"SECURE_COOKIES"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `yaml:"write_timeout" validate:"required"`
	AllowedOrigins []string      `yaml:"allowed_origins"` // CORS origins for /api/v1
	Storage        Storage       `yaml:"storage"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" validate:"required,oneof=postgres sqlite memory"`
	SqlitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" validate:"required_if=Driver sqlite"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host" env:"PG_HOST" validate:"required"`
	Port     int    `yaml:"port" env:"PG_PORT" validate:"required"`
	User     string `yaml:"user" env:"PG_USER" validate:"required"`
	Password string `yaml:"password" env:"PG_PASSWORD"`
	Dbname   string `yaml:"dbname" env:"PG_DBNAME" validate:"required"`
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml (required) and private.yaml (optional) from configFolder,
// applies environment overrides and validates the result.
func Load(configFolder string) (*Config, error) {
	var cfg Config
	if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
		return nil, err
	}

	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		if err := loadPath(privatePath, &cfg.Private); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("can't stat config file %s: %w", privatePath, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return fmt.Errorf("invalid public config: %w", err)
	}
	// pg credentials only matter when postgres is the backend
	if c.Public.Storage.Driver == DriverPostgres {
		if err := validate.Struct(c.Private.Pg); err != nil {
			return fmt.Errorf("invalid pg config: %w", err)
		}
	}
	return nil
}
