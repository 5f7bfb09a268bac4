// Package config loads the runtime configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables prefixed with POSTBOARD_. A `.env` file in the
// working directory is loaded into the environment first.
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is stripped from environment variable names. The first
// underscore after it separates the section from the key, so
// POSTBOARD_SERVER_READ_TIMEOUT maps to server.read_timeout.
const EnvPrefix = "POSTBOARD_"

// Store drivers.
const (
	DriverBadger   = "badger"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the root configuration object for the application.
type Config struct {
	Env    string       `koanf:"env" yaml:"env" validate:"required,oneof=development production test"`
	Server ServerConfig `koanf:"server" yaml:"server"`
	Store  StoreConfig  `koanf:"store" yaml:"store"`
	Log    LogConfig    `koanf:"log" yaml:"log"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Host            string        `koanf:"host" yaml:"host"`
	Port            int           `koanf:"port" yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" yaml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// StoreConfig selects and locates the data store. Path is the badger
// directory; DSN is the postgres connection string.
type StoreConfig struct {
	Driver string `koanf:"driver" yaml:"driver" validate:"required,oneof=badger memory postgres"`
	Path   string `koanf:"path" yaml:"path" validate:"required_if=Driver badger"`
	DSN    string `koanf:"dsn" yaml:"dsn" validate:"required_if=Driver postgres"`
}

type LogConfig struct {
	Level string `koanf:"level" yaml:"level" validate:"required,oneof=trace debug info warn error"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverBadger,
			Path:   "data/badger",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. A path that does not exist is skipped so
// the service can run on defaults and environment alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "load environment")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
