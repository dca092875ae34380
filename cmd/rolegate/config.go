package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lborres/rolegate/core"
)

const envPrefix = "ROLEGATE"

// AppConfig is the resolved configuration: defaults, then the optional YAML
// file, then ROLEGATE_* environment variables, then flags.
type AppConfig struct {
	Storage StorageConfig
	Session core.SessionConfig
	Users   UsersConfig
	Log     LogConfig
	Server  ServerConfig
	Events  []core.Resource
}

type StorageConfig struct {
	Backend  string // file, memory or redis
	Path     string
	RedisURL string
	Prefix   string
	Key      string
}

type UsersConfig struct {
	Source  string // static or postgres
	DSN     string
	Migrate bool
	Seed    bool
}

type LogConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Addr         string
	BasePath     string
	SecureCookie bool
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".rolegate", "storage.json")
	}
	return filepath.Join(dir, "rolegate", "storage.json")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("storage.redis_url", "redis://localhost:6379/0")
	v.SetDefault("storage.prefix", "rolegate:")
	v.SetDefault("storage.key", core.DefaultStorageKey)

	v.SetDefault("session.max_age", core.DefaultMaxAge)

	v.SetDefault("users.source", "static")
	v.SetDefault("users.dsn", "")
	v.SetDefault("users.migrate", false)
	v.SetDefault("users.seed", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("server.secure_cookie", false)
}

// loadConfig reads configuration into v. Flags must already be bound.
func loadConfig(v *viper.Viper, cfgFile string) (*AppConfig, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	cfg := &AppConfig{
		Storage: StorageConfig{
			Backend:  strings.ToLower(v.GetString("storage.backend")),
			Path:     v.GetString("storage.path"),
			RedisURL: v.GetString("storage.redis_url"),
			Prefix:   v.GetString("storage.prefix"),
			Key:      v.GetString("storage.key"),
		},
		Session: core.SessionConfig{
			MaxAge: v.GetDuration("session.max_age"),
		},
		Users: UsersConfig{
			Source:  strings.ToLower(v.GetString("users.source")),
			DSN:     v.GetString("users.dsn"),
			Migrate: v.GetBool("users.migrate"),
			Seed:    v.GetBool("users.seed"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Server: ServerConfig{
			Addr:         v.GetString("server.addr"),
			BasePath:     v.GetString("server.base_path"),
			SecureCookie: v.GetBool("server.secure_cookie"),
		},
	}
	if err := v.UnmarshalKey("events", &cfg.Events); err != nil {
		return nil, fmt.Errorf("invalid events: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	var errs []error

	switch c.Storage.Backend {
	case "file":
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the file backend"))
		}
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("storage.redis_url is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.backend %q", c.Storage.Backend))
	}

	switch c.Users.Source {
	case "static":
	case "postgres":
		if c.Users.DSN == "" {
			errs = append(errs, errors.New("users.dsn is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown users.source %q", c.Users.Source))
	}

	if c.Session.MaxAge <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s", core.ErrInvalidMaxAge, c.Session.MaxAge))
	}

	for i, ev := range c.Events {
		if ev.ID == "" {
			errs = append(errs, fmt.Errorf("events[%d]: id is required", i))
		}
		if ev.Status == "" {
			c.Events[i].Status = core.StatusPublished
		}
	}

	return errors.Join(errs...)
}
