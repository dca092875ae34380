package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lborres/rolegate"
	pgxadapter "github.com/lborres/rolegate/adapters/pgx"
	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/crypto"
	"github.com/lborres/rolegate/pkg/directory"
	"github.com/lborres/rolegate/pkg/logging"
	"github.com/lborres/rolegate/pkg/storage"
)

// app holds what every command needs once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg     *AppConfig
	log     logging.Logger
	gate    *rolegate.Gate
	closers []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "rolegate",
		Short: "Role-based session and permission gate for the events site",
		Long: `rolegate keeps a "current user" session in a local store, checks
permissions against the Guest < User < Organizer < Admin ladder, and computes
what the site should show for the current session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	flags.String("storage", "", "storage backend: file, memory or redis")
	flags.String("storage-path", "", "session file for the file backend")
	flags.String("redis-url", "", "redis URL for the redis backend")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	_ = a.v.BindPFlag("storage.backend", flags.Lookup("storage"))
	_ = a.v.BindPFlag("storage.path", flags.Lookup("storage-path"))
	_ = a.v.BindPFlag("storage.redis_url", flags.Lookup("redis-url"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newCanCmd(a),
		newPlanCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.log = log

	store, err := a.openStorage()
	if err != nil {
		return err
	}
	users, hasher, err := a.openUsers(cmd)
	if err != nil {
		return err
	}

	maxAge := cfg.Session
	a.gate, err = rolegate.New(rolegate.Config{
		Storage:        store,
		Users:          users,
		SessionConfig:  &maxAge,
		PasswordHasher: hasher,
		Logger:         log,
		StorageKey:     cfg.Storage.Key,
		Events:         cfg.Events,
	})
	return err
}

func (a *app) openStorage() (core.KeyValueStorage, error) {
	switch a.cfg.Storage.Backend {
	case "memory":
		return storage.NewMemory(storage.MemoryConfig{}), nil
	case "redis":
		client, err := storage.DialRedis(a.cfg.Storage.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, client)
		return storage.NewRedis(client, storage.RedisConfig{
			Prefix: a.cfg.Storage.Prefix,
			TTL:    a.cfg.Session.MaxAge,
		}), nil
	default:
		a.log.Debug("using file storage", "path", a.cfg.Storage.Path)
		return storage.NewFile(a.cfg.Storage.Path), nil
	}
}

func (a *app) openUsers(cmd *cobra.Command) (core.UserStorage, crypto.PasswordHandler, error) {
	if a.cfg.Users.Source != "postgres" {
		return directory.Default(), crypto.Plaintext{}, nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := pgxadapter.Connect(ctx, a.cfg.Users.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	a.closers = append(a.closers, closerFunc(pool.Close))

	users := pgxadapter.New(pool)
	hasher := crypto.NewArgon2()
	if a.cfg.Users.Migrate {
		if err := users.Migrate(ctx); err != nil {
			return nil, nil, err
		}
	}
	if a.cfg.Users.Seed {
		if err := users.Seed(ctx, directory.Default().Users(), hasher); err != nil {
			return nil, nil, err
		}
		a.log.Info("seeded reference users")
	}
	return users, hasher, nil
}

func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
