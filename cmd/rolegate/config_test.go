package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lborres/rolegate/core"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, core.DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "static", cfg.Users.Source)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Events)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("ROLEGATE_STORAGE_BACKEND", "Memory")
	t.Setenv("ROLEGATE_SESSION_MAX_AGE", "90m")

	cfg, err := loadConfig(viper.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 90*time.Minute, cfg.Session.MaxAge)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolegate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: redis
  redis_url: redis://cache:6379/2
session:
  max_age: 2h
log:
  level: debug
events:
  - id: jazz
    title: Jazz Night
    ownerId: organizer@test.com
  - id: fair
    title: Book Fair
    ownerId: other@test.com
    status: pending
`), 0o600))

	cfg, err := loadConfig(viper.New(), path)

	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis://cache:6379/2", cfg.Storage.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.Len(t, cfg.Events, 2)
	assert.Equal(t, core.Resource{ID: "jazz", Title: "Jazz Night", OwnerID: "organizer@test.com", Status: core.StatusPublished}, cfg.Events[0])
	assert.True(t, cfg.Events[1].Pending())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"ROLEGATE_STORAGE_BACKEND": "cookie"}},
		{name: "unknown user source", env: map[string]string{"ROLEGATE_USERS_SOURCE": "ldap"}},
		{name: "postgres without dsn", env: map[string]string{"ROLEGATE_USERS_SOURCE": "postgres"}},
		{name: "zero max age", env: map[string]string{"ROLEGATE_SESSION_MAX_AGE": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := loadConfig(viper.New(), "")

			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
