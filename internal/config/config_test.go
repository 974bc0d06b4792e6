package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray skillsync.yaml
// is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "data/skillsync.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 8760*time.Hour, cfg.Session.TTL)
	assert.Zero(t, cfg.Session.LoginDelay)
	assert.Equal(t, "admin@skillsync.com", cfg.AdminEmail)
	assert.Equal(t, int64(5<<20), cfg.MaxPhotoBytes)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("SKILLSYNC_STORAGE_DRIVER", "Redis")
	t.Setenv("SKILLSYNC_STORAGE_REDIS_ADDR", "cache:6379")
	t.Setenv("SKILLSYNC_SESSION_LOGINDELAY", "1500ms")
	t.Setenv("SKILLSYNC_CORSORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 1500*time.Millisecond, cfg.Session.LoginDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	yaml := []byte(`
environment: production
http:
  port: 9090
storage:
  driver: memory
session:
  secret: a-production-secret-value
  securecookie: true
adminemail: root@skillsync.com
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skillsync.yaml"), yaml, 0o600))

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Session.SecureCookie)
	assert.Equal(t, "root@skillsync.com", cfg.AdminEmail)
}

func TestLoad_ExplicitFileAndOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 7000\n"), 0o600))

	v := viper.New()
	v.Set("config", path)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)

	v = viper.New()
	v.Set("config", path)
	v.Set("http.port", 7100)
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.HTTP.Port, "explicit values beat the file")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	v := viper.New()
	v.Set("config", "does-not-exist.yaml")

	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Environment:   "development",
			HTTP:          HTTPConfig{Port: 8080},
			Storage:       StorageConfig{Driver: DriverSQLite, SQLitePath: "x.db"},
			Session:       SessionConfig{Secret: DevSecret, TTL: time.Hour},
			MaxPhotoBytes: 1024,
			RateLimit:     RateLimitConfig{RPS: 1, Burst: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "staging" }, "environment"},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "unknown storage driver"},
		{"sqlite without path", func(c *Config) { c.Storage.SQLitePath = "" }, "sqlitepath"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = DriverPostgres }, "postgresdsn"},
		{"redis without addr", func(c *Config) { c.Storage.Driver = DriverRedis }, "redis.addr"},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, "at least 16"},
		{"dev secret in production", func(c *Config) { c.Environment = "production" }, "must be set in production"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session.ttl"},
		{"negative delay", func(c *Config) { c.Session.LoginDelay = -time.Second }, "logindelay"},
		{"zero photo size", func(c *Config) { c.MaxPhotoBytes = 0 }, "maxphotobytes"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "ratelimit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
