package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-places/internal/server/config"
)

const testKey = "supersecretkeysupersecretkey123456"

func minimalValidConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.DSN = "postgres://u:p@localhost:5432/places?sslmode=disable"
	cfg.Auth.JWT.SigningKey = testKey
	cfg.Geocoding.APIKey = "google-key"
	config.ApplyDefaults(cfg)
	return cfg
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestExpandEnvStrict_ReplacesExistingEnv(t *testing.T) {
	t.Setenv("JWT_KEY", testKey)

	out := config.ExpandEnvStrict(`signing_key: "${JWT_KEY}"`)
	require.Equal(t, `signing_key: "`+testKey+`"`, out)
}

func TestExpandEnvStrict_LeavesUnknownEnvAsIs(t *testing.T) {
	in := `signing_key: "${MISSING_ENV}"`
	require.Equal(t, in, config.ExpandEnvStrict(in))
}

func TestApplyDefaults_SetsExpectedDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 5000, cfg.Server.Port)
	require.Equal(t, time.Hour, cfg.Auth.AccessTTL)
	require.Equal(t, "HS256", cfg.Auth.JWT.Algorithm)
	require.Equal(t, "bcrypt", cfg.Password.Hasher)
	require.Equal(t, 12, cfg.Password.Bcrypt.Cost)
	require.Equal(t, int64(500000), cfg.Uploads.MaxFileBytes)
	require.Equal(t, "uploads/images", cfg.Uploads.Dir)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, []string{"GET", "POST", "PATCH", "DELETE"}, cfg.CORS.AllowedMethods)
	require.Equal(t, "ip", cfg.Security.RateLimit.Key)
	require.Equal(t, "file://migrations/postgres", cfg.Migrations.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		errSub string
	}{
		{"ok", func(c *config.Config) {}, ""},
		{"host required", func(c *config.Config) { c.Server.Host = "" }, "server.host"},
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }, "server.port"},
		{"tls needs files", func(c *config.Config) { c.TLS.Enabled = true }, "tls.cert_file"},
		{"tls 1.1 rejected", func(c *config.Config) {
			c.TLS = config.TLSConfig{Enabled: true, CertFile: "c", KeyFile: "k", MinVersion: "1.1"}
		}, "небезопасен"},
		{"dsn required", func(c *config.Config) { c.DB.DSN = "" }, "db.dsn"},
		{"short key", func(c *config.Config) { c.Auth.JWT.SigningKey = "short" }, "слишком короткий"},
		{"unexpanded key", func(c *config.Config) { c.Auth.JWT.SigningKey = "${JWT_KEY}" }, "JWT_KEY"},
		{"wrong alg", func(c *config.Config) { c.Auth.JWT.Algorithm = "RS256" }, "HS256"},
		{"unknown hasher", func(c *config.Config) { c.Password.Hasher = "md5" }, "password.hasher"},
		{"argon2 without params", func(c *config.Config) { c.Password.Hasher = "argon2id" }, "password.argon2"},
		{"bcrypt cost range", func(c *config.Config) { c.Password.Bcrypt.Cost = 40 }, "bcrypt.cost"},
		{"geocoding key", func(c *config.Config) { c.Geocoding.APIKey = "" }, "geocoding.api_key"},
		{"upload limit", func(c *config.Config) { c.Uploads.MaxFileBytes = -1 }, "max_file_bytes"},
		{"rate limit needs redis", func(c *config.Config) {
			c.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 5, Burst: 10, Key: "ip"}
		}, "redis.url"},
		{"rate limit bad key", func(c *config.Config) {
			c.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 5, Burst: 10, Key: "token"}
			c.Redis.URL = "redis://localhost:6379/0"
		}, "ip|user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalValidConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errSub == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.errSub), "got %q", err.Error())
		})
	}
}

func TestLoad_ExpandsEnvAndAppliesOverrides(t *testing.T) {
	t.Setenv("JWT_KEY", testKey)
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_USER", "places")
	t.Setenv("DB_PASSWORD", "p@ss")
	t.Setenv("DB_HOST", "db:5432")
	t.Setenv("DB_NAME", "placesdb")

	path := writeConfig(t, `
env: prod
server:
  host: 127.0.0.1
auth:
  issuer: places
  jwt:
    signing_key: "${JWT_KEY}"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
	require.Equal(t, testKey, cfg.Auth.JWT.SigningKey)
	require.Equal(t, "google-key", cfg.Geocoding.APIKey)
	require.Equal(t, "postgres://places:p%40ss@db:5432/placesdb?sslmode=disable", cfg.DB.DSN)
}

func TestLoad_DSNFromYAMLWins(t *testing.T) {
	t.Setenv("JWT_KEY", testKey)
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("DB_NAME", "ignored")

	path := writeConfig(t, `
db:
  dsn: postgres://yaml@localhost/places
auth:
  jwt:
    signing_key: "${JWT_KEY}"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "postgres://yaml@localhost/places", cfg.DB.DSN)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := config.Parse([]byte("server: [unclosed"))
	require.Error(t, err)
}
