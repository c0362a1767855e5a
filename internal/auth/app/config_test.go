package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

func validConfig() Config {
	return Config{
		Issuer:            "storefront-auth",
		Audience:          []string{"storefront"},
		SigningKeyFile:    "signing.key",
		AccessTokenTTL:    time.Hour,
		RefreshTokenTTL:   7 * 24 * time.Hour,
		IDPrefix:          "usr",
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		Port:              8080,
		Env:               "dev",
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg := LoadConfig()
	require.Equal(t, "storefront-auth", cfg.Issuer)
	require.Equal(t, []string{"storefront"}, cfg.Audience)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, "usr", cfg.IDPrefix)
	require.Equal(t, "Customer", cfg.DefaultRole)
	require.Equal(t, 5, cfg.MaxFailedAttempts)
	require.Equal(t, 15*time.Minute, cfg.LockoutDuration)
	require.True(t, cfg.SecureCookies)
	require.False(t, cfg.DevRevealCodes)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_AUDIENCE", "web, mobile ,")
	t.Setenv("AUTH_ACCESS_TOKEN_MINUTES", "15")
	t.Setenv("AUTH_REFRESH_TOKEN_DAYS", "30")
	t.Setenv("AUTH_SECURE_COOKIES", "false")
	t.Setenv("AUTH_STAMP_CACHE_TTL", "90s")
	t.Setenv("HOUSEKEEPING_INTERVAL", "30")

	cfg := LoadConfig()
	require.Equal(t, []string{"web", "mobile"}, cfg.Audience)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	require.False(t, cfg.SecureCookies)
	require.Equal(t, 90*time.Second, cfg.StampCacheTTL)
	require.Equal(t, 30*time.Minute, cfg.HousekeepingInterval)
}

func TestLoadConfig_DotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("AUTH_ID_PREFIX=cus\nAUTH_DEFAULT_ROLE=Staff\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("AUTH_DEFAULT_ROLE", "Admin")
	t.Setenv("AUTH_ID_PREFIX", "")
	os.Unsetenv("AUTH_ID_PREFIX")

	cfg := LoadConfig()
	require.Equal(t, "cus", cfg.IDPrefix)
	require.Equal(t, "Admin", cfg.DefaultRole)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short signing key", func(c *Config) { c.SigningKey = "short" }},
		{"no key source", func(c *Config) { c.SigningKeyFile = " " }},
		{"zero access ttl", func(c *Config) { c.AccessTokenTTL = 0 }},
		{"negative refresh ttl", func(c *Config) { c.RefreshTokenTTL = -time.Hour }},
		{"blank prefix", func(c *Config) { c.IDPrefix = "  " }},
		{"prefix with separator", func(c *Config) { c.IDPrefix = "us_r" }},
		{"score out of range", func(c *Config) { c.PasswordMinScore = 5 }},
		{"no lockout threshold", func(c *Config) { c.MaxFailedAttempts = 0 }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"reveal codes in prod", func(c *Config) { c.Env = "prod"; c.DevRevealCodes = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}

	require.NoError(t, validConfig().Validate())
}

func TestLoadSigningKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "signing.key")
	cfg := validConfig()
	cfg.SigningKeyFile = path

	first, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(first), 32)

	second, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, first, second)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg.SigningKey = "0123456789abcdef0123456789abcdef"
	key, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, []byte(cfg.SigningKey), key)

	signer, verifier, err := NewTokenKeys(cfg, key)
	require.NoError(t, err)
	require.NotNil(t, signer)
	require.NotNil(t, verifier)
}
