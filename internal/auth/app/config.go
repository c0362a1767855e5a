package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/storefront/pkg/extid"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

type Config struct {
	Issuer          string        // JWT iss claim (default: storefront-auth)
	Audience        []string      // JWT aud claim, comma separated (default: storefront)
	SigningKey      string        // Optional: HS256 secret; when empty it is loaded from SigningKeyFile
	SigningKeyFile  string        // Load-or-generate secret file (default: ./signing.key)
	AccessTokenTTL  time.Duration // Access token lifetime (default: 60m)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 7 days)

	IDPrefix          string        // External id prefix for accounts (default: usr)
	DefaultRole       string        // Role granted at registration (default: Customer)
	PasswordMinScore  int           // zxcvbn score floor, 0 disables (default: 0)
	MaxFailedAttempts int           // Failed logins before lockout (default: 5)
	LockoutDuration   time.Duration // Lockout length (default: 15m)
	DevRevealCodes    bool          // Log one-time codes instead of hiding them. Never in prod.

	DatabaseFile  string        // SQLite database file (default: ./auth.db)
	PepperFile    string        // Password pepper file (default: ./pepper)
	RedisURL      string        // Optional: enables the Redis security stamp cache
	StampCacheTTL time.Duration // Stamp cache entry lifetime (default: 5m)
	SecureCookies bool          // Secure flag on the browser refresh cookie (default: true)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment. Variables from a .env file in the
// working directory are loaded first without overriding the real environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Issuer:          getEnvOrDefault("AUTH_ISSUER", "storefront-auth"),
		Audience:        splitList(getEnvOrDefault("AUTH_AUDIENCE", "storefront")),
		SigningKey:      os.Getenv("AUTH_SIGNING_KEY"),
		SigningKeyFile:  getEnvOrDefault("AUTH_SIGNING_KEY_FILE", "signing.key"),
		AccessTokenTTL:  time.Duration(getEnvIntOrDefault("AUTH_ACCESS_TOKEN_MINUTES", 60)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvIntOrDefault("AUTH_REFRESH_TOKEN_DAYS", 7)) * 24 * time.Hour,

		IDPrefix:          getEnvOrDefault("AUTH_ID_PREFIX", "usr"),
		DefaultRole:       getEnvOrDefault("AUTH_DEFAULT_ROLE", "Customer"),
		PasswordMinScore:  getEnvIntOrDefault("AUTH_PASSWORD_MIN_SCORE", 0),
		MaxFailedAttempts: getEnvIntOrDefault("AUTH_MAX_FAILED_ATTEMPTS", 5),
		LockoutDuration:   time.Duration(getEnvIntOrDefault("AUTH_LOCKOUT_MINUTES", 15)) * time.Minute,
		DevRevealCodes:    getEnvBoolOrDefault("AUTH_DEV_REVEAL_CODES", false),

		DatabaseFile:  getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:    getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		RedisURL:      os.Getenv("AUTH_REDIS_URL"),
		StampCacheTTL: getEnvDurationOrDefault("AUTH_STAMP_CACHE_TTL", 5*time.Minute),
		SecureCookies: getEnvBoolOrDefault("AUTH_SECURE_COOKIES", true),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.SigningKey != "" && len(c.SigningKey) < jwtx.MinHMACKeySize {
		errs = append(errs, fmt.Errorf("AUTH_SIGNING_KEY must be at least %d bytes", jwtx.MinHMACKeySize))
	}
	if c.SigningKey == "" && strings.TrimSpace(c.SigningKeyFile) == "" {
		errs = append(errs, errors.New("one of AUTH_SIGNING_KEY or AUTH_SIGNING_KEY_FILE is required"))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_MINUTES must be positive"))
	}
	if c.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_REFRESH_TOKEN_DAYS must be positive"))
	}
	if strings.TrimSpace(c.IDPrefix) == "" || strings.Contains(c.IDPrefix, extid.Separator) {
		errs = append(errs, fmt.Errorf("AUTH_ID_PREFIX must be non-blank and must not contain %q", extid.Separator))
	}
	if strings.TrimSpace(c.Issuer) == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be blank"))
	}
	if c.PasswordMinScore < 0 || c.PasswordMinScore > 4 {
		errs = append(errs, errors.New("AUTH_PASSWORD_MIN_SCORE must be between 0 and 4"))
	}
	if c.MaxFailedAttempts <= 0 {
		errs = append(errs, errors.New("AUTH_MAX_FAILED_ATTEMPTS must be positive"))
	}
	if c.LockoutDuration <= 0 {
		errs = append(errs, errors.New("AUTH_LOCKOUT_MINUTES must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, errors.New("PORT must be between 1 and 65535"))
	}
	if c.DevRevealCodes && c.Env == "prod" {
		errs = append(errs, errors.New("AUTH_DEV_REVEAL_CODES must not be set in prod"))
	}

	return errors.Join(errs...)
}

func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
