package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets and identifiers are strings, durations
// and costs are typed for how they are used.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	DBUser          string        // database username
	DBPass          string        // database password (optional)
	DBHost          string        // database host address
	DBPort          string        // database port number
	DBName          string        // database name
	JWTSecret       string        // secret used to sign access tokens
	Issuer          string        // issuer and audience claim for access tokens
	AccessTTL       time.Duration // access token time-to-live
	RefreshTTL      time.Duration // refresh token time-to-live
	BcryptCost      int           // bcrypt cost for password hashing
	MaxFailedLogins int           // failed logins before the account locks
	LockDuration    time.Duration // how long a locked account stays locked
	RefreshRotation bool          // rotate the refresh token on every refresh
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Lifecycle and lockout
// knobs fall back to sane defaults when unset.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		Issuer:          envStr("TOKEN_ISSUER", "user-auth-service"),
		AccessTTL:       time.Duration(envInt("ACCESS_TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		RefreshTTL:      time.Duration(envInt("REFRESH_TOKEN_TTL_DAYS", 30)) * 24 * time.Hour,
		BcryptCost:      envInt("BCRYPT_COST", 12),
		MaxFailedLogins: envInt("MAX_FAILED_LOGINS", 5),
		LockDuration:    time.Duration(envInt("LOCK_DURATION_MIN", 30)) * time.Minute,
		RefreshRotation: envBool("REFRESH_ROTATION", false),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
