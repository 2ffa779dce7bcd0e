package config

import "os"

// Getenv returns the value of the environment variable key, or fallback
// when it is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DatabaseURL returns the postgres connection string, empty when the
// server should fall back to the local sqlite file.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// SQLitePath returns the sqlite database path used when no DATABASE_URL
// is configured.
func SQLitePath() string {
	return Getenv("INKWELL_DB_PATH", "inkwell.db")
}

// JWTSecret returns the token signing secret.
func JWTSecret() []byte {
	// Default for development only - should be set in production
	return []byte(Getenv("JWT_SECRET", "inkwell-dev-secret-change-in-production"))
}

// Port returns the HTTP listen port.
func Port() string {
	return Getenv("PORT", "8080")
}

// LogLevel returns the zap log level name.
func LogLevel() string {
	return Getenv("LOG_LEVEL", "info")
}
