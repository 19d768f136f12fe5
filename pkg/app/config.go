package app

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the terminal client configuration, read from the environment
// with an optional .env file.
type Config struct {
	// APIURL is the annotation service base URL including the API prefix,
	// e.g. "http://localhost:8080/api".
	APIURL string
	// TokenFile overrides where the bearer credential is persisted.
	// Empty means the default location under the user config dir.
	TokenFile string
	// LogLevel is the zerolog level name. Empty means info.
	LogLevel string
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; a missing file is fine.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:    os.Getenv("ANNOTATE_API_URL"),
		TokenFile: os.Getenv("ANNOTATE_TOKEN_FILE"),
		LogLevel:  os.Getenv("ANNOTATE_LOG_LEVEL"),
	}
}
