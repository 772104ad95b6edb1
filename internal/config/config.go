package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIBaseURL     string
	CartDBPath     string
	PrefsDBPath    string
	MigrationsPath string
	RequestTimeout time.Duration
}

// Load reads configuration from the environment, with an optional .env file
// for local development. Missing keys fall back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}
	return Config{
		APIBaseURL:     getenv("API_BASE_URL", "https://fakestoreapi.com"),
		CartDBPath:     getenv("CART_DB_PATH", "./data/carts.db"),
		PrefsDBPath:    getenv("PREFS_DB_PATH", "./data/prefs.db"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./internal/store/migrations"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("invalid duration, using default")
		return def
	}
	return d
}
