package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Site variants understood by SITE_VARIANT.
const (
	VariantFull    = "full"
	VariantMinimal = "minimal"
)

type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	InstanceName string
	LogLevel     string

	Variant     string
	PostsDir    string
	StaticDir   string
	DatabaseURL string
	WatchPosts  bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var err error

	cfg.Port = getEnv("BACKEND_PORT", "8080")
	if cfg.ReadTimeout, err = getEnvAsDuration("READ_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.IdleTimeout, err = getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	cfg.InstanceName = getEnv("INSTANCE_NAME", "alplotlib-1")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Variant = getEnv("SITE_VARIANT", VariantFull)
	if err := ValidateVariant(cfg.Variant); err != nil {
		return Config{}, err
	}
	cfg.PostsDir = getEnv("POSTS_DIR", "./content/posts")
	cfg.StaticDir = getEnv("STATIC_DIR", "./web/static")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.WatchPosts, err = getEnvAsBool("WATCH_POSTS", true); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateVariant reports whether name is a known site variant.
func ValidateVariant(name string) error {
	switch name {
	case VariantFull, VariantMinimal:
		return nil
	default:
		return fmt.Errorf("invalid SITE_VARIANT %q: want %q or %q", name, VariantFull, VariantMinimal)
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	dur, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return dur, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
