package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/bcdxn/f1next/internal/ergast"
)

const (
	DefaultAPIURL  = ergast.DefaultURL
	DefaultTimeout = 10 * time.Second
	appName        = "f1next"
)

// Config holds the settings of the f1next command that are not display flags.
type Config struct {
	APIURL   string        // APIURL is the Ergast-format endpoint returning the next race
	CacheDir string        // CacheDir is the per-user directory holding the response cache
	LogFile  string        // LogFile enables debug logging to the given file when non-empty
	Timeout  time.Duration // Timeout bounds the single request to the API
}

// Default returns the configuration used when neither the environment nor the command line set a
// value.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		CacheDir: defaultCacheDir(),
		Timeout:  DefaultTimeout,
	}
}

// Load reads the configuration from the environment; unset values fall back to Default.
func Load() (Config, error) {
	cfg := Config{
		APIURL:   os.Getenv("F1NEXT_API_URL"),
		CacheDir: os.Getenv("F1NEXT_CACHE_DIR"),
		LogFile:  os.Getenv("F1NEXT_LOG_FILE"),
	}
	if val, ok := os.LookupEnv("F1NEXT_TIMEOUT"); ok && val != "" {
		d, err := time.ParseDuration(val)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid F1NEXT_TIMEOUT value '%s'", val)
		}
		cfg.Timeout = d
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return Config{}, fmt.Errorf("error applying default config: %w", err)
	}
	return cfg, nil
}

// Resolve returns overrides with every blank field filled in from base. It is used to layer
// command-line values on top of the loaded configuration.
func Resolve(overrides, base Config) (Config, error) {
	cfg := overrides
	if err := mergo.Merge(&cfg, base); err != nil {
		return Config{}, fmt.Errorf("error merging config: %w", err)
	}
	return cfg, nil
}

// ResponseCacheDir is the directory of the single response cache kind used by the fetcher.
func (c Config) ResponseCacheDir() string {
	return filepath.Join(c.CacheDir, appName+"_cache")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appName)
}
