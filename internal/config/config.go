// Package config handles loading and parsing application configuration.
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Before the path is resolved, an optional .env file in the working
// directory is loaded so that CONFIG_PATH and every env:"..." override can
// be kept next to the binary during development.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// StorageKey is the key the roster JSON array is stored under.
	StorageKey string `yaml:"storage_key" env:"STORAGE_KEY" env-default:"students"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.HTTPServer.Addr  or after promotion cfg.Addr
	HTTPServer `yaml:"http_server"`

	// TUI holds settings for the terminal front-end.
	TUI `yaml:"tui"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// TUI holds settings for cmd/roster-tui.
// Nested under tui: in the YAML file.
type TUI struct {
	// LogPath receives the log output, since the terminal is owned by the
	// UI while it runs.
	LogPath string `yaml:"log_path" env:"TUI_LOG_PATH" env-default:"roster-tui.log"`
}

var configFlag = flag.String("config", "", "Path to the configuration YAML file")

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	// Verify the file exists before trying to read it.
	// os.Stat gives a clear message rather than a cryptic error later.
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// applies env-default values, and validates env-required constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error. If this function returns, the config is valid.
func MustLoad() *Config {
	// ── Source 0: .env file ───────────────────────────────────────────
	// godotenv.Load never overrides variables that are already set, so
	// the real environment always wins. A missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %s", err.Error())
	}

	// ── Source 1: environment variable ───────────────────────────────
	// Useful in Docker / Kubernetes where env vars are the standard way
	// to pass config to a container.
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	// The flag is registered at package level so that commands can add
	// their own flags; parse only if main has not already done so.
	if configPath == "" {
		if !flag.Parsed() {
			flag.Parse()
		}
		configPath = *configFlag
	}

	// Neither source provided a path.
	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
