// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort              = 8080
	DefaultControllerTimeout = 10 * time.Second
	DefaultEnvFile           = ".env"
)

// ErrMissingConfig is returned when a required setting is absent.
// The process must not serve traffic without it.
var ErrMissingConfig = errors.New("missing required configuration")

// ErrInvalidConfig is returned when a setting is present but unusable
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Port              int
	HelperPSK         string
	APIToken          string
	ControllerURL     string
	ControllerTimeout time.Duration
	LogFormat         string
	LogLevel          slog.Level
}

// ParseFlags loads the .env file, validates flags and falls back to
// environment variables for anything not given on the command line
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, timeout, level string

	fs := flag.NewFlagSet("join-helper", flag.ContinueOnError)

	fs.StringVar(&envFile, "env-file", DefaultEnvFile, "Optional dotenv file")
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.ControllerURL, "controller-url", "", "Controller base URL")
	fs.StringVar(&timeout, "controller-timeout", "", "Controller request timeout")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.HelperPSK, "psk", "", "Join helper PSK (prefer env)")
	fs.StringVar(&cfg.APIToken, "token", "", "Controller API token (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Real environment wins over the file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, envFile, err)
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil || port <= 0 || port > 65535 {
				return Config{}, fmt.Errorf("%w: invalid PORT env variable", ErrInvalidConfig)
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	// Required values
	if cfg.HelperPSK == "" {
		cfg.HelperPSK = os.Getenv("JOIN_HELPER_PSK")
	}
	if cfg.HelperPSK == "" {
		return Config{}, fmt.Errorf("%w: JOIN_HELPER_PSK must be set (use -psk or env)", ErrMissingConfig)
	}

	if cfg.APIToken == "" {
		cfg.APIToken = os.Getenv("BOWTIE_API_TOKEN")
	}
	if cfg.APIToken == "" {
		return Config{}, fmt.Errorf("%w: BOWTIE_API_TOKEN must be set (use -token or env)", ErrMissingConfig)
	}

	if cfg.ControllerURL == "" {
		cfg.ControllerURL = os.Getenv("BOWTIE_CONTROLLER_URL")
	}
	if cfg.ControllerURL == "" {
		return Config{}, fmt.Errorf("%w: BOWTIE_CONTROLLER_URL must be set (use -controller-url or env)", ErrMissingConfig)
	}
	if err := validateControllerURL(cfg.ControllerURL); err != nil {
		return Config{}, err
	}

	// Optional values
	if timeout == "" {
		timeout = os.Getenv("BOWTIE_CONTROLLER_TIMEOUT")
	}
	cfg.ControllerTimeout = DefaultControllerTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: controller timeout %q", ErrInvalidConfig, timeout)
		}
		cfg.ControllerTimeout = d
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return Config{}, fmt.Errorf("%w: log format %q", ErrInvalidConfig, cfg.LogFormat)
	}

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
		}
	}

	return cfg, nil
}

func validateControllerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: BOWTIE_CONTROLLER_URL: %w", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: BOWTIE_CONTROLLER_URL must be an absolute http(s) URL", ErrInvalidConfig)
	}
	return nil
}
