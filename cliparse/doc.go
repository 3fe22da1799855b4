// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

The Config is built once at startup and passed to the handlers; nothing
reads the environment while serving requests.

# Config Fields

  - HelperPSK: Shared secret join helpers must present (required)
  - APIToken: Controller API token (required)
  - ControllerURL: Controller base URL, absolute http(s) (required)
  - Port: Server listen port (default: 8080, unused under Lambda)
  - ControllerTimeout: Upper bound for the controller call (default: 10s)
  - LogFormat: "text" or "json" (default: json under Lambda, text otherwise)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p                  Server port
	-psk                Join helper PSK
	-token              Controller API token
	-controller-url     Controller base URL
	-controller-timeout Controller request timeout (Go duration)
	-log-format         text or json
	-log-level          debug, info, warn, error
	-env-file           Optional dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT                      → -p
	JOIN_HELPER_PSK           → -psk
	BOWTIE_API_TOKEN          → -token
	BOWTIE_CONTROLLER_URL     → -controller-url
	BOWTIE_CONTROLLER_TIMEOUT → -controller-timeout
	LOG_FORMAT                → -log-format
	LOG_LEVEL                 → -log-level

CLI flags take precedence over environment variables. Values from the
dotenv file are loaded with godotenv and never override variables that are
already set in the process environment.

# Validation

ParseFlags returns an error wrapping ErrMissingConfig if a required value is
missing or empty:

  - JOIN_HELPER_PSK must be provided
  - BOWTIE_API_TOKEN must be provided
  - BOWTIE_CONTROLLER_URL must be provided

Malformed optional values and a non-http(s) controller URL wrap
ErrInvalidConfig. Either way the process exits before serving traffic.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	client := controller.New(cfg.ControllerURL, cfg.APIToken,
		controller.WithTimeout(cfg.ControllerTimeout))
	mux := router.NewRouter(handlers.NewJoinHandler(cfg, client, slog.Default()))
*/
package cliparse
