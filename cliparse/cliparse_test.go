// cliparse/cliparse_test.go
package cliparse

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnvVars = []string{
	"PORT",
	"JOIN_HELPER_PSK",
	"BOWTIE_API_TOKEN",
	"BOWTIE_CONTROLLER_URL",
	"BOWTIE_CONTROLLER_TIMEOUT",
	"LOG_FORMAT",
	"LOG_LEVEL",
}

// unsetEnv removes every config variable for the duration of the test
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	unsetEnv(t)
	t.Setenv("JOIN_HELPER_PSK", "correct")
	t.Setenv("BOWTIE_API_TOKEN", "api-token")
	t.Setenv("BOWTIE_CONTROLLER_URL", "https://controller.example.com")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.HelperPSK != "correct" {
		t.Errorf("expected psk 'correct', got %q", cfg.HelperPSK)
	}
	if cfg.APIToken != "api-token" {
		t.Errorf("expected token 'api-token', got %q", cfg.APIToken)
	}
	if cfg.ControllerURL != "https://controller.example.com" {
		t.Errorf("unexpected controller URL %q", cfg.ControllerURL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.ControllerTimeout != DefaultControllerTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultControllerTimeout, cfg.ControllerTimeout)
	}
	if cfg.LogFormat != "" {
		t.Errorf("expected empty log format, got %q", cfg.LogFormat)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{
		"-p", "8081",
		"-psk", "cli-psk",
		"-token", "cli-token",
		"-controller-url", "http://localhost:3000",
		"-controller-timeout", "3s",
		"-log-format", "JSON",
		"-log-level", "debug",
	})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8081 {
		t.Errorf("CLI should override env: expected 8081, got %d", cfg.Port)
	}
	if cfg.HelperPSK != "cli-psk" || cfg.APIToken != "cli-token" {
		t.Errorf("CLI secrets not applied: %+v", cfg)
	}
	if cfg.ControllerURL != "http://localhost:3000" {
		t.Errorf("expected CLI controller URL, got %q", cfg.ControllerURL)
	}
	if cfg.ControllerTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.ControllerTimeout)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %q", cfg.LogFormat)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"psk", "JOIN_HELPER_PSK"},
		{"api token", "BOWTIE_API_TOKEN"},
		{"controller url", "BOWTIE_CONTROLLER_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			os.Unsetenv(tt.missing)

			_, err := ParseFlags([]string{})
			if !errors.Is(err, ErrMissingConfig) {
				t.Fatalf("expected ErrMissingConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("error should name %s: %v", tt.missing, err)
			}
		})
	}
}

func TestParseFlags_EmptyValueIsMissing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JOIN_HELPER_PSK", "")

	_, err := ParseFlags([]string{})
	if !errors.Is(err, ErrMissingConfig) {
		t.Errorf("expected ErrMissingConfig, got %v", err)
	}
}

func TestParseFlags_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "PORT", "abc"},
		{"port out of range", "PORT", "70000"},
		{"relative controller url", "BOWTIE_CONTROLLER_URL", "controller.example.com"},
		{"ftp controller url", "BOWTIE_CONTROLLER_URL", "ftp://controller.example.com"},
		{"bad timeout", "BOWTIE_CONTROLLER_TIMEOUT", "soon"},
		{"zero timeout", "BOWTIE_CONTROLLER_TIMEOUT", "0s"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"bad log level", "LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := ParseFlags([]string{})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	setRequiredEnv(t)

	if _, err := ParseFlags([]string{"-nope"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	unsetEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "JOIN_HELPER_PSK=file-psk\nBOWTIE_API_TOKEN=file-token\nBOWTIE_CONTROLLER_URL=https://file.example.com\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Real environment wins over the file
	t.Setenv("BOWTIE_API_TOKEN", "env-token")

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HelperPSK != "file-psk" {
		t.Errorf("expected psk from file, got %q", cfg.HelperPSK)
	}
	if cfg.APIToken != "env-token" {
		t.Errorf("expected env token to win, got %q", cfg.APIToken)
	}
	if cfg.ControllerURL != "https://file.example.com" {
		t.Errorf("expected controller URL from file, got %q", cfg.ControllerURL)
	}
}

func TestParseFlags_MissingEnvFileIgnored(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "does-not-exist.env")
	if _, err := ParseFlags([]string{"-env-file", path}); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
