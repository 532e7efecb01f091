package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/logbridge/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LOGBRIDGE_AUTH_TOKEN", "from-env")
	cfg := DefaultConfig()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %v, want %v", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.QueueSize != DefaultQueueSize {
		t.Errorf("QueueSize = %v, want %v", cfg.QueueSize, DefaultQueueSize)
	}
	if !cfg.SkipFirstLine {
		t.Error("SkipFirstLine = false, want true")
	}
	if cfg.AuthToken != "from-env" {
		t.Errorf("AuthToken = %q, want from-env", cfg.AuthToken)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		wantBaseURL string
	}{
		{
			name:        "valid config",
			config:      Config{BaseURL: "http://localhost:8080", QueueSize: 1},
			wantBaseURL: "http://localhost:8080",
		},
		{
			name:        "trims trailing slashes",
			config:      Config{BaseURL: "https://host.example//", QueueSize: 1},
			wantBaseURL: "https://host.example",
		},
		{
			name:   "empty base url allowed",
			config: Config{QueueSize: 1},
		},
		{
			name:    "relative base url",
			config:  Config{BaseURL: "/api", QueueSize: 1},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			config:  Config{HTTPTimeout: -time.Second, QueueSize: 1},
			wantErr: true,
		},
		{
			name:    "zero queue size",
			config:  Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			if !tt.wantErr && tt.config.BaseURL != tt.wantBaseURL {
				t.Errorf("BaseURL = %q, want %q", tt.config.BaseURL, tt.wantBaseURL)
			}
		})
	}
}

func TestConfig_ValidateServe(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateServe(); err == nil {
		t.Fatal("expected error without log dir")
	}

	cfg.LogDir = "/tmp/logs"
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe() = %v", err)
	}

	cfg.ListenAddr = ""
	if err := cfg.ValidateServe(); err == nil {
		t.Fatal("expected error without listen address")
	}
}

func TestConfig_Logger(t *testing.T) {
	cfg := Config{LogLevel: "nonsense"}
	if _, err := cfg.Logger(); err == nil {
		t.Fatal("expected error for invalid level")
	}

	cfg.LogLevel = "debug"
	if _, err := cfg.Logger(); err != nil {
		t.Fatalf("Logger() = %v", err)
	}
}
