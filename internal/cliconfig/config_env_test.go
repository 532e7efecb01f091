package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"LOGBRIDGE_BASE_URL":        "https://env.example",
				"LOGBRIDGE_AUTH_TOKEN":      "env-token",
				"LOGBRIDGE_TOKEN_FILE":      "/env/token",
				"LOGBRIDGE_HTTP_TIMEOUT":    "2s",
				"LOGBRIDGE_QUEUE_SIZE":      "3",
				"LOGBRIDGE_LOG_LEVEL":       "warn",
				"LOGBRIDGE_LOG_DIR":         "/env/logs",
				"LOGBRIDGE_LISTEN_ADDR":     ":7000",
				"LOGBRIDGE_SKIP_FIRST_LINE": "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				BaseURL:       "https://env.example",
				AuthToken:     "env-token",
				TokenFile:     "/env/token",
				HTTPTimeout:   2 * time.Second,
				QueueSize:     3,
				LogLevel:      "warn",
				LogDir:        "/env/logs",
				ListenAddr:    ":7000",
				SkipFirstLine: true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"LOGBRIDGE_BASE_URL": "https://env.example",
				"LOGBRIDGE_LOG_DIR":  "/env/logs",
			},
			changed:  map[string]bool{"base-url": true},
			initial:  Config{BaseURL: "https://flag.example"},
			expected: Config{BaseURL: "https://flag.example", LogDir: "/env/logs"},
		},
		{
			name:     "bool false",
			envVars:  map[string]string{"LOGBRIDGE_SKIP_FIRST_LINE": "false"},
			changed:  map[string]bool{},
			initial:  Config{SkipFirstLine: true},
			expected: Config{SkipFirstLine: false},
		},
		{
			name:    "invalid duration",
			envVars: map[string]string{"LOGBRIDGE_HTTP_TIMEOUT": "later"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "invalid int",
			envVars: map[string]string{"LOGBRIDGE_QUEUE_SIZE": "many"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	unsetEnv(t, "LOGBRIDGE_LOG_DIR")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LOGBRIDGE_LOG_DIR=/dotenv/logs\nLOGBRIDGE_BASE_URL=https://dotenv.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOGBRIDGE_BASE_URL", "https://already.set")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() = %v", err)
	}
	if got := os.Getenv("LOGBRIDGE_LOG_DIR"); got != "/dotenv/logs" {
		t.Errorf("LOGBRIDGE_LOG_DIR = %q", got)
	}
	if got := os.Getenv("LOGBRIDGE_BASE_URL"); got != "https://already.set" {
		t.Errorf("existing variable overridden: %q", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Errorf("empty path should be ignored, got %v", err)
	}
}

// clearEnv blanks every LOGBRIDGE_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOGBRIDGE_BASE_URL", "LOGBRIDGE_AUTH_TOKEN", "LOGBRIDGE_TOKEN_FILE",
		"LOGBRIDGE_HTTP_TIMEOUT", "LOGBRIDGE_QUEUE_SIZE", "LOGBRIDGE_LOG_LEVEL",
		"LOGBRIDGE_LOG_DIR", "LOGBRIDGE_LISTEN_ADDR", "LOGBRIDGE_SKIP_FIRST_LINE",
	} {
		t.Setenv(k, "")
	}
}

// unsetEnv removes key for the duration of the test. godotenv never
// overrides a variable that exists, even when it is empty.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}
