package cliconfig

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnvConfig applies configuration from environment variables (LOGBRIDGE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", os.Getenv("LOGBRIDGE_BASE_URL"), &cfg.BaseURL)
	s.setString("auth-token", os.Getenv("LOGBRIDGE_AUTH_TOKEN"), &cfg.AuthToken)
	s.setString("token-file", os.Getenv("LOGBRIDGE_TOKEN_FILE"), &cfg.TokenFile)
	s.setString("log-level", os.Getenv("LOGBRIDGE_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-dir", os.Getenv("LOGBRIDGE_LOG_DIR"), &cfg.LogDir)
	s.setString("listen", os.Getenv("LOGBRIDGE_LISTEN_ADDR"), &cfg.ListenAddr)

	if err := s.setDuration("timeout", os.Getenv("LOGBRIDGE_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setIntFromString("queue-size", os.Getenv("LOGBRIDGE_QUEUE_SIZE"), &cfg.QueueSize); err != nil {
		return err
	}

	s.setBoolFromString("skip-first-line", os.Getenv("LOGBRIDGE_SKIP_FIRST_LINE"), &cfg.SkipFirstLine)

	return nil
}
