package cliconfig

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/pkg/log"
)

// Defaults for the CLI.
const (
	DefaultBaseURL    = "http://127.0.0.1:8080"
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultQueueSize  = 16
)

// Config holds CLI configuration for logbridge.
type Config struct {
	BaseURL   string
	AuthToken string
	TokenFile string

	// HTTPTimeout bounds each bridged request. Zero blocks until the host answers.
	HTTPTimeout time.Duration
	QueueSize   int
	LogLevel    string

	LogDir        string
	ListenAddr    string
	SkipFirstLine bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		AuthToken:     os.Getenv("LOGBRIDGE_AUTH_TOKEN"),
		HTTPTimeout:   30 * time.Second,
		QueueSize:     DefaultQueueSize,
		LogLevel:      "info",
		ListenAddr:    DefaultListenAddr,
		SkipFirstLine: true,
	}
}

// Validate checks the client configuration and normalizes the base URL.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("%w: base-url %q must be an absolute URL", domain.ErrInvalidConfig, c.BaseURL)
		}
		c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue-size must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// ValidateServe checks the configuration needed to run the host.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.LogDir == "" {
		return fmt.Errorf("%w: log-dir is required", domain.ErrInvalidConfig)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen address is required", domain.ErrInvalidConfig)
	}
	return nil
}

// Logger builds the zerolog-backed logger for the configured level.
func (c Config) Logger() (log.Logger, error) {
	return log.New(c.LogLevel, os.Stderr)
}

// configSetter applies values only for flags the user did not set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
