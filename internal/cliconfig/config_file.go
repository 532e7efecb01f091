package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BaseURL       string `toml:"base_url"`
	AuthToken     string `toml:"auth_token"`
	TokenFile     string `toml:"token_file"`
	HTTPTimeout   string `toml:"http_timeout"`
	QueueSize     int    `toml:"queue_size"`
	LogLevel      string `toml:"log_level"`
	LogDir        string `toml:"log_dir"`
	ListenAddr    string `toml:"listen_addr"`
	SkipFirstLine *bool  `toml:"skip_first_line"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.logbridge/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".logbridge", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("auth-token", fc.AuthToken, &cfg.AuthToken)
	s.setString("token-file", fc.TokenFile, &cfg.TokenFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-dir", fc.LogDir, &cfg.LogDir)
	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setInt("queue-size", fc.QueueSize, &cfg.QueueSize)
	s.setBool("skip-first-line", fc.SkipFirstLine, &cfg.SkipFirstLine)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
