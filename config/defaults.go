package config

import "strings"

const defaultServerURL = "ws://127.0.0.1:8080/ws"

// DefaultConfig returns a config with sensible defaults. The user name
// stays empty on purpose; the TUI prompts for it on first run.
func DefaultConfig() *Config {
	return &Config{
		Server:  ServerConfig{URL: defaultServerURL},
		Logging: defaultLoggingConfig(),
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   "info",
		Stdout:  true,
		File:    "logs/spellcast.log",
	}
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Server.URL) == "" {
		c.Server.URL = defaultServerURL
	}

	def := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = def
		return
	}

	// A partially filled logging section means the user wants logging on
	// unless they said otherwise.
	hasAny := c.Logging.Level != "" || c.Logging.File != "" || c.Logging.Stdout
	if c.Logging.Enabled == nil && hasAny {
		enabled := true
		c.Logging.Enabled = &enabled
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = def.File
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = def.Enabled
	}
}
