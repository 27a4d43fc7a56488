// Package config handles configuration loading and saving.
package config

import (
	"strings"

	"spellcast/logger"
)

const configFileName = "config.yaml"

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	User    UserConfig    `json:"user" yaml:"user"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServerConfig locates the chat server.
type ServerConfig struct {
	URL string `json:"url" yaml:"url"` // websocket endpoint, ws:// or wss://
}

// UserConfig describes the local user.
type UserConfig struct {
	Name string `json:"name" yaml:"name"` // display name announced on connect
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"` // log to stdout
	File    string `json:"file,omitempty" yaml:"file,omitempty"`     // log file path
}

// BuildLoggerConfig maps the logging section onto the logger's own config.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := true
	if c.Logging.Enabled != nil {
		enabled = *c.Logging.Enabled
	}
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}
