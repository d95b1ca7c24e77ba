package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// DefaultRoom is used when a join or message frame names no room.
	DefaultRoom string `mapstructure:"default_room" yaml:"default_room"`
	// EventBuffer is the per-connection outbound event buffer; events
	// beyond it are dropped for that connection.
	EventBuffer int `mapstructure:"event_buffer" yaml:"event_buffer"`
	// MessageRateLimit caps chat messages per connection per minute;
	// 0 disables the limit.
	MessageRateLimit int `mapstructure:"message_rate_limit" yaml:"message_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DefaultRoom:       "peer-support",
		EventBuffer:       32,
		MessageRateLimit:  120,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.DefaultRoom != "" {
		c.DefaultRoom = other.DefaultRoom
	}
	if other.EventBuffer != 0 {
		c.EventBuffer = other.EventBuffer
	}
	if other.MessageRateLimit != 0 {
		c.MessageRateLimit = other.MessageRateLimit
	}
}
