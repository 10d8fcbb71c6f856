// Package config provides application configuration for the ppccalc
// shells. The engine itself is configuration-free; everything here
// concerns the serving surfaces.
package config

import "fmt"

// Default configuration values.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8080
	DefaultLogLevel  = "INFO"
	DefaultLogFormat = string(LogFormatPretty)
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig is the resolved application configuration. Immutable value
// object; build one with LoadConfig or NewAppConfig.
type AppConfig struct {
	host        string
	port        int
	logLevel    string
	logFormat   LogFormat
	regionsFile string
}

// NewAppConfig creates an AppConfig from explicit values, applying
// defaults for zero values.
func NewAppConfig(host string, port int, logLevel string, logFormat LogFormat, regionsFile string) AppConfig {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	if logFormat == "" {
		logFormat = LogFormatPretty
	}
	return AppConfig{
		host:        host,
		port:        port,
		logLevel:    logLevel,
		logFormat:   logFormat,
		regionsFile: regionsFile,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// RegionsFile returns the path of a YAML region table overriding the
// built-in guest memory map, or "" for the default.
func (c AppConfig) RegionsFile() string { return c.regionsFile }

// WithHost returns a copy with the host replaced.
func (c AppConfig) WithHost(host string) AppConfig {
	if host != "" {
		c.host = host
	}
	return c
}

// WithPort returns a copy with the port replaced.
func (c AppConfig) WithPort(port int) AppConfig {
	if port != 0 {
		c.port = port
	}
	return c
}
