package config

import "github.com/kelseyhightower/envconfig"

// envPrefix namespaces every ppccalc environment variable.
const envPrefix = "PPCCALC"

// EnvConfig holds environment-based configuration. Field names map to
// environment variables with the PPCCALC_ prefix.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: PPCCALC_HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PPCCALC_PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: PPCCALC_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: PPCCALC_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// RegionsFile points at a YAML region table replacing the built-in
	// guest memory map.
	// Env: PPCCALC_REGIONS_FILE
	RegionsFile string `envconfig:"REGIONS_FILE"`
}

// LoadConfig loads configuration from an optional .env file and the
// environment. Values already present in the environment win over the
// .env file.
func LoadConfig(envFile string) (AppConfig, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return AppConfig{}, err
	}

	var env EnvConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return AppConfig{}, err
	}

	return NewAppConfig(env.Host, env.Port, env.LogLevel, LogFormat(env.LogFormat), env.RegionsFile), nil
}
