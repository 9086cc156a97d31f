package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	OTLP   OTLPConfig   `mapstructure:"otlp"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// DurationMsMetric enables the extra millisecond request duration histogram.
	DurationMsMetric bool `mapstructure:"duration_ms_metric"`
}

type OTLPConfig struct {
	// Enabled=false runs with no-op exporters.
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SlogLevel parses Level, falling back to debug for unknown values.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelDebug
	}
	return level
}

var defaults = map[string]any{
	"server.host":               "0.0.0.0",
	"server.port":               "8080",
	"server.shutdown_timeout":   5 * time.Second,
	"server.duration_ms_metric": false,
	"otlp.enabled":              true,
	"otlp.endpoint":             "localhost:4317",
	"otlp.service_name":         "storefront-api",
	"otlp.environment":          "development",
	"log.level":                 "debug",
}

var envBindings = map[string]string{
	"server.host":               "SERVER_HOST",
	"server.port":               "SERVER_PORT",
	"server.shutdown_timeout":   "SERVER_SHUTDOWN_TIMEOUT",
	"server.duration_ms_metric": "HTTP_DURATION_MS_METRIC",
	"otlp.enabled":              "OTEL_ENABLED",
	"otlp.endpoint":             "OTEL_EXPORTER_OTLP_ENDPOINT",
	"otlp.service_name":         "OTEL_SERVICE_NAME",
	"otlp.environment":          "OTEL_ENVIRONMENT",
	"log.level":                 "LOG_LEVEL",
}

// LoadConfig builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. The file comes from
// the --config flag in args or from STOREFRONT_CONFIG_FILE.
func LoadConfig(args []string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	path, err := configFilepath(args)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func configFilepath(args []string) (string, error) {
	cmdLine := pflag.NewFlagSet("storefront-api", pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", fmt.Errorf("failed to parse flags: %w", err)
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env, nil
	}
	return *arg, nil
}

// Addr returns the host:port listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
