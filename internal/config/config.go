// Package config loads and validates server configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then MESHFREQ_* environment overrides. The CLI binary takes flags only and
// does not use this package.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/signalsfoundry/meshfreq/core"
	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
}

// ServerConfig holds the listen addresses for the API and metrics servers.
type ServerConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MQTTConfig configures the optional channel-plan announcer. PlanRegions
// lists the region codes to publish retained plans for; empty means every
// shipped region.
type MQTTConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Host          string   `yaml:"host"`
	Port          int      `yaml:"port"`
	UseTLS        bool     `yaml:"use_tls"`
	Username      string   `yaml:"username"`
	Password      string   `yaml:"password"`
	TopicPrefix   string   `yaml:"topic_prefix"`
	QoS           byte     `yaml:"qos"`
	Retain        bool     `yaml:"retain"`
	PublishEvents bool     `yaml:"publish_events"`
	PlanRegions   []string `yaml:"plan_regions"`
}

// BrokerURL returns the paho broker URL for the configured host and port.
func (m MQTTConfig) BrokerURL() string {
	scheme := "tcp"
	if m.UseTLS {
		scheme = "tls"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, m.Host, m.Port)
}

// Default returns the built-in configuration baseline.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:  ":8080",
			MetricsAddr: ":9090",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		MQTT: MQTTConfig{
			Enabled:     false,
			Port:        1883,
			TopicPrefix: "meshfreq",
			QoS:         1,
			Retain:      true,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty), and MESHFREQ_* environment overrides, then validates
// the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies MESHFREQ_* environment variables on top of the
// current values. Unparseable numeric or boolean values are ignored.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("MESHFREQ_LISTEN_ADDR"); val != "" {
		cfg.Server.ListenAddr = val
	}

	if val := os.Getenv("MESHFREQ_METRICS_ADDR"); val != "" {
		cfg.Server.MetricsAddr = val
	}

	if val := os.Getenv("MESHFREQ_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}

	if val := os.Getenv("MESHFREQ_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("MESHFREQ_MQTT_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.MQTT.Enabled = enabled
		}
	}

	if val := os.Getenv("MESHFREQ_MQTT_HOST"); val != "" {
		cfg.MQTT.Host = val
	}

	if val := os.Getenv("MESHFREQ_MQTT_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.MQTT.Port = port
		}
	}

	if val := os.Getenv("MESHFREQ_MQTT_USERNAME"); val != "" {
		cfg.MQTT.Username = val
	}

	if val := os.Getenv("MESHFREQ_MQTT_PASSWORD"); val != "" {
		cfg.MQTT.Password = val
	}

	if val := os.Getenv("MESHFREQ_MQTT_TOPIC_PREFIX"); val != "" {
		cfg.MQTT.TopicPrefix = val
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server listen address is required")
	}

	if c.MQTT.Enabled {
		if c.MQTT.Host == "" {
			return fmt.Errorf("MQTT host is required when MQTT is enabled")
		}
		if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
			return fmt.Errorf("MQTT port %d is out of range", c.MQTT.Port)
		}
		if c.MQTT.TopicPrefix == "" {
			return fmt.Errorf("MQTT topic prefix is required")
		}
		if c.MQTT.QoS > 2 {
			return fmt.Errorf("MQTT QoS %d is out of range (0-2)", c.MQTT.QoS)
		}
	}

	// Validate that each announced region exists in the catalog.
	for _, code := range c.MQTT.PlanRegions {
		if _, err := core.LookupRegion(code); err != nil {
			return fmt.Errorf("plan region %q: %w", code, err)
		}
	}

	return nil
}
