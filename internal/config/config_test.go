package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meshfreq.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("default listen addr = %q, want %q", cfg.Server.ListenAddr, ":8080")
	}
	if cfg.Server.MetricsAddr != ":9090" {
		t.Errorf("default metrics addr = %q, want %q", cfg.Server.MetricsAddr, ":9090")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("default logging = %q/%q, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.MQTT.Enabled {
		t.Error("MQTT should be disabled by default")
	}
	if cfg.MQTT.Port != 1883 {
		t.Errorf("default MQTT port = %d, want 1883", cfg.MQTT.Port)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	want := Default()
	if cfg.Server != want.Server {
		t.Errorf("Load(\"\") server section = %+v, want %+v", cfg.Server, want.Server)
	}
	if cfg.Logging != want.Logging {
		t.Errorf("Load(\"\") logging section = %+v, want %+v", cfg.Logging, want.Logging)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_addr: ":9999"
mqtt:
  enabled: true
  host: broker.local
  qos: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}

	if cfg.Server.ListenAddr != ":9999" {
		t.Errorf("listen addr = %q, want %q", cfg.Server.ListenAddr, ":9999")
	}
	// Keys absent from the file keep their defaults.
	if cfg.Server.MetricsAddr != ":9090" {
		t.Errorf("metrics addr = %q, want default %q", cfg.Server.MetricsAddr, ":9090")
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Host != "broker.local" {
		t.Errorf("MQTT = %+v, want enabled with host broker.local", cfg.MQTT)
	}
	if cfg.MQTT.Port != 1883 {
		t.Errorf("MQTT port = %d, want default 1883", cfg.MQTT.Port)
	}
	if cfg.MQTT.QoS != 2 {
		t.Errorf("MQTT QoS = %d, want 2", cfg.MQTT.QoS)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load with a missing file should fail")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("Load with malformed YAML should fail")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MESHFREQ_LISTEN_ADDR", ":7070")
	t.Setenv("MESHFREQ_LOG_LEVEL", "debug")
	t.Setenv("MESHFREQ_MQTT_ENABLED", "true")
	t.Setenv("MESHFREQ_MQTT_HOST", "env-broker")
	t.Setenv("MESHFREQ_MQTT_PORT", "8883")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}

	if cfg.Server.ListenAddr != ":7070" {
		t.Errorf("listen addr = %q, want %q", cfg.Server.ListenAddr, ":7070")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Host != "env-broker" || cfg.MQTT.Port != 8883 {
		t.Errorf("MQTT = %+v, want enabled env-broker:8883", cfg.MQTT)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  listen_addr: \":9999\"\n")
	t.Setenv("MESHFREQ_LISTEN_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}
	if cfg.Server.ListenAddr != ":7070" {
		t.Errorf("listen addr = %q, want env value %q", cfg.Server.ListenAddr, ":7070")
	}
}

func TestLoad_IgnoresUnparseableEnv(t *testing.T) {
	t.Setenv("MESHFREQ_MQTT_PORT", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.MQTT.Port != 1883 {
		t.Errorf("MQTT port = %d, want default 1883 when override is unparseable", cfg.MQTT.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "mqtt enabled without host",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
			},
			wantErr: true,
		},
		{
			name: "mqtt enabled with host",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Host = "broker.local"
			},
			wantErr: false,
		},
		{
			name: "mqtt port out of range",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Host = "broker.local"
				c.MQTT.Port = 70000
			},
			wantErr: true,
		},
		{
			name: "mqtt qos out of range",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Host = "broker.local"
				c.MQTT.QoS = 3
			},
			wantErr: true,
		},
		{
			name: "empty topic prefix",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Host = "broker.local"
				c.MQTT.TopicPrefix = ""
			},
			wantErr: true,
		},
		{
			name: "known plan regions",
			mutate: func(c *Config) {
				c.MQTT.PlanRegions = []string{"US", "EU_868"}
			},
			wantErr: false,
		},
		{
			name: "unknown plan region",
			mutate: func(c *Config) {
				c.MQTT.PlanRegions = []string{"US", "XX"}
			},
			wantErr: true,
		},
		{
			name: "empty listen address",
			mutate: func(c *Config) {
				c.Server.ListenAddr = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBrokerURL(t *testing.T) {
	plain := MQTTConfig{Host: "broker.local", Port: 1883}
	if got := plain.BrokerURL(); got != "tcp://broker.local:1883" {
		t.Errorf("BrokerURL() = %q, want %q", got, "tcp://broker.local:1883")
	}

	secure := MQTTConfig{Host: "broker.local", Port: 8883, UseTLS: true}
	if got := secure.BrokerURL(); got != "tls://broker.local:8883" {
		t.Errorf("BrokerURL() = %q, want %q", got, "tls://broker.local:8883")
	}
}
