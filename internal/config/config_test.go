package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lubluniky/cent-client-go/internal/signing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "http://localhost:8000/api/" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.HashAlgorithm != "sha256" {
		t.Errorf("API.HashAlgorithm = %q", cfg.API.HashAlgorithm)
	}
	if cfg.API.Secret != "" {
		t.Errorf("API.Secret should default to empty")
	}
	if cfg.API.TimeoutDuration() != 10*time.Second {
		t.Errorf("API.TimeoutDuration() = %v", cfg.API.TimeoutDuration())
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "cent.yaml", `
api:
  url: "https://cent.example.com/api/"
  secret: "yaml-secret"
  hash_algorithm: "sha512"
  timeout: 3
logging:
  level: "debug"
  format: "json"
bridge:
  broker: "tcp://mqtt:1883"
  topics: ["sensors/#", "alerts/+"]
  topic_prefix: "sensors/"
  qos: 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "https://cent.example.com/api/" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Secret != "yaml-secret" {
		t.Errorf("API.Secret = %q", cfg.API.Secret)
	}
	if cfg.API.HashAlgorithm != "sha512" {
		t.Errorf("API.HashAlgorithm = %q", cfg.API.HashAlgorithm)
	}
	if cfg.API.Timeout != 3 {
		t.Errorf("API.Timeout = %d", cfg.API.Timeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Logging.Output should keep default, got %q", cfg.Logging.Output)
	}
	if len(cfg.Bridge.Topics) != 2 || cfg.Bridge.Topics[0] != "sensors/#" {
		t.Errorf("Bridge.Topics = %v", cfg.Bridge.Topics)
	}
	if cfg.Bridge.QoS != 0 || cfg.Bridge.TopicPrefix != "sensors/" {
		t.Errorf("Bridge = %+v", cfg.Bridge)
	}
}

func TestLoad_JSONC(t *testing.T) {
	path := writeConfig(t, "cent.jsonc", `{
  // API connection
  "api": {
    "url": "http://127.0.0.1:8000/api/",
    "secret": "jsonc-secret", /* inline */
  },
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Secret != "jsonc-secret" {
		t.Errorf("API.Secret = %q", cfg.API.Secret)
	}
	if cfg.API.HashAlgorithm != "sha256" {
		t.Errorf("API.HashAlgorithm should keep default, got %q", cfg.API.HashAlgorithm)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "cent.yaml", `
api:
  secret: "file-secret"
`)
	t.Setenv("CENT_API_URL", "https://env.example.com/api/")
	t.Setenv("CENT_SECRET", "env-secret")
	t.Setenv("CENT_HASH_ALGORITHM", "sha1")
	t.Setenv("CENT_TIMEOUT", "7")
	t.Setenv("CENT_LOG_LEVEL", "warn")
	t.Setenv("CENT_MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("CENT_MQTT_USERNAME", "bridge")
	t.Setenv("CENT_MQTT_PASSWORD", "pw")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "https://env.example.com/api/" || cfg.API.Secret != "env-secret" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.API.HashAlgorithm != "sha1" || cfg.API.Timeout != 7 {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Bridge.Broker != "tcp://broker:1883" || cfg.Bridge.Username != "bridge" || cfg.Bridge.Password != "pw" {
		t.Errorf("Bridge = %+v", cfg.Bridge)
	}
}

func TestLoad_InvalidTimeoutEnv(t *testing.T) {
	t.Setenv("CENT_TIMEOUT", "soon")
	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for non-numeric CENT_TIMEOUT, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/cent.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "cent.yaml", "invalid: [yaml: content")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "empty url", modify: func(c *Config) { c.API.URL = "" }, wantErr: "api.url is required"},
		{name: "bad scheme", modify: func(c *Config) { c.API.URL = "ftp://x/api" }, wantErr: "unsupported scheme"},
		{name: "bad algorithm", modify: func(c *Config) { c.API.HashAlgorithm = "rot13" }, wantErr: "api.hash_algorithm"},
		{name: "negative timeout", modify: func(c *Config) { c.API.Timeout = -1 }, wantErr: "api.timeout"},
		{name: "bad log format", modify: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "bad qos", modify: func(c *Config) { c.Bridge.QoS = 3 }, wantErr: "bridge.qos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateUnsupportedAlgorithmIsSentinel(t *testing.T) {
	cfg := Default()
	cfg.API.HashAlgorithm = "rot13"
	if err := cfg.Validate(); !errors.Is(err, signing.ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}
