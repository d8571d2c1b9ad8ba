package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/lubluniky/cent-client-go/internal/signing"
)

// Config is the root configuration of the centcli tool.
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Bridge  BridgeConfig  `yaml:"bridge" json:"bridge"`
}

// APIConfig holds the server API connection settings.
type APIConfig struct {
	URL           string `yaml:"url" json:"url"`
	Secret        string `yaml:"secret" json:"secret"`
	HashAlgorithm string `yaml:"hash_algorithm" json:"hash_algorithm"`
	// Timeout is the HTTP timeout in seconds. 0 disables it.
	Timeout int `yaml:"timeout" json:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (a APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
}

// BridgeConfig configures the MQTT to channel forwarder.
type BridgeConfig struct {
	Broker   string   `yaml:"broker" json:"broker"`
	ClientID string   `yaml:"client_id" json:"client_id"`
	Username string   `yaml:"username" json:"username"`
	Password string   `yaml:"password" json:"password"`
	Topics   []string `yaml:"topics" json:"topics"`
	QoS      int      `yaml:"qos" json:"qos"`
	// TopicPrefix is stripped from MQTT topics before they are mapped to
	// channel names.
	TopicPrefix string `yaml:"topic_prefix" json:"topic_prefix"`
}

// Load builds the configuration in three layers:
//  1. Default values
//  2. The config file at path, if path is non-empty
//  3. Environment variables (CENT_SECTION_KEY)
//
// Files ending in .json or .jsonc are parsed as JSON with comments and
// trailing commas allowed; anything else is parsed as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Default returns a Config with the defaults of a local development server.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:           "http://localhost:8000/api/",
			HashAlgorithm: signing.DefaultAlgorithm,
			Timeout:       10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Bridge: BridgeConfig{
			Broker: "tcp://localhost:1883",
			QoS:    1,
		},
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CENT_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("CENT_SECRET"); v != "" {
		cfg.API.Secret = v
	}
	if v := os.Getenv("CENT_HASH_ALGORITHM"); v != "" {
		cfg.API.HashAlgorithm = v
	}
	if v := os.Getenv("CENT_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing CENT_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = n
	}
	if v := os.Getenv("CENT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("CENT_MQTT_BROKER"); v != "" {
		cfg.Bridge.Broker = v
	}
	if v := os.Getenv("CENT_MQTT_USERNAME"); v != "" {
		cfg.Bridge.Username = v
	}
	if v := os.Getenv("CENT_MQTT_PASSWORD"); v != "" {
		cfg.Bridge.Password = v
	}
	return nil
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.URL)
	switch {
	case c.API.URL == "":
		errs = append(errs, errors.New("api.url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("api.url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api.url: unsupported scheme %q", u.Scheme))
	}

	if !signing.Supported(c.API.HashAlgorithm) {
		errs = append(errs, fmt.Errorf("api.hash_algorithm: %w: %q", signing.ErrUnsupportedAlgorithm, c.API.HashAlgorithm))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative, got %d", c.API.Timeout))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}

	if c.Bridge.QoS < 0 || c.Bridge.QoS > 2 {
		errs = append(errs, fmt.Errorf("bridge.qos must be 0, 1 or 2, got %d", c.Bridge.QoS))
	}

	return errors.Join(errs...)
}
