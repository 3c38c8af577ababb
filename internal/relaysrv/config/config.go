// Package config holds the relay service configuration. Settings come from a
// TOML file; the upstream API credential comes only from the environment and
// is never read from or written to the file.
package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ConfigFormatVersion is the current version of the configuration file format.
const ConfigFormatVersion = "0.1.0"

// DefaultModel is the upstream model used when the config does not name one.
const DefaultModel = "gpt-4o-mini"

// apiKeyEnv is the environment variable holding the upstream API credential.
const apiKeyEnv = "OPENAI_API_KEY"

// UpstreamConfig holds upstream completion API configuration.
type UpstreamConfig struct {
	Model   string `toml:"model"`    // model identifier
	BaseURL string `toml:"base_url"` // optional API base URL override
	APIKey  string `toml:"-"`        // credential, environment only
}

// ConfigParam holds all configuration parameters for the relay service.
type ConfigParam struct {
	FormatVersion string `toml:"format_version"` // version of this configuration file format

	ServerHostName string `toml:"server_hostname"` // hostname the server binds to
	ServerPort     string `toml:"server_port"`     // port the server listens on
	DisableCORS    bool   `toml:"disable_cors"`    // CORS headers are attached unless set
	SupportTLS     bool   `toml:"support_tls"`     // whether to serve TLS
	TLSCertFile    string `toml:"tls_cert_file"`   // PEM certificate path, required with support_tls
	TLSKeyFile     string `toml:"tls_key_file"`    // PEM key path, required with support_tls

	Upstream UpstreamConfig `toml:"upstream"`
}

var cfg *ConfigParam

// Config returns the current configuration.
func Config() *ConfigParam {
	return cfg
}

// LoadConfig loads and validates configuration from a file, then resolves the
// upstream credential from the environment.
func LoadConfig(filename string) error {
	if filename == "" {
		return fmt.Errorf("config filename is required")
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	c := &ConfigParam{}
	if _, err := toml.Decode(string(content), c); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}

	if err := ValidateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	loadCredentials(c)
	cfg = c
	return nil
}

// ValidateConfig checks that required values are present and applies defaults.
func ValidateConfig(c *ConfigParam) error {
	if c.FormatVersion != ConfigFormatVersion {
		return fmt.Errorf("unsupported config file format version: %s", c.FormatVersion)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("server_port is required")
	}
	if c.ServerHostName == "" {
		c.ServerHostName = "127.0.0.1"
	}
	if c.SupportTLS && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return fmt.Errorf("tls_cert_file and tls_key_file are required when support_tls is set")
	}
	if c.Upstream.Model == "" {
		c.Upstream.Model = DefaultModel
	}
	return nil
}

// loadCredentials reads the upstream API key from the environment. A local
// .env file is honored when present.
func loadCredentials(c *ConfigParam) {
	_ = godotenv.Load() // no error if .env doesn't exist
	c.Upstream.APIKey = os.Getenv(apiKeyEnv)
}

// TestInit installs a test configuration.
func TestInit(t *testing.T) {
	t.Helper()
	cfg = &ConfigParam{
		FormatVersion:  ConfigFormatVersion,
		ServerHostName: "127.0.0.1",
		ServerPort:     "8678",
		Upstream: UpstreamConfig{
			Model:  DefaultModel,
			APIKey: "test-key",
		},
	}
}
