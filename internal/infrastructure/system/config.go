// Package system provides infrastructure for system-level configuration.
// This includes loading the system config file (~/.stitch/config.yaml).
package system

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Config represents the global configuration file (~/.stitch/config.yaml).
// Catalogs carry product data; this file carries deployment settings.
type Config struct {
	Cart    CartConfig    `yaml:"cart"`
	Storage StorageConfig `yaml:"storage"`
	Pricing PricingConfig `yaml:"pricing"`
	Preview PreviewConfig `yaml:"preview"`
}

// CartConfig configures the remote cart service.
type CartConfig struct {
	// BaseURL is the storefront origin; /cart/add.js and /cart/change.js are appended
	BaseURL string `yaml:"base_url"`
	// Timeout is a Go duration string, e.g. "10s"
	Timeout string `yaml:"timeout"`
}

// StorageConfig configures session storage for snapshots.
type StorageConfig struct {
	Dir        string `yaml:"dir"`
	QuotaBytes int    `yaml:"quota_bytes"`
}

// PricingConfig configures the personalization surcharge and display.
type PricingConfig struct {
	Currency  string       `yaml:"currency"`
	Locale    string       `yaml:"locale"`
	BasePrice values.Money `yaml:"base_price"`
}

// PreviewConfig overrides the group to style property mapping.
type PreviewConfig struct {
	Mapping map[string]string `yaml:"mapping"`
}

// Default values.
const (
	DefaultCartTimeout = 10 * time.Second
	DefaultQuotaBytes  = 5 * 1024 * 1024
	DefaultCurrency    = "USD"
	DefaultLocale      = "en-US"
)

// CartTimeout parses the configured timeout, falling back to the default.
func (c CartConfig) CartTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultCartTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid cart timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		Cart: CartConfig{
			Timeout: DefaultCartTimeout.String(),
		},
		Storage: StorageConfig{
			QuotaBytes: DefaultQuotaBytes,
		},
		Pricing: PricingConfig{
			Currency: DefaultCurrency,
			Locale:   DefaultLocale,
		},
		Preview: PreviewConfig{
			Mapping: map[string]string{},
		},
	}
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
// Fields missing from the file keep their defaults.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	return config, nil
}
