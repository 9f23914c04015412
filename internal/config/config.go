package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/erauner12/storefront/internal/pricing"
	"gopkg.in/yaml.v3"
)

// Session store backends
const (
	StoreFile    = "file"
	StoreKeyring = "keyring"
	StoreSQLite  = "sqlite"
	StoreMemory  = "memory"
)

// Config holds all configuration for the storefront client
type Config struct {
	APIBaseURL  string        `json:"apiBaseUrl" yaml:"apiBaseUrl"`
	Store       StoreConfig   `json:"store" yaml:"store"`
	HTTPTimeout Duration      `json:"httpTimeout" yaml:"httpTimeout"` // 0 disables the timeout
	Pricing     PricingConfig `json:"pricing" yaml:"pricing"`
	Debug       bool          `json:"debug" yaml:"debug"`
	LogLevel    string        `json:"logLevel" yaml:"logLevel"`
}

// StoreConfig selects where the session is persisted
type StoreConfig struct {
	Backend string `json:"backend" yaml:"backend"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"` // file and sqlite only; empty selects the default
}

// PricingConfig overrides the order summary constants
type PricingConfig struct {
	FreeShippingThreshold float64 `json:"freeShippingThreshold" yaml:"freeShippingThreshold"`
	StandardShipping      float64 `json:"standardShipping" yaml:"standardShipping"`
	TaxRate               float64 `json:"taxRate" yaml:"taxRate"`
}

// Rules converts the configured values for the pricing package
func (p PricingConfig) Rules() pricing.Rules {
	return pricing.Rules{
		FreeShippingThreshold: p.FreeShippingThreshold,
		StandardShipping:      p.StandardShipping,
		TaxRate:               p.TaxRate,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIBaseURL, c.APIBaseURL)
	}

	switch c.Store.Backend {
	case StoreFile, StoreKeyring, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreBackend, c.Store.Backend)
	}

	if c.HTTPTimeout < 0 {
		return ErrNegativeTimeout
	}

	p := c.Pricing
	if p.FreeShippingThreshold < 0 || p.StandardShipping < 0 || p.TaxRate < 0 {
		return ErrInvalidPricing
	}

	return nil
}

// StorePath returns the configured store path or the backend's default
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return DefaultStorePath(c.Store.Backend)
}

// DefaultStorePath is ~/.storefront/session.json for the file backend and
// ~/.storefront/session.db for sqlite
func DefaultStorePath(backend string) string {
	name := "session.json"
	if backend == StoreSQLite {
		name = "session.db"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".storefront", name)
	}
	return filepath.Join(home, ".storefront", name)
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:  "http://localhost:3001",
		Store:       StoreConfig{Backend: StoreFile},
		HTTPTimeout: Duration(30 * time.Second),
		Pricing: PricingConfig{
			FreeShippingThreshold: pricing.FreeShippingThreshold,
			StandardShipping:      pricing.StandardShipping,
			TaxRate:               pricing.DefaultTaxRate,
		},
		Debug:    false,
		LogLevel: "info",
	}
}

// Duration is a time.Duration read from "30s"-style strings or a number of seconds
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// ParseDuration accepts "1m30s"-style strings or plain seconds
func ParseDuration(s string) (Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return Duration(secs * float64(time.Second)), nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return Duration(v), nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var secs float64
	if err := json.Unmarshal(data, &secs); err == nil {
		*d = Duration(secs * float64(time.Second))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds: %w", err)
	}
	v, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = v
	return nil
}
