package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"current-weather/datasource"

	"github.com/briandowns/openweathermap"
)

// Environment variables read at startup
const (
	EnvAPIKey   = "OPENWEATHER_API_KEY"
	EnvBaseURL  = "OPENWEATHER_BASE_URL"
	EnvLogLevel = "CURRENT_WEATHER_LOG_LEVEL"
)

// ErrMissingAPIKey is reported when no credential was provided
var ErrMissingAPIKey = errors.New(EnvAPIKey + " environment variable not set")

// Duration decodes Go duration strings ("10s", "1m30s") from JSON
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config represents the application configuration
type Config struct {
	// APIKey is only ever taken from the environment
	APIKey string `json:"-"`

	BaseURL  string   `json:"baseURL"`
	Timeout  Duration `json:"timeout"`
	LogLevel string   `json:"logLevel"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  datasource.DefaultBaseURL,
		Timeout:  Duration{10 * time.Second},
		LogLevel: "warn",
	}
}

// LoadConfig loads configuration from a JSON file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return config, nil
}

// ApplyEnv overlays values from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok {
		c.APIKey = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks the non-credential settings. A missing API key is not a
// configuration error; the driver reports it to the user.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("baseURL must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid baseURL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("baseURL must use http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("baseURL has no host: %q", c.BaseURL)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// APIKeyWarning reports a key whose shape does not look like an OpenWeatherMap key.
// It returns nil for an empty key.
func (c *Config) APIKeyWarning() error {
	if c.APIKey == "" {
		return nil
	}
	return openweathermap.ValidAPIKey(c.APIKey)
}
