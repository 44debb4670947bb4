// ABOUTME: Configuration loader for the secretary client
// ABOUTME: Reads an optional .env file, then environment variables with defaults

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/Depaula010/meusecretariofront/internal/session"
	"github.com/Depaula010/meusecretariofront/internal/storage"
)

// DefaultAPIURL is used when neither flag nor environment provide one
const DefaultAPIURL = "http://localhost:5000"

// Config holds the client settings read from the environment
type Config struct {
	// API
	APIURL    string        `env:"SECRETARY_API_URL" envDefault:"http://localhost:5000"`
	APIPrefix string        `env:"SECRETARY_API_PREFIX" envDefault:"/api"`
	Timeout   time.Duration `env:"SECRETARY_TIMEOUT" envDefault:"30s"`

	// Session storage
	TokenKey  string `env:"SECRETARY_TOKEN_KEY" envDefault:"meusecretario_token"`
	UserKey   string `env:"SECRETARY_USER_KEY" envDefault:"meusecretario_user"`
	ConfigDir string `env:"SECRETARY_CONFIG_DIR"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Overrides carries command-line values that take priority over the environment
type Overrides struct {
	APIURL    string
	ConfigDir string
}

// Load reads envFiles (missing files are ignored; none means ".env") and
// parses the environment into a Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the process
		_ = godotenv.Load(f)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.APIPrefix = normalizePrefix(cfg.APIPrefix)
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = storage.DefaultConfigDir()
	}
	if cfg.TokenKey == "" {
		cfg.TokenKey = session.DefaultTokenKey
	}
	if cfg.UserKey == "" {
		cfg.UserKey = session.DefaultUserKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers non-empty overrides on top of the loaded values
func (c *Config) Apply(o Overrides) error {
	if o.APIURL != "" {
		c.APIURL = strings.TrimRight(o.APIURL, "/")
	}
	if o.ConfigDir != "" {
		c.ConfigDir = o.ConfigDir
	}
	return c.Validate()
}

// Validate checks values that would otherwise fail late at request time
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SECRETARY_API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("SECRETARY_API_URL must use http or https, got %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("SECRETARY_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.TokenKey == c.UserKey {
		return fmt.Errorf("SECRETARY_TOKEN_KEY and SECRETARY_USER_KEY must differ")
	}
	return nil
}

// BaseURL is the API URL joined with the route prefix
func (c *Config) BaseURL() string {
	return c.APIURL + c.APIPrefix
}

func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
