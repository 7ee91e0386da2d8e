package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL         = "https://cloud.iexapis.com/stable"
	DefaultAPITimeout      = 30 * time.Second
	DefaultMaxRetries      = 1
	DefaultRetryDelay      = 2 * time.Second
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
	DefaultSymbolGroupSize = 100
	DefaultCopyBufferSize  = 8192
)

// DefaultSecurityTypes is the allow-list applied to the provider universe:
// common stock, closed/open-end funds, preferred stock, and ETFs.
var DefaultSecurityTypes = []string{"cs", "cef", "oef", "ps", "et"}

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryDelay == 0 {
		c.API.RetryDelay = DefaultRetryDelay
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Ingest defaults
	if c.Ingest.SymbolGroupSize == 0 {
		c.Ingest.SymbolGroupSize = DefaultSymbolGroupSize
	}
	if c.Ingest.CopyBufferSize == 0 {
		c.Ingest.CopyBufferSize = DefaultCopyBufferSize
	}
	if len(c.Ingest.SecurityTypes) == 0 {
		c.Ingest.SecurityTypes = DefaultSecurityTypes
	}
}
