package config

import "time"

// Config is the root configuration for an ingest run.
type Config struct {
	API      APIConfig    `yaml:"api"`
	Database DBConfig     `yaml:"database"`
	Ingest   IngestConfig `yaml:"ingest"`
}

// APIConfig holds the market-data provider settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Token      string        `yaml:"token"` // provider API token
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// DBConfig holds the Postgres connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// IngestConfig holds pipeline tunables.
type IngestConfig struct {
	// SymbolGroupSize is how many symbols go into one bulk price request.
	SymbolGroupSize int `yaml:"symbol_group_size"`
	// CopyBufferSize caps the bytes handed to the bulk-copy protocol per read.
	CopyBufferSize int `yaml:"copy_buffer_size"`
	// SecurityTypes is the allow-list applied to the provider universe.
	SecurityTypes []string `yaml:"security_types"`
}
