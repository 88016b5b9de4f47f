// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config configures the remote TLS service client.
type Config struct {
	URL          string        `env:"URL"            envDefault:"https://api.fastly.com"`
	APIKey       string        `env:"API_KEY"        envDefault:""`
	APIKeyHeader string        `env:"API_KEY_HEADER" envDefault:"Authorization"`
	APIKeyScheme string        `env:"API_KEY_SCHEME" envDefault:"Bearer"`
	Timeout      time.Duration `env:"TIMEOUT"        envDefault:"30s"`
	RateLimit    float64       `env:"RATE_LIMIT"     envDefault:"10"`
	Burst        int           `env:"BURST"          envDefault:"5"`
	DumpRequests bool          `env:"DUMP_REQUESTS"  envDefault:"false"`
	Paths        Paths
}

// Paths are the collection endpoints relative to the base URL.
type Paths struct {
	PrivateKeys  string `env:"PRIVATE_KEYS_PATH" envDefault:"/private-keys" yaml:"private_keys"`
	Certificates string `env:"CERTIFICATES_PATH" envDefault:"/certificates" yaml:"certificates"`
	Activations  string `env:"ACTIVATIONS_PATH"  envDefault:"/activations"  yaml:"activations"`
}

// DefaultPaths returns the canonical resource layout.
func DefaultPaths() Paths {
	return Paths{
		PrivateKeys:  "/private-keys",
		Certificates: "/certificates",
		Activations:  "/activations",
	}
}

// destinationFile is the YAML layout of a destination description.
type destinationFile struct {
	URL          string  `yaml:"url"`
	APIKeyHeader string  `yaml:"api_key_header"`
	APIKeyScheme *string `yaml:"api_key_scheme"`
	Paths        Paths   `yaml:"paths"`
}

// LoadConfig overlays the destination description stored in filename on cfg.
// Only the values present in the file replace those of cfg.
func LoadConfig(filename string, cfg Config) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var df destinationFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&df); err != nil {
		return Config{}, err
	}

	if df.URL != "" {
		cfg.URL = df.URL
	}
	if df.APIKeyHeader != "" {
		cfg.APIKeyHeader = df.APIKeyHeader
	}
	if df.APIKeyScheme != nil {
		cfg.APIKeyScheme = *df.APIKeyScheme
	}
	if df.Paths.PrivateKeys != "" {
		cfg.Paths.PrivateKeys = df.Paths.PrivateKeys
	}
	if df.Paths.Certificates != "" {
		cfg.Paths.Certificates = df.Paths.Certificates
	}
	if df.Paths.Activations != "" {
		cfg.Paths.Activations = df.Paths.Activations
	}

	return cfg, nil
}
