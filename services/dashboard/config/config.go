// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the dashboard service configuration from the
// environment, with an optional YAML override file for deployments that
// prefer a checked-in config over a wall of env vars.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// HTTPConfig is the listen configuration for the dashboard API.
type HTTPConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

// PostgresConfig locates the relational analytics store. If DSN is set it
// wins; otherwise one is assembled from the parts.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// ConnString returns the pgx connection string.
func (p PostgresConfig) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", p.User, p.Password, p.Host, p.Port, p.Database)
}

// Neo4jConfig locates the graph store.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// AuthConfig controls the optional bearer-token gate on /v1 routes.
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Token     string `yaml:"token"`
	TokenFile string `yaml:"token_file"`
}

// TelemetryConfig points at the OTLP collector.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// Config is the full dashboard service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Neo4j     Neo4jConfig     `yaml:"neo4j"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// SyntheticSeed seeds the fallback data generators. Fixed by default
	// so degraded-mode output is reproducible across restarts.
	SyntheticSeed int64 `yaml:"synthetic_seed"`
}

// Load reads configuration from the environment with defaults, then merges
// the YAML file named by CLIO_CONFIG if present.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Host:  envOr("DASH_HOST", "0.0.0.0"),
			Port:  envIntOr("DASH_PORT", 8050),
			Debug: envBool("DASH_DEBUG"),
		},
		Postgres: PostgresConfig{
			DSN:      os.Getenv("CLIO_POSTGRES_DSN"),
			Host:     envOr("CLIO_POSTGRES_HOST", "postgres"),
			Port:     envIntOr("CLIO_POSTGRES_PORT", 5432),
			User:     envOr("CLIO_POSTGRES_USER", "clio"),
			Password: os.Getenv("CLIO_POSTGRES_PASSWORD"),
			Database: envOr("CLIO_POSTGRES_DB", "clio_analytics"),
		},
		Neo4j: Neo4jConfig{
			URI:      envOr("NEO4J_URI", fmt.Sprintf("bolt://%s:%d", envOr("NEO4J_HOST", "neo4j"), envIntOr("NEO4J_PORT", 7687))),
			User:     envOr("NEO4J_USER", "neo4j"),
			Password: os.Getenv("NEO4J_PASSWORD"),
			Database: envOr("NEO4J_DATABASE", "neo4j"),
		},
		Auth: AuthConfig{
			Enabled:   envBool("AUTH_ENABLED"),
			Token:     os.Getenv("DASH_AUTH_TOKEN"),
			TokenFile: os.Getenv("DASH_AUTH_TOKEN_FILE"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  envOr("OTEL_SERVICE_NAME", "clio-dashboard"),
		},
		SyntheticSeed: int64(envIntOr("CLIO_SYNTHETIC_SEED", 42)),
	}

	if path := os.Getenv("CLIO_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays YAML values on top of the env-derived config.
func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the resolved configuration for values that would only
// fail later and more confusingly.
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid dashboard port %d", c.HTTP.Port)
	}
	if c.Postgres.DSN == "" && c.Postgres.Host == "" {
		return fmt.Errorf("postgres host or DSN must be set")
	}
	if c.Neo4j.URI != "" && !strings.Contains(c.Neo4j.URI, "://") {
		return fmt.Errorf("neo4j URI %q is missing a scheme", c.Neo4j.URI)
	}
	if c.Auth.Enabled && c.Auth.Token == "" && c.Auth.TokenFile == "" {
		return fmt.Errorf("auth is enabled but no token or token file is configured")
	}
	return nil
}

// AuthToken resolves the bearer token, reading the token file if one is
// configured. Returns empty when auth is disabled.
func (c *Config) AuthToken() (string, error) {
	if !c.Auth.Enabled {
		return "", nil
	}
	if c.Auth.Token != "" {
		return c.Auth.Token, nil
	}
	raw, err := os.ReadFile(c.Auth.TokenFile)
	if err != nil {
		return "", fmt.Errorf("reading auth token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func envOr(key, fallback string) string {
	// Trim quotes and whitespace in case the container runtime passes them
	// through literally.
	if v := strings.Trim(os.Getenv(key), "\"' "); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true")
}
