// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8050, cfg.HTTP.Port)
	assert.False(t, cfg.HTTP.Debug)
	assert.Equal(t, "bolt://neo4j:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.User)
	assert.Equal(t, int64(42), cfg.SyntheticSeed)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DASH_PORT", "9000")
	t.Setenv("DASH_DEBUG", "true")
	t.Setenv("NEO4J_URI", "neo4j://graph.internal:7687")
	t.Setenv("CLIO_POSTGRES_DSN", "postgres://u:p@db:5432/clio")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.Debug)
	assert.Equal(t, "neo4j://graph.internal:7687", cfg.Neo4j.URI)
	assert.Equal(t, "postgres://u:p@db:5432/clio", cfg.Postgres.ConnString())
}

func TestLoad_QuotedEnvValues(t *testing.T) {
	// Container runtimes sometimes pass quotes through literally.
	t.Setenv("DASH_HOST", `"127.0.0.1"`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
}

func TestLoad_YAMLFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clio.yaml")
	yamlBody := `
http:
  port: 8888
neo4j:
  uri: bolt://graph:7687
  password: secret
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))
	t.Setenv("CLIO_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8888, cfg.HTTP.Port)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }},
		{"schemeless neo4j uri", func(c *Config) { c.Neo4j.URI = "localhost:7687" }},
		{"auth without token", func(c *Config) { c.Auth.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAuthToken_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(path, []byte("s3cret-token\n"), 0o600))

	cfg := &Config{Auth: AuthConfig{Enabled: true, TokenFile: path}}
	tok, err := cfg.AuthToken()
	require.NoError(t, err)
	assert.Equal(t, "s3cret-token", tok)
}

func TestAuthToken_DisabledIsEmpty(t *testing.T) {
	cfg := &Config{}
	tok, err := cfg.AuthToken()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestPostgresConnString_FromParts(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "clio", Password: "pw", Database: "clio_analytics"}
	assert.Equal(t, "postgres://clio:pw@db:5432/clio_analytics", p.ConnString())
}
