// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runConfigValidate loads the configuration the same way the dashboard
// service does and prints the resolved values. Secrets are masked.
func runConfigValidate(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return fmt.Errorf("configuration is invalid: %w", cfgErr)
	}

	fmt.Println("Configuration OK")
	fmt.Printf("  http:       %s:%d (debug=%v)\n", cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.Debug)
	fmt.Printf("  postgres:   %s\n", maskDSN())
	fmt.Printf("  neo4j:      %s (db=%s, user=%s)\n", cfg.Neo4j.URI, cfg.Neo4j.Database, cfg.Neo4j.User)
	fmt.Printf("  auth:       enabled=%v\n", cfg.Auth.Enabled)
	fmt.Printf("  telemetry:  service=%s otlp=%s\n", cfg.Telemetry.ServiceName, otlpOrDefault())
	fmt.Printf("  synth seed: %d\n", cfg.SyntheticSeed)
	return nil
}

func maskDSN() string {
	if cfg.Postgres.DSN != "" {
		return "(explicit DSN)"
	}
	return fmt.Sprintf("postgres://%s:***@%s:%d/%s",
		cfg.Postgres.User, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Database)
}

func otlpOrDefault() string {
	if cfg.Telemetry.OTLPEndpoint == "" {
		return "(default)"
	}
	return cfg.Telemetry.OTLPEndpoint
}
