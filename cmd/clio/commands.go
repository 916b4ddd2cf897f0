// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	healthURL  string
	healthJSON bool

	seedMatterCount int
	seedValue       int64
	seedReset       bool
	seedSkipGraph   bool
	seedSkipSQL     bool

	rootCmd = &cobra.Command{
		Use:   "clio",
		Short: "Operations CLI for the Clio legal analytics dashboard",
		Long: `clio manages a Clio analytics dashboard deployment: health checks,
				configuration validation, and demo data seeding. The dashboard
				service itself is started separately (services/dashboard).`,
	}

	// --- Health ---
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Ping a running dashboard instance and report store status",
		RunE:  runHealth, // Defined in cmd_health.go
	}

	// --- Config ---
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the dashboard configuration",
	}
	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration from the environment and print the resolved values",
		RunE:  runConfigValidate, // Defined in cmd_config.go
	}

	// --- Seed ---
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Write a deterministic demo dataset into Postgres and Neo4j",
		Long: `seed populates both stores with a generated legal-practice dataset:
				matters, tasks, expenses, staff, vendors and the client/vendor/staff
				relationship graph. The same --seed value always produces the same
				dataset, so demo environments are reproducible.`,
		RunE: runSeed, // Defined in cmd_seed.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().StringVar(&healthURL, "url", "",
		"Dashboard base URL (default http://<DASH_HOST>:<DASH_PORT>)")
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "Print the raw /health response")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)

	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedMatterCount, "matters", 200, "Number of matters to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 42, "Random seed for the generated dataset")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "DANGER: wipe existing rows and graph nodes first")
	seedCmd.Flags().BoolVar(&seedSkipGraph, "skip-graph", false, "Skip the Neo4j graph")
	seedCmd.Flags().BoolVar(&seedSkipSQL, "skip-postgres", false, "Skip the Postgres tables")
}
