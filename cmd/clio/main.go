// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command clio is the operations CLI for the Clio analytics dashboard.
//
// It does not serve traffic itself; the dashboard service lives in
// services/dashboard. The CLI covers the tasks around a running (or
// about-to-run) instance:
//
//	clio health                  ping a running dashboard's /health
//	clio config validate         load and print the resolved configuration
//	clio seed                    write a deterministic demo dataset into
//	                             Postgres and Neo4j
//
// Configuration comes from the same environment variables (and optional
// CLIO_CONFIG yaml overlay) the dashboard service reads, so the CLI always
// talks to the stores the service would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/config"
)

var (
	cfg    *config.Config
	cfgErr error
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Commands report the load error themselves so `config validate`
		// can still print diagnostics for a broken configuration.
		cfg, cfgErr = config.Load()
	}
}
