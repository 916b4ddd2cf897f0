// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

// healthResponse mirrors the dashboard's /health payload.
type healthResponse struct {
	Status string            `json:"status"`
	Stores map[string]string `json:"stores"`
}

// runHealth pings a running dashboard instance. The endpoint always
// answers 200 with the store breakdown; the exit code distinguishes
// "ok" from "degraded" so scripts can alert on fallback mode.
func runHealth(cmd *cobra.Command, args []string) error {
	base := healthURL
	if base == "" {
		if cfgErr != nil {
			return fmt.Errorf("loading configuration: %w", cfgErr)
		}
		host := cfg.HTTP.Host
		if host == "0.0.0.0" || host == "" {
			host = "localhost"
		}
		base = fmt.Sprintf("http://%s:%d", host, cfg.HTTP.Port)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(base + "/health")
	if err != nil {
		return fmt.Errorf("reaching dashboard at %s: %w", base, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dashboard returned %s: %s", resp.Status, body)
	}

	if healthJSON {
		fmt.Println(string(body))
		return nil
	}

	var health healthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return fmt.Errorf("parsing health response: %w", err)
	}

	fmt.Printf("dashboard %s: %s\n", base, health.Status)
	names := make([]string, 0, len(health.Stores))
	for name := range health.Stores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-10s %s\n", name, health.Stores[name])
	}

	if health.Status != "ok" {
		return fmt.Errorf("dashboard is serving synthetic data for unavailable stores")
	}
	return nil
}
