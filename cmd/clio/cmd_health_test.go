// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunHealthOK(t *testing.T) {
	srv := healthServer(t, `{"status":"ok","stores":{"postgres":"up","neo4j":"up"}}`)
	healthURL = srv.URL
	defer func() { healthURL = "" }()

	assert.NoError(t, runHealth(healthCmd, nil))
}

func TestRunHealthDegradedReturnsError(t *testing.T) {
	srv := healthServer(t, `{"status":"degraded","stores":{"postgres":"up","neo4j":"down"}}`)
	healthURL = srv.URL
	defer func() { healthURL = "" }()

	err := runHealth(healthCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthetic")
}

func TestRunHealthUnreachable(t *testing.T) {
	healthURL = "http://127.0.0.1:1"
	defer func() { healthURL = "" }()

	assert.Error(t, runHealth(healthCmd, nil))
}

func TestRunHealthJSONPassthrough(t *testing.T) {
	srv := healthServer(t, `{"status":"degraded","stores":{}}`)
	healthURL = srv.URL
	healthJSON = true
	defer func() { healthURL = ""; healthJSON = false }()

	// --json prints the body verbatim and never interprets the status.
	assert.NoError(t, runHealth(healthCmd, nil))
}
