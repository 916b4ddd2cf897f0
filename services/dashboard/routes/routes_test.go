// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/activity"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/analytics3d"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/handlers"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/lifecycle"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/network"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServices() *handlers.Services {
	gen := synth.New(42)
	return &handlers.Services{
		Lifecycle: lifecycle.NewService(nil, gen),
		Activity:  activity.NewService(nil, gen),
		Analytics: analytics3d.NewService(nil, gen),
		Network:   network.NewService(nil, nil),
	}
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesWithoutAuth(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, testServices(), nil, nil, "")

	for _, path := range []string{
		"/health",
		"/metrics",
		"/v1/kpis",
		"/v1/views/overview",
		"/v1/lifecycle/stages",
		"/v1/departments",
		"/v1/bottlenecks",
		"/v1/analytics/workload",
		"/v1/matters/3d",
		"/v1/matters/timeline",
		"/v1/network/family",
		"/v1/network/vendors",
		"/v1/network/staff",
	} {
		w := get(router, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRoutesWithAuthGateOnlyV1(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, testServices(), nil, nil, "s3cret")

	// Health and metrics stay open.
	assert.Equal(t, http.StatusOK, get(router, "/health", "").Code)
	assert.Equal(t, http.StatusOK, get(router, "/metrics", "").Code)

	// API routes require the token.
	assert.Equal(t, http.StatusUnauthorized, get(router, "/v1/kpis", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/v1/views/overview", "wrong").Code)
	assert.Equal(t, http.StatusOK, get(router, "/v1/kpis", "s3cret").Code)
	assert.Equal(t, http.StatusOK, get(router, "/v1/views/overview", "s3cret").Code)
}
