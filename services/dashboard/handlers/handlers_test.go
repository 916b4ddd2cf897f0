// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/activity"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/analytics3d"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/lifecycle"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/network"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// syntheticServices builds the handler service set with no stores wired, so
// everything comes from the deterministic generators.
func syntheticServices() *Services {
	gen := synth.New(42)
	return &Services{
		Lifecycle: lifecycle.NewService(nil, gen),
		Activity:  activity.NewService(nil, gen),
		Analytics: analytics3d.NewService(nil, gen),
		Network:   network.NewService(nil, nil, network.WithSeed(42)),
	}
}

func newRouter(svc *Services) *gin.Engine {
	r := gin.New()
	r.GET("/v1/views/:view", GetView(svc))
	r.GET("/v1/kpis", GetKPIs(svc))
	r.GET("/v1/lifecycle/stages", GetStages(svc))
	r.GET("/v1/departments", GetDepartments(svc))
	r.GET("/v1/bottlenecks", GetBottlenecks(svc))
	r.GET("/v1/analytics/workload", GetWorkload(svc))
	r.GET("/v1/matters/3d", GetMatters3D(svc))
	r.GET("/v1/matters/timeline", GetMatterTimeline(svc))
	r.GET("/v1/matters/:matterId", GetMatterDetail(svc))
	r.GET("/v1/network/family", GetFamilyNetwork(svc))
	r.GET("/v1/network/vendors", GetVendorNetwork(svc))
	r.GET("/v1/network/staff", GetStaffNetwork(svc))
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetViewDispatch(t *testing.T) {
	r := newRouter(syntheticServices())

	for _, name := range []string{
		"overview", "lifecycle", "department", "matter3d",
		"matter-bubble", "matter-timeline", "bottlenecks", "analytics",
	} {
		w := doGet(t, r, "/v1/views/"+name)
		require.Equal(t, http.StatusOK, w.Code, name)

		var payload datatypes.ViewPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload), name)
		assert.Equal(t, name, payload.View)
		assert.Equal(t, datatypes.SourceSynthetic, payload.Source, "no stores wired, everything is synthetic")
	}
}

func TestGetViewUnknown(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/views/settings")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetViewRejectsBadQuery(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/views/matter3d?limit=999999")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(t, r, "/v1/views/analytics?dimension=everything")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetKPIs(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/kpis")
	require.Equal(t, http.StatusOK, w.Code)

	var kpis datatypes.KPISet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &kpis))
	assert.Equal(t, 145, kpis.TotalActiveMatters)
	assert.Equal(t, datatypes.SourceSynthetic, kpis.Source)
}

func TestGetMatters3DAppliesDefaults(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/matters/3d")
	require.Equal(t, http.StatusOK, w.Code)

	var data datatypes.Matter3DData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.NotZero(t, data.Len())
	assert.Equal(t, datatypes.SourceSynthetic, data.Source)
}

func TestGetMatterDetailValidation(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/matters/%3Bdrop%20table")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No relational store wired: a well-formed id is simply not found.
	w = doGet(t, r, "/v1/matters/MTR-2024-0001")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFamilyNetwork(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/network/family?limit=3")
	require.Equal(t, http.StatusOK, w.Code)

	var g datatypes.NetworkGraph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Equal(t, datatypes.SourceSynthetic, g.Source)
	assert.Equal(t, 3, g.Stats.ClusterCount)
	assert.Equal(t, len(g.Nodes), g.Stats.NodeCount)

	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		assert.False(t, ids[n.ID], "duplicate node id %s", n.ID)
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		assert.True(t, ids[e.Source], "edge source %s missing", e.Source)
		assert.True(t, ids[e.Target], "edge target %s missing", e.Target)
	}
}

func TestGetVendorNetworkRejectsBadFilter(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/network/vendors?practice_area=%3Bdrop")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStaffNetwork(t *testing.T) {
	r := newRouter(syntheticServices())

	w := doGet(t, r, "/v1/network/staff")
	require.Equal(t, http.StatusOK, w.Code)

	var g datatypes.NetworkGraph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.NotZero(t, g.Stats.StaffCount)
	assert.Equal(t, "breadthfirst", g.Layout)
}

type fakePinger struct{ err error }

func (f *fakePinger) Verify(context.Context) error { return f.err }

func TestHealthCheck(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(&fakePinger{}, &fakePinger{err: errors.New("refused")}))

	w := doGet(t, r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Stores map[string]string `json:"stores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "up", body.Stores["postgres"])
	assert.Equal(t, "down", body.Stores["neo4j"])
}

func TestHealthCheckUnconfiguredStores(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(nil, nil))

	w := doGet(t, r, "/health")
	require.Equal(t, http.StatusOK, w.Code, "the service is alive even with no stores")

	var body struct {
		Status string            `json:"status"`
		Stores map[string]string `json:"stores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "not_configured", body.Stores["postgres"])
}
