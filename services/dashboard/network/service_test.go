// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package network

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

type fakeGraph struct {
	rows []map[string]any
	err  error
}

func (f *fakeGraph) Run(_ context.Context, _ string, _ map[string]any) ([]map[string]any, error) {
	return f.rows, f.err
}

type fakeMetrics struct {
	clientLookups map[string]int
	matterLookups map[string]int
	vendorLookups map[string]int
	staffLookups  map[string]int
	fail          bool
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		clientLookups: make(map[string]int),
		matterLookups: make(map[string]int),
		vendorLookups: make(map[string]int),
		staffLookups:  make(map[string]int),
	}
}

func (f *fakeMetrics) ClientMetrics(_ context.Context, id string) (datatypes.ClientMetrics, error) {
	f.clientLookups[id]++
	if f.fail {
		return datatypes.ClientMetrics{}, errors.New("store down")
	}
	return datatypes.ClientMetrics{MatterCount: 3, TotalMatterValue: 150000, AvgMatterValue: 50000}, nil
}

func (f *fakeMetrics) MatterRecord(_ context.Context, id string) (datatypes.MatterRecord, error) {
	f.matterLookups[id]++
	if f.fail {
		return datatypes.MatterRecord{}, errors.New("store down")
	}
	return datatypes.MatterRecord{ID: id, Description: "Injury claim " + id, Value: 85000, Status: "Active"}, nil
}

func (f *fakeMetrics) VendorMetrics(_ context.Context, id string) (datatypes.VendorMetrics, error) {
	f.vendorLookups[id]++
	return datatypes.VendorMetrics{MatterCount: 4, TotalRevenue: 62000, AvgCostPerMatter: 15500}, nil
}

func (f *fakeMetrics) StaffMetrics(_ context.Context, id string) (datatypes.StaffMetrics, error) {
	f.staffLookups[id]++
	return datatypes.StaffMetrics{ActiveMatters: 9, TotalMatters: 14, CapacityPct: 60}, nil
}

func familyRow(c1, n1, c2, n2 string, m1, m2 []any) map[string]any {
	return map[string]any{
		"client1_id": c1, "client1_name": n1,
		"client2_id": c2, "client2_name": n2,
		"client1_matters": m1, "client2_matters": m2,
		"total_matters": int64(len(m1) + len(m2)),
	}
}

func TestClientFamilyNetworkBuildsGraph(t *testing.T) {
	graph := &fakeGraph{rows: []map[string]any{
		familyRow("A", "Alice Hendricks", "B", "Bob Hendricks", []any{"M1"}, []any{}),
	}}
	metrics := newFakeMetrics()
	svc := NewService(graph, metrics)

	g, err := svc.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, datatypes.SourceLive, g.Source)
	assert.Equal(t, "cose", g.Layout)
	assert.Equal(t, "Client Family Networks", g.Title)

	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"client_A", "client_B", "matter_M1"}, ids)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "family", g.Edges[0].Relationship)
	assert.Equal(t, "client_A", g.Edges[0].Source)
	assert.Equal(t, "client_B", g.Edges[0].Target)
	assert.Equal(t, "owns", g.Edges[1].Relationship)
	assert.Equal(t, "client_A", g.Edges[1].Source)
	assert.Equal(t, "matter_M1", g.Edges[1].Target)

	assert.Equal(t, 3, g.Stats.NodeCount)
	assert.Equal(t, 2, g.Stats.EdgeCount)
	assert.Equal(t, 1, g.Stats.ClusterCount)
}

func TestClientFamilyNetworkFirstRowWins(t *testing.T) {
	graph := &fakeGraph{rows: []map[string]any{
		familyRow("A", "Alice", "B", "Bob", []any{"M1"}, []any{}),
		familyRow("A", "Alice Renamed", "C", "Carol", []any{"M1"}, []any{"M2"}),
	}}
	metrics := newFakeMetrics()
	svc := NewService(graph, metrics)

	g, err := svc.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)

	var alice *datatypes.Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == "client_A" {
			alice = &g.Nodes[i]
		}
	}
	require.NotNil(t, alice)
	assert.Equal(t, "Alice", alice.Label, "attributes from the first row must win")

	// One metrics lookup per unseen id, never per row.
	assert.Equal(t, 1, metrics.clientLookups["A"])
	assert.Equal(t, 1, metrics.matterLookups["M1"])
	assert.Equal(t, 1, metrics.matterLookups["M2"])
}

func TestClientFamilyNetworkMetricsFailureDefaults(t *testing.T) {
	graph := &fakeGraph{rows: []map[string]any{
		familyRow("A", "Alice", "B", "Bob", []any{"M1"}, []any{}),
	}}
	metrics := newFakeMetrics()
	metrics.fail = true
	svc := NewService(graph, metrics)

	g, err := svc.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err, "a failed enrichment lookup must not fail the network")

	for _, n := range g.Nodes {
		switch n.ID {
		case "client_A":
			assert.EqualValues(t, 0, n.Props["matter_count"])
		case "matter_M1":
			assert.Equal(t, "Matter M1", n.Label)
			assert.Equal(t, "Active", n.Props["status"])
		}
	}
}

func TestClientFamilyNetworkEmptyResult(t *testing.T) {
	svc := NewService(&fakeGraph{rows: nil}, newFakeMetrics())

	g, err := svc.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, datatypes.SourceLive, g.Source, "an empty live result is not a fallback")
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.Empty(t, g.Nodes)
	assert.Equal(t, 0, g.Stats.ClusterCount)
}

func TestClientFamilyNetworkDeterministic(t *testing.T) {
	rows := []map[string]any{
		familyRow("A", "Alice", "B", "Bob", []any{"M1", "M2"}, []any{"M3"}),
		familyRow("C", "Carol", "D", "Dan", []any{"M4"}, []any{}),
	}

	svc1 := NewService(&fakeGraph{rows: rows}, newFakeMetrics())
	svc2 := NewService(&fakeGraph{rows: rows}, newFakeMetrics())

	g1, err := svc1.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)
	g2, err := svc2.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, g1, g2)
}

func TestClientFamilyNetworkFallsBackOnError(t *testing.T) {
	svc := NewService(&fakeGraph{err: errors.New("connection refused")}, newFakeMetrics())

	g, err := svc.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, datatypes.SourceSynthetic, g.Source)
	assert.NotEmpty(t, g.Nodes)
	assert.Equal(t, len(g.Nodes), g.Stats.NodeCount)
}

func TestClientFamilyNetworkNilGraphStore(t *testing.T) {
	svc := NewService(nil, nil, WithSeed(7))

	g1, err := svc.ClientFamilyNetwork(context.Background(), 4)
	require.NoError(t, err)
	g2, err := svc.ClientFamilyNetwork(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, datatypes.SourceSynthetic, g1.Source)
	assert.Equal(t, g1, g2, "synthetic networks are deterministic for a seed")
	assert.Equal(t, 4, g1.Stats.ClusterCount, "limit caps the family count")
}

func TestVendorMatterNetworkBuildsGraph(t *testing.T) {
	longDesc := strings.Repeat("x", 40)
	graph := &fakeGraph{rows: []map[string]any{
		{
			"vendor_id": "V1", "vendor_name": "Apex Experts", "vendor_specialty": "expert_witness",
			"matter_id": "M1", "matter_desc": longDesc, "matter_value": float64(120000),
			"client_id": "C1", "client_name": "Acme Corp",
			"vendor_cost": float64(12500), "service_type": "testimony",
		},
		{
			"vendor_id": "V1", "vendor_name": "Apex Experts", "vendor_specialty": "expert_witness",
			"matter_id": "M2", "matter_desc": "short", "matter_value": float64(90000),
			"client_id": "C1", "client_name": "Acme Corp",
			"vendor_cost": float64(4000), "service_type": "report",
		},
	}}
	metrics := newFakeMetrics()
	svc := NewService(graph, metrics)

	g, err := svc.VendorMatterNetwork(context.Background(), "", 50000)
	require.NoError(t, err)

	assert.Equal(t, "concentric", g.Layout)
	assert.Equal(t, "Vendor Network Analysis", g.Title)
	assert.Equal(t, 1, g.Stats.VendorCount)
	assert.Equal(t, 1, metrics.vendorLookups["V1"], "vendor enrichment runs once")

	var matter1 *datatypes.Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == "matter_M1" {
			matter1 = &g.Nodes[i]
		}
	}
	require.NotNil(t, matter1)
	assert.Equal(t, strings.Repeat("x", 30)+"...", matter1.Label)

	var usedIn []datatypes.Edge
	for _, e := range g.Edges {
		if e.Relationship == "used_in" {
			usedIn = append(usedIn, e)
		}
	}
	require.Len(t, usedIn, 2)
	assert.Equal(t, "$12,500", usedIn[0].Label)
	assert.Equal(t, float64(12500), usedIn[0].Cost)
}

func TestVendorMatterNetworkPracticeAreaTitle(t *testing.T) {
	svc := NewService(&fakeGraph{}, newFakeMetrics())

	g, err := svc.VendorMatterNetwork(context.Background(), "Auto Accident", 50000)
	require.NoError(t, err)
	assert.Equal(t, "Vendor Network Analysis - Auto Accident", g.Title)
}

func TestStaffWorkloadNetworkBuildsGraph(t *testing.T) {
	row := func(staffID, staffName, matterID string) map[string]any {
		return map[string]any{
			"staff_id": staffID, "staff_name": staffName, "staff_role": "Attorney",
			"dept_id": "D1", "dept_name": "Litigation",
			"matter_id": matterID, "matter_desc": "Case " + matterID, "matter_status": "Active",
			"client_id": "C1", "client_name": "Acme Corp",
		}
	}
	graph := &fakeGraph{rows: []map[string]any{
		row("S1", "Sarah Chen", "M1"),
		row("S1", "Sarah Chen", "M2"),
		row("S2", "David Kim", "M3"),
	}}
	metrics := newFakeMetrics()
	svc := NewService(graph, metrics)

	g, err := svc.StaffWorkloadNetwork(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "breadthfirst", g.Layout)
	assert.Equal(t, "Staff Workload Analysis", g.Title)
	assert.Equal(t, 2, g.Stats.StaffCount)
	assert.InDelta(t, 1.5, g.Stats.AvgWorkload, 0.001, "3 rows across 2 staff")
	assert.Equal(t, 1, metrics.staffLookups["S1"])
	assert.Equal(t, 1, metrics.staffLookups["S2"])

	var assigned, worksIn int
	for _, e := range g.Edges {
		switch e.Relationship {
		case "assigned_to":
			assigned++
		case "works_in":
			worksIn++
		}
	}
	assert.Equal(t, 3, assigned)
	assert.Equal(t, 1, worksIn, "department edge is emitted when the department is first seen")
}

func TestStaffWorkloadNetworkDepartmentTitle(t *testing.T) {
	svc := NewService(nil, nil)

	g, err := svc.StaffWorkloadNetwork(context.Background(), "Litigation")
	require.NoError(t, err)
	assert.Equal(t, datatypes.SourceSynthetic, g.Source)
	assert.Equal(t, "Staff Workload Analysis - Litigation", g.Title)
	for _, n := range g.Nodes {
		if n.Type == datatypes.NodeDepartment {
			assert.Equal(t, "Litigation", n.Label)
		}
	}
}

func TestEdgeDeduplicationOption(t *testing.T) {
	rows := []map[string]any{
		familyRow("A", "Alice", "B", "Bob", []any{}, []any{}),
		familyRow("A", "Alice", "B", "Bob", []any{}, []any{}),
	}

	plain := NewService(&fakeGraph{rows: rows}, newFakeMetrics())
	g, err := plain.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, g.Edges, 2, "repeated pair keeps both edges without dedupe")

	deduped := NewService(&fakeGraph{rows: rows}, newFakeMetrics(), WithEdgeDeduplication())
	g, err = deduped.ClientFamilyNetwork(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, g.Edges, 1)
}

func TestFormatDollars(t *testing.T) {
	cases := map[float64]string{
		0:       "$0",
		950:     "$950",
		12500:   "$12,500",
		1250000: "$1,250,000",
		999.6:   "$1,000",
		-4200:   "-$4,200",
	}
	for in, want := range cases {
		if got := formatDollars(in); got != want {
			t.Errorf("formatDollars(%v) = %q, want %q", in, got, want)
		}
	}
}
