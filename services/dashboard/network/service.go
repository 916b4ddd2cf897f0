// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package network

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/stores"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/telemetry"
)

// MetricsStore supplies the per-node enrichment figures from the relational
// store. Exactly one lookup is made per newly discovered node id; already
// seen ids never trigger a lookup.
type MetricsStore interface {
	ClientMetrics(ctx context.Context, clientID string) (datatypes.ClientMetrics, error)
	MatterRecord(ctx context.Context, matterID string) (datatypes.MatterRecord, error)
	VendorMetrics(ctx context.Context, vendorID string) (datatypes.VendorMetrics, error)
	StaffMetrics(ctx context.Context, staffID string) (datatypes.StaffMetrics, error)
}

const familyNetworkQuery = `
	MATCH (c1:Client)-[:FAMILY_OF]-(c2:Client)
	MATCH (c1)-[:OWNS]->(m1:Matter)
	MATCH (c2)-[:OWNS]->(m2:Matter)
	RETURN
		c1.id AS client1_id, c1.name AS client1_name,
		c2.id AS client2_id, c2.name AS client2_name,
		collect(DISTINCT m1.id) AS client1_matters,
		collect(DISTINCT m2.id) AS client2_matters,
		count(DISTINCT m1) + count(DISTINCT m2) AS total_matters
	ORDER BY total_matters DESC
	LIMIT $limit`

const vendorNetworkQuery = `
	MATCH (v:Vendor)-[r:USED_IN]->(m:Matter)
	MATCH (m)-[:OWNED_BY]->(c:Client)
	WHERE m.value >= $min_value%s
	RETURN
		v.id AS vendor_id, v.name AS vendor_name, v.specialty AS vendor_specialty,
		m.id AS matter_id, m.description AS matter_desc, m.value AS matter_value,
		c.id AS client_id, c.name AS client_name,
		r.cost AS vendor_cost, r.service_type AS service_type
	ORDER BY r.cost DESC`

const staffNetworkQuery = `
	MATCH (m:Matter)-[:ASSIGNED_TO]->(s:Staff)-[:WORKS_IN]->(d:Department)
	MATCH (m)-[:OWNED_BY]->(c:Client)
	%s
	RETURN
		s.id AS staff_id, s.name AS staff_name, s.role AS staff_role,
		d.id AS dept_id, d.name AS dept_name,
		m.id AS matter_id, m.description AS matter_desc, m.status AS matter_status,
		c.id AS client_id, c.name AS client_name
	ORDER BY s.name`

// Service produces the network intelligence payloads. It reads relationship
// rows from the graph store, enriches newly discovered nodes from the
// relational store, and falls back to deterministic synthetic networks when
// the graph store is unavailable.
type Service struct {
	graph   stores.GraphRunner
	metrics MetricsStore
	seed    int64
	opts    []Option
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSeed sets the seed for the synthetic fallback networks.
func WithSeed(seed int64) ServiceOption {
	return func(s *Service) { s.seed = seed }
}

// WithEdgeDeduplication makes every produced graph drop repeat edges with
// identical source, target and relationship.
func WithEdgeDeduplication() ServiceOption {
	return func(s *Service) { s.opts = append(s.opts, WithEdgeDedupe()) }
}

// NewService builds a network intelligence service. Either store may be
// nil: a nil graph store pins the service to synthetic data, a nil metrics
// store disables enrichment and leaves default figures on the nodes.
func NewService(graph stores.GraphRunner, metrics MetricsStore, opts ...ServiceOption) *Service {
	s := &Service{graph: graph, metrics: metrics, seed: 42}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) newAggregator() *Aggregator {
	return NewAggregator(s.opts...)
}

// run executes the query and reports whether live rows are usable. A nil
// graph store or a query error sends the caller to the synthetic path.
func (s *Service) run(ctx context.Context, query string, params map[string]any) ([]map[string]any, bool) {
	if s.graph == nil {
		telemetry.SyntheticFallbacks.WithLabelValues("network").Inc()
		return nil, false
	}
	rows, err := s.graph.Run(ctx, query, params)
	if err != nil {
		slog.Warn("graph query failed, serving synthetic network", "error", err)
		telemetry.StoreErrors.WithLabelValues("graph").Inc()
		telemetry.SyntheticFallbacks.WithLabelValues("network").Inc()
		return nil, false
	}
	return rows, true
}

// ClientFamilyNetwork returns family relationship clusters between clients
// together with the matters each family member owns.
func (s *Service) ClientFamilyNetwork(ctx context.Context, limit int) (datatypes.NetworkGraph, error) {
	rows, live := s.run(ctx, familyNetworkQuery, map[string]any{"limit": limit})
	if !live {
		return s.syntheticFamilyNetwork(limit), nil
	}

	agg := s.newAggregator()
	for _, row := range rows {
		for _, key := range []string{"client1", "client2"} {
			clientID := rowString(row[key+"_id"])
			if clientID == "" || agg.Seen(datatypes.NodeClient, clientID) {
				continue
			}
			cm := s.clientMetrics(ctx, clientID)
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeClient, clientID),
				Label: rowString(row[key+"_name"]),
				Type:  datatypes.NodeClient,
				Props: map[string]any{
					"value":        cm.TotalMatterValue,
					"matter_count": cm.MatterCount,
				},
			})
		}

		agg.AddEdge(datatypes.Edge{
			Source:       datatypes.NodeID(datatypes.NodeClient, rowString(row["client1_id"])),
			Target:       datatypes.NodeID(datatypes.NodeClient, rowString(row["client2_id"])),
			Relationship: "family",
			Label:        "Family",
		})

		for _, side := range []struct {
			matters  []string
			clientID string
		}{
			{rowStringSlice(row["client1_matters"]), rowString(row["client1_id"])},
			{rowStringSlice(row["client2_matters"]), rowString(row["client2_id"])},
		} {
			for _, matterID := range side.matters {
				if matterID == "" || agg.Seen(datatypes.NodeMatter, matterID) {
					continue
				}
				mr := s.matterRecord(ctx, matterID)
				label := mr.Description
				if label == "" {
					label = fmt.Sprintf("Matter %s", matterID)
				}
				status := mr.Status
				if status == "" {
					status = "Active"
				}
				agg.AddNode(datatypes.Node{
					ID:    datatypes.NodeID(datatypes.NodeMatter, matterID),
					Label: label,
					Type:  datatypes.NodeMatter,
					Props: map[string]any{
						"value":  mr.Value,
						"status": status,
					},
				})
				agg.AddEdge(datatypes.Edge{
					Source:       datatypes.NodeID(datatypes.NodeClient, side.clientID),
					Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
					Relationship: "owns",
					Label:        "Owns",
				})
			}
		}
	}

	stats := datatypes.NetworkStats{
		// Each family pair contributes two clients: half the distinct
		// clients approximates the cluster count.
		ClusterCount: agg.SeenCount(datatypes.NodeClient) / 2,
	}
	return agg.Graph("cose", "Client Family Networks", datatypes.SourceLive, stats), nil
}

// VendorMatterNetwork returns vendor usage across matters above the value
// floor, optionally restricted to one practice area.
func (s *Service) VendorMatterNetwork(ctx context.Context, practiceArea string, minValue int) (datatypes.NetworkGraph, error) {
	var areaClause string
	params := map[string]any{"min_value": minValue}
	if practiceArea != "" {
		areaClause = " AND m.practice_area = $practice_area"
		params["practice_area"] = practiceArea
	}
	query := fmt.Sprintf(vendorNetworkQuery, areaClause)

	rows, live := s.run(ctx, query, params)
	if !live {
		return s.syntheticVendorNetwork(practiceArea, minValue), nil
	}

	agg := s.newAggregator()
	for _, row := range rows {
		vendorID := rowString(row["vendor_id"])
		if vendorID != "" && !agg.Seen(datatypes.NodeVendor, vendorID) {
			vm := s.vendorMetrics(ctx, vendorID)
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeVendor, vendorID),
				Label: rowString(row["vendor_name"]),
				Type:  datatypes.NodeVendor,
				Props: map[string]any{
					"specialty":     rowString(row["vendor_specialty"]),
					"total_revenue": vm.TotalRevenue,
					"matter_count":  vm.MatterCount,
				},
			})
		}

		matterID := rowString(row["matter_id"])
		if matterID != "" && !agg.Seen(datatypes.NodeMatter, matterID) {
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeMatter, matterID),
				Label: truncateLabel(rowString(row["matter_desc"]), 30),
				Type:  datatypes.NodeMatter,
				Props: map[string]any{"value": rowFloat(row["matter_value"])},
			})
		}

		clientID := rowString(row["client_id"])
		if clientID != "" && !agg.Seen(datatypes.NodeClient, clientID) {
			// Context node only: no metrics lookup.
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeClient, clientID),
				Label: rowString(row["client_name"]),
				Type:  datatypes.NodeClient,
				Props: map[string]any{"value": 0},
			})
			agg.AddEdge(datatypes.Edge{
				Source:       datatypes.NodeID(datatypes.NodeClient, clientID),
				Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
				Relationship: "owns",
				Label:        "Owns",
			})
		}

		cost := rowFloat(row["vendor_cost"])
		agg.AddEdge(datatypes.Edge{
			Source:       datatypes.NodeID(datatypes.NodeVendor, vendorID),
			Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
			Relationship: "used_in",
			Label:        formatDollars(cost),
			Cost:         cost,
			Props:        map[string]any{"service_type": rowString(row["service_type"])},
		})
	}

	stats := datatypes.NetworkStats{VendorCount: agg.SeenCount(datatypes.NodeVendor)}
	return agg.Graph("concentric", vendorNetworkTitle(practiceArea), datatypes.SourceLive, stats), nil
}

// StaffWorkloadNetwork returns staff assignment patterns across matters and
// departments, optionally restricted to one department.
func (s *Service) StaffWorkloadNetwork(ctx context.Context, department string) (datatypes.NetworkGraph, error) {
	var deptClause string
	params := map[string]any{}
	if department != "" {
		deptClause = "WHERE d.name = $department"
		params["department"] = department
	}
	query := fmt.Sprintf(staffNetworkQuery, deptClause)

	rows, live := s.run(ctx, query, params)
	if !live {
		return s.syntheticStaffNetwork(department), nil
	}

	agg := s.newAggregator()
	workloads := make(map[string]int)
	for _, row := range rows {
		staffID := rowString(row["staff_id"])
		workloads[staffID]++

		if staffID != "" && !agg.Seen(datatypes.NodeStaff, staffID) {
			sm := s.staffMetrics(ctx, staffID)
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeStaff, staffID),
				Label: rowString(row["staff_name"]),
				Type:  datatypes.NodeStaff,
				Props: map[string]any{
					"role":         rowString(row["staff_role"]),
					"workload":     sm.ActiveMatters,
					"capacity_pct": sm.CapacityPct,
				},
			})
		}

		deptID := rowString(row["dept_id"])
		if deptID != "" && !agg.Seen(datatypes.NodeDepartment, deptID) {
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeDepartment, deptID),
				Label: rowString(row["dept_name"]),
				Type:  datatypes.NodeDepartment,
			})
			agg.AddEdge(datatypes.Edge{
				Source:       datatypes.NodeID(datatypes.NodeStaff, staffID),
				Target:       datatypes.NodeID(datatypes.NodeDepartment, deptID),
				Relationship: "works_in",
				Label:        "Works in",
			})
		}

		matterID := rowString(row["matter_id"])
		if matterID != "" && !agg.Seen(datatypes.NodeMatter, matterID) {
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeMatter, matterID),
				Label: truncateLabel(rowString(row["matter_desc"]), 25),
				Type:  datatypes.NodeMatter,
				Props: map[string]any{"status": rowString(row["matter_status"])},
			})
			agg.AddEdge(datatypes.Edge{
				Source:       datatypes.NodeID(datatypes.NodeStaff, staffID),
				Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
				Relationship: "assigned_to",
				Label:        "Assigned",
			})
		}
	}

	var avg float64
	if len(workloads) > 0 {
		total := 0
		for _, n := range workloads {
			total += n
		}
		avg = float64(total) / float64(len(workloads))
	}
	stats := datatypes.NetworkStats{
		StaffCount:  agg.SeenCount(datatypes.NodeStaff),
		AvgWorkload: avg,
	}
	return agg.Graph("breadthfirst", staffNetworkTitle(department), datatypes.SourceLive, stats), nil
}

func vendorNetworkTitle(practiceArea string) string {
	if practiceArea == "" {
		return "Vendor Network Analysis"
	}
	return "Vendor Network Analysis - " + practiceArea
}

func staffNetworkTitle(department string) string {
	if department == "" {
		return "Staff Workload Analysis"
	}
	return "Staff Workload Analysis - " + department
}

// clientMetrics and friends default to zero values when the relational
// store is absent or the lookup fails; a missing metric never fails the
// whole network.
func (s *Service) clientMetrics(ctx context.Context, clientID string) datatypes.ClientMetrics {
	if s.metrics == nil {
		return datatypes.ClientMetrics{}
	}
	cm, err := s.metrics.ClientMetrics(ctx, clientID)
	if err != nil {
		slog.Warn("client metrics lookup failed", "client_id", clientID, "error", err)
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
		return datatypes.ClientMetrics{}
	}
	return cm
}

func (s *Service) matterRecord(ctx context.Context, matterID string) datatypes.MatterRecord {
	if s.metrics == nil {
		return datatypes.MatterRecord{ID: matterID}
	}
	mr, err := s.metrics.MatterRecord(ctx, matterID)
	if err != nil {
		slog.Warn("matter record lookup failed", "matter_id", matterID, "error", err)
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
		return datatypes.MatterRecord{ID: matterID}
	}
	return mr
}

func (s *Service) vendorMetrics(ctx context.Context, vendorID string) datatypes.VendorMetrics {
	if s.metrics == nil {
		return datatypes.VendorMetrics{}
	}
	vm, err := s.metrics.VendorMetrics(ctx, vendorID)
	if err != nil {
		slog.Warn("vendor metrics lookup failed", "vendor_id", vendorID, "error", err)
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
		return datatypes.VendorMetrics{}
	}
	return vm
}

func (s *Service) staffMetrics(ctx context.Context, staffID string) datatypes.StaffMetrics {
	if s.metrics == nil {
		return datatypes.StaffMetrics{}
	}
	sm, err := s.metrics.StaffMetrics(ctx, staffID)
	if err != nil {
		slog.Warn("staff metrics lookup failed", "staff_id", staffID, "error", err)
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
		return datatypes.StaffMetrics{}
	}
	return sm
}

// rowString coerces a graph store value to a string. Neo4j integer ids come
// back as int64.
func rowString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func rowFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	default:
		return 0
	}
}

func rowStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := rowString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// truncateLabel shortens long display labels with an ellipsis suffix.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// formatDollars renders a cost as a comma-grouped dollar amount, e.g.
// "$12,500".
func formatDollars(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
