// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "fmt"

// Source marks whether a payload came from the backing stores or from the
// deterministic synthetic generators. Callers and tests use it to tell
// degraded mode apart from genuine results; it is never substituted
// silently.
type Source string

const (
	SourceLive      Source = "live"
	SourceSynthetic Source = "synthetic"
)

// NodeType tags a node with the entity class it represents.
type NodeType string

const (
	NodeClient     NodeType = "client"
	NodeMatter     NodeType = "matter"
	NodeVendor     NodeType = "vendor"
	NodeStaff      NodeType = "staff"
	NodeDepartment NodeType = "department"
)

// Node is a single entity in a relationship network payload. Identity is
// the ID string, namespaced by type prefix (e.g. "client_1042"). Display
// attributes beyond the common ones live in Props.
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Type  NodeType       `json:"type"`
	Props map[string]any `json:"props,omitempty"`
}

// NodeID builds the namespaced node identifier for an entity.
func NodeID(t NodeType, rawID string) string {
	return fmt.Sprintf("%s_%s", t, rawID)
}

// Edge connects two nodes with a relationship tag. Cost and extra
// attributes are optional; zero Cost is omitted from JSON.
type Edge struct {
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	Relationship string         `json:"relationship"`
	Label        string         `json:"label,omitempty"`
	Cost         float64        `json:"cost,omitempty"`
	Props        map[string]any `json:"props,omitempty"`
}

// NetworkStats summarizes a network payload. Only the counters relevant to
// the producing query are populated.
type NetworkStats struct {
	NodeCount    int     `json:"nodeCount"`
	EdgeCount    int     `json:"edgeCount"`
	ClusterCount int     `json:"clusterCount,omitempty"`
	VendorCount  int     `json:"vendorCount,omitempty"`
	StaffCount   int     `json:"staffCount,omitempty"`
	AvgWorkload  float64 `json:"avgWorkload,omitempty"`
}

// NetworkGraph is the complete node/edge payload handed to the rendering
// layer: deduplicated nodes, edges, summary statistics and a layout hint.
type NetworkGraph struct {
	Nodes  []Node       `json:"nodes"`
	Edges  []Edge       `json:"edges"`
	Stats  NetworkStats `json:"stats"`
	Layout string       `json:"layout"`
	Title  string       `json:"title"`
	Source Source       `json:"source"`
}
