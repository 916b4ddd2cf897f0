// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package network

import (
	"testing"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

func clientNode(id, label string) datatypes.Node {
	return datatypes.Node{
		ID:    datatypes.NodeID(datatypes.NodeClient, id),
		Label: label,
		Type:  datatypes.NodeClient,
	}
}

func TestAggregatorDeduplicatesNodes(t *testing.T) {
	agg := NewAggregator()

	if !agg.AddNode(clientNode("A", "Alice")) {
		t.Fatal("first add should succeed")
	}
	if agg.AddNode(clientNode("A", "Alice Updated")) {
		t.Error("duplicate id should be rejected")
	}
	if !agg.Seen(datatypes.NodeClient, "A") {
		t.Error("Seen should report emitted id")
	}
	if agg.Seen(datatypes.NodeMatter, "A") {
		t.Error("same raw id under a different type is a different node")
	}

	g := agg.Graph("cose", "t", datatypes.SourceLive, datatypes.NetworkStats{})
	if len(g.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(g.Nodes))
	}
	if g.Nodes[0].Label != "Alice" {
		t.Errorf("first occurrence should win, got label %q", g.Nodes[0].Label)
	}
}

func TestAggregatorRejectsEdgesWithUnknownEndpoints(t *testing.T) {
	agg := NewAggregator()
	agg.AddNode(clientNode("A", "Alice"))

	if agg.AddEdge(datatypes.Edge{
		Source:       datatypes.NodeID(datatypes.NodeClient, "A"),
		Target:       datatypes.NodeID(datatypes.NodeClient, "B"),
		Relationship: "family",
	}) {
		t.Error("edge to unknown node should be dropped")
	}
	if agg.SkippedEdges() != 1 {
		t.Errorf("expected 1 skipped edge, got %d", agg.SkippedEdges())
	}

	agg.AddNode(clientNode("B", "Bob"))
	if !agg.AddEdge(datatypes.Edge{
		Source:       datatypes.NodeID(datatypes.NodeClient, "A"),
		Target:       datatypes.NodeID(datatypes.NodeClient, "B"),
		Relationship: "family",
	}) {
		t.Error("edge between emitted nodes should be accepted")
	}
}

func TestAggregatorEdgeDedupeOption(t *testing.T) {
	edge := datatypes.Edge{
		Source:       datatypes.NodeID(datatypes.NodeClient, "A"),
		Target:       datatypes.NodeID(datatypes.NodeClient, "B"),
		Relationship: "family",
	}

	plain := NewAggregator()
	plain.AddNode(clientNode("A", "Alice"))
	plain.AddNode(clientNode("B", "Bob"))
	plain.AddEdge(edge)
	plain.AddEdge(edge)
	if got := plain.Graph("cose", "t", datatypes.SourceLive, datatypes.NetworkStats{}); len(got.Edges) != 2 {
		t.Errorf("without dedupe both edges survive, got %d", len(got.Edges))
	}

	deduped := NewAggregator(WithEdgeDedupe())
	deduped.AddNode(clientNode("A", "Alice"))
	deduped.AddNode(clientNode("B", "Bob"))
	deduped.AddEdge(edge)
	deduped.AddEdge(edge)
	// Reversed direction is a different edge even under dedupe.
	deduped.AddEdge(datatypes.Edge{
		Source:       edge.Target,
		Target:       edge.Source,
		Relationship: "family",
	})
	if got := deduped.Graph("cose", "t", datatypes.SourceLive, datatypes.NetworkStats{}); len(got.Edges) != 2 {
		t.Errorf("with dedupe expected 2 edges, got %d", len(got.Edges))
	}
}

func TestAggregatorEmptyGraph(t *testing.T) {
	g := NewAggregator().Graph("cose", "Empty", datatypes.SourceLive, datatypes.NetworkStats{})

	if g.Nodes == nil || g.Edges == nil {
		t.Fatal("empty graph must keep non-nil slices")
	}
	if g.Stats.NodeCount != 0 || g.Stats.EdgeCount != 0 {
		t.Errorf("empty graph stats should be zero, got %+v", g.Stats)
	}
}

func TestAggregatorStatsCounts(t *testing.T) {
	agg := NewAggregator()
	agg.AddNode(clientNode("A", "Alice"))
	agg.AddNode(clientNode("B", "Bob"))
	agg.AddNode(datatypes.Node{
		ID:   datatypes.NodeID(datatypes.NodeMatter, "M1"),
		Type: datatypes.NodeMatter,
	})
	agg.AddEdge(datatypes.Edge{
		Source:       datatypes.NodeID(datatypes.NodeClient, "A"),
		Target:       datatypes.NodeID(datatypes.NodeMatter, "M1"),
		Relationship: "owns",
	})

	g := agg.Graph("cose", "t", datatypes.SourceLive, datatypes.NetworkStats{ClusterCount: 1})
	if g.Stats.NodeCount != 3 || g.Stats.EdgeCount != 1 {
		t.Errorf("stats counts wrong: %+v", g.Stats)
	}
	if g.Stats.ClusterCount != 1 {
		t.Errorf("caller-provided stats fields must survive: %+v", g.Stats)
	}
	if agg.SeenCount(datatypes.NodeClient) != 2 {
		t.Errorf("expected 2 client nodes, got %d", agg.SeenCount(datatypes.NodeClient))
	}
}
