// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package network builds relationship graphs for the dashboard's network
// intelligence views. Rows coming back from the graph store are folded into
// a deduplicated node list and an edge list by the Aggregator; the Service
// owns the queries and the per-node metrics enrichment.
package network

import (
	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// Aggregator folds relationship rows into a node/edge payload. Nodes are
// deduplicated per type: the first row that mentions an id wins, and its
// attributes are never overwritten by later rows. Edges are only accepted
// once both endpoints have been emitted as nodes.
//
// An Aggregator is single-use and not safe for concurrent use.
type Aggregator struct {
	nodes []datatypes.Node
	edges []datatypes.Edge

	seen     map[datatypes.NodeType]map[string]struct{}
	nodeIDs  map[string]struct{}
	edgeKeys map[string]struct{}
	dedupe   bool
	skipped  int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithEdgeDedupe drops repeat edges with the same source, target and
// relationship. Off by default: undirected matches legitimately produce the
// same pair twice and some views want the raw multiplicity.
func WithEdgeDedupe() Option {
	return func(a *Aggregator) { a.dedupe = true }
}

// NewAggregator returns an empty Aggregator.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		nodes:   make([]datatypes.Node, 0, 32),
		edges:   make([]datatypes.Edge, 0, 32),
		seen:    make(map[datatypes.NodeType]map[string]struct{}),
		nodeIDs: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.dedupe {
		a.edgeKeys = make(map[string]struct{})
	}
	return a
}

// Seen reports whether a node of the given type and raw id has already been
// emitted. Callers use this to skip the metrics lookup for known nodes.
func (a *Aggregator) Seen(t datatypes.NodeType, rawID string) bool {
	ids, ok := a.seen[t]
	if !ok {
		return false
	}
	_, ok = ids[datatypes.NodeID(t, rawID)]
	return ok
}

// AddNode appends the node unless its id was already emitted. Returns true
// when the node was added. Duplicate ids keep the attributes of the first
// occurrence.
func (a *Aggregator) AddNode(n datatypes.Node) bool {
	if _, dup := a.nodeIDs[n.ID]; dup {
		return false
	}
	ids, ok := a.seen[n.Type]
	if !ok {
		ids = make(map[string]struct{})
		a.seen[n.Type] = ids
	}
	ids[n.ID] = struct{}{}
	a.nodeIDs[n.ID] = struct{}{}
	a.nodes = append(a.nodes, n)
	return true
}

// AddEdge appends the edge when both endpoints exist as emitted nodes.
// Edges referencing an unknown node are dropped and counted, not errors:
// a malformed row must not poison the rest of the payload.
func (a *Aggregator) AddEdge(e datatypes.Edge) bool {
	if _, ok := a.nodeIDs[e.Source]; !ok {
		a.skipped++
		return false
	}
	if _, ok := a.nodeIDs[e.Target]; !ok {
		a.skipped++
		return false
	}
	if a.dedupe {
		key := e.Source + "\x00" + e.Target + "\x00" + e.Relationship
		if _, dup := a.edgeKeys[key]; dup {
			return false
		}
		a.edgeKeys[key] = struct{}{}
	}
	a.edges = append(a.edges, e)
	return true
}

// SeenCount returns the number of emitted nodes of the given type.
func (a *Aggregator) SeenCount(t datatypes.NodeType) int {
	return len(a.seen[t])
}

// SkippedEdges returns the number of edges dropped because an endpoint was
// never emitted as a node.
func (a *Aggregator) SkippedEdges() int { return a.skipped }

// Graph assembles the final payload. Node and edge counts in the stats are
// always set from the aggregated lists; callers fill the view-specific
// fields before passing stats in. Empty results stay empty slices so the
// JSON encodes as [] rather than null.
func (a *Aggregator) Graph(layout, title string, source datatypes.Source, stats datatypes.NetworkStats) datatypes.NetworkGraph {
	stats.NodeCount = len(a.nodes)
	stats.EdgeCount = len(a.edges)
	return datatypes.NetworkGraph{
		Nodes:  a.nodes,
		Edges:  a.edges,
		Stats:  stats,
		Layout: layout,
		Title:  title,
		Source: source,
	}
}
