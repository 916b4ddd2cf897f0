// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package stores holds the data-access layer over the relational analytics
// store (Postgres) and the relationship graph store (Neo4j). Connections
// are pooled at the driver level; sessions and pool checkouts are scoped
// to a single call and released on every exit path.
package stores

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphRunner executes a read-only Cypher query and returns the rows as
// generic maps. The dashboard services depend on this interface so tests
// can supply canned rows.
type GraphRunner interface {
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Graph wraps the Neo4j driver. The driver itself is long-lived and
// goroutine-safe; every query runs in a fresh read session that is closed
// before Run returns.
type Graph struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewGraph creates the graph store handle. It does not dial; call Verify
// to check connectivity.
func NewGraph(uri, user, password, database string) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}
	return &Graph{driver: driver, database: database}, nil
}

// Verify checks connectivity to the graph store.
func (g *Graph) Verify(ctx context.Context) error {
	return g.driver.VerifyConnectivity(ctx)
}

// Run executes a Cypher query in a per-call read session and fully
// materializes the result before returning.
func (g *Graph) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: g.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("running graph query: %w", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting graph result: %w", err)
	}

	rows := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.AsMap())
	}
	return rows, nil
}

// Write executes a Cypher statement in a per-call write session. Used by
// the seeding CLI; the dashboard itself never writes to the graph.
func (g *Graph) Write(ctx context.Context, query string, params map[string]any) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: g.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, query, params)
	})
	if err != nil {
		return fmt.Errorf("running graph write: %w", err)
	}
	return nil
}

// Close releases the underlying driver.
func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}
