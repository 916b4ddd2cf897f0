// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Verify(ctx context.Context) error
}

// HealthCheck reports service liveness and per-store availability. The
// service is healthy even with both stores down; it serves synthetic data
// in that state and the response says so.
func HealthCheck(relational, graph Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		stores := gin.H{
			"postgres": storeStatus(ctx, relational),
			"neo4j":    storeStatus(ctx, graph),
		}

		status := "ok"
		if stores["postgres"] != "up" || stores["neo4j"] != "up" {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"stores": stores,
		})
	}
}

func storeStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "not_configured"
	}
	if err := p.Verify(ctx); err != nil {
		return "down"
	}
	return "up"
}
