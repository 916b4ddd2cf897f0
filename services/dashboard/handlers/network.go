// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// GetFamilyNetwork returns family relationship clusters between clients.
func GetFamilyNetwork(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q datatypes.FamilyNetworkQuery
		if !bindQuery(c, &q) {
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "dashboard.GetFamilyNetwork")
		span.SetAttributes(attribute.Int("limit", q.Limit))
		defer span.End()

		g, err := svc.Network.ClientFamilyNetwork(ctx, q.Limit)
		if err != nil {
			slog.Error("failed to build family network", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build family network"})
			return
		}
		c.JSON(http.StatusOK, g)
	}
}

// GetVendorNetwork returns vendor usage across matters.
func GetVendorNetwork(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q datatypes.VendorNetworkQuery
		if !bindQuery(c, &q) {
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "dashboard.GetVendorNetwork")
		span.SetAttributes(
			attribute.String("practice_area", q.PracticeArea),
			attribute.Int("min_value", q.MinValue))
		defer span.End()

		g, err := svc.Network.VendorMatterNetwork(ctx, q.PracticeArea, q.MinValue)
		if err != nil {
			slog.Error("failed to build vendor network", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build vendor network"})
			return
		}
		c.JSON(http.StatusOK, g)
	}
}

// GetStaffNetwork returns staff workload assignments.
func GetStaffNetwork(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q datatypes.StaffNetworkQuery
		if !bindQuery(c, &q) {
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "dashboard.GetStaffNetwork")
		span.SetAttributes(attribute.String("department", q.Department))
		defer span.End()

		g, err := svc.Network.StaffWorkloadNetwork(ctx, q.Department)
		if err != nil {
			slog.Error("failed to build staff network", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build staff network"})
			return
		}
		c.JSON(http.StatusOK, g)
	}
}
