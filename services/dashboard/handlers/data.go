// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cfe-solutions/clio-analytics/pkg/validation"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/analytics3d"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// GetKPIs returns the overview headline numbers.
func GetKPIs(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Lifecycle.KPIs(c.Request.Context()))
	}
}

// GetStages returns the lifecycle stage distribution.
func GetStages(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Lifecycle.Stages(c.Request.Context()))
	}
}

// GetDepartments returns the department cards and summary aggregates.
func GetDepartments(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"cards":   svc.Lifecycle.Departments(ctx),
			"summary": svc.Analytics.Departments(ctx),
		})
	}
}

// GetBottlenecks returns the stuck-matter breakdown.
func GetBottlenecks(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Lifecycle.Bottlenecks(c.Request.Context()))
	}
}

// GetWorkload returns the attorney workload heatmap for the requested
// dimension plus the per-user task table.
func GetWorkload(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q datatypes.WorkloadQuery
		if !bindQuery(c, &q) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"heatmap": svc.Analytics.Heatmap(q.Dimension),
			"users":   svc.Activity.Workload(c.Request.Context(), 25),
		})
	}
}

// GetMatters3D returns the columnar 3D scatter dataset.
func GetMatters3D(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q datatypes.Matter3DQuery
		if !bindQuery(c, &q) {
			return
		}
		c.JSON(http.StatusOK, svc.Analytics.Matters3D(c.Request.Context(), q.Limit, q.Department, q.RangeDays))
	}
}

// GetMatterTimeline returns the gantt dataset.
func GetMatterTimeline(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q datatypes.TimelineQuery
		if !bindQuery(c, &q) {
			return
		}
		c.JSON(http.StatusOK, svc.Analytics.Timeline(q.Department, q.Limit))
	}
}

// GetMatterDetail returns the full record for one matter.
func GetMatterDetail(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		matterID := c.Param("matterId")
		if err := validation.ValidateMatterID(matterID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		detail, err := svc.Analytics.Detail(c.Request.Context(), matterID)
		if errors.Is(err, analytics3d.ErrMatterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "matter not found"})
			return
		}
		if err != nil {
			slog.Error("failed to read matter detail", "matter_id", matterID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read matter detail"})
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}
