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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/activity"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/analytics3d"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/lifecycle"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/network"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/telemetry"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/views"
)

var tracer = otel.Tracer("clio-analytics/dashboard/handlers")

// Services bundles the data services the handlers read from.
type Services struct {
	Lifecycle *lifecycle.Service
	Activity  *activity.Service
	Analytics *analytics3d.Service
	Network   *network.Service
}

// GetView dispatches on the :view path parameter and returns the composed
// visual tree for that dashboard view. Unknown views are a 404.
func GetView(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("view")
		if !views.Known(name) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown view: " + name})
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "dashboard.GetView")
		span.SetAttributes(attribute.String("view", name))
		defer span.End()

		var payload datatypes.ViewPayload
		switch name {
		case views.ViewOverview:
			urgent, urgentSrc := svc.Activity.UrgentTasks(ctx, 10)
			payload = views.Overview(
				svc.Lifecycle.KPIs(ctx),
				svc.Lifecycle.PracticeAreas(ctx, 5),
				svc.Activity.Timeline(ctx, 30),
				urgent, urgentSrc)

		case views.ViewLifecycle:
			payload = views.Lifecycle(svc.Lifecycle.Stages(ctx), svc.Analytics.Sankey())

		case views.ViewDepartment:
			payload = views.Department(
				svc.Lifecycle.Departments(ctx),
				svc.Activity.Workload(ctx, 25))

		case views.ViewMatter3D, views.ViewMatterBubble:
			var q datatypes.Matter3DQuery
			if !bindQuery(c, &q) {
				return
			}
			data := svc.Analytics.Matters3D(ctx, q.Limit, q.Department, q.RangeDays)
			if name == views.ViewMatter3D {
				payload = views.Matter3D(data)
			} else {
				payload = views.MatterBubble(data)
			}

		case views.ViewMatterTimeline:
			var q datatypes.TimelineQuery
			if !bindQuery(c, &q) {
				return
			}
			payload = views.MatterTimeline(svc.Analytics.Timeline(q.Department, q.Limit))

		case views.ViewBottlenecks:
			payload = views.Bottlenecks(svc.Lifecycle.Bottlenecks(ctx))

		case views.ViewAnalytics:
			var q datatypes.WorkloadQuery
			if !bindQuery(c, &q) {
				return
			}
			payload = views.Analytics(
				svc.Analytics.Heatmap(q.Dimension),
				svc.Analytics.Sankey(),
				svc.Analytics.ParallelCoords())
		}

		telemetry.RequestsServed.WithLabelValues(name).Inc()
		c.JSON(http.StatusOK, payload)
	}
}

// bindQuery binds and validates a query struct, writing the 400 response
// itself on failure.
func bindQuery(c *gin.Context, q interface{ Validate() error }) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		slog.Warn("rejecting malformed query", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed query parameters"})
		return false
	}
	if err := q.Validate(); err != nil {
		slog.Warn("rejecting invalid query", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
