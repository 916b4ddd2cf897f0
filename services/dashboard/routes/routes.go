// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/handlers"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/middleware"
)

// SetupRoutes registers the dashboard API. Health and metrics stay outside
// the auth boundary; authToken empty means the API group is open too.
func SetupRoutes(router *gin.Engine, svc *handlers.Services, relational, graph handlers.Pinger, authToken string) {
	router.GET("/health", handlers.HealthCheck(relational, graph))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	if authToken != "" {
		v1.Use(middleware.BearerAuth(authToken))
	}
	{
		v1.GET("/views/:view", handlers.GetView(svc))
		v1.GET("/kpis", handlers.GetKPIs(svc))
		v1.GET("/lifecycle/stages", handlers.GetStages(svc))
		v1.GET("/departments", handlers.GetDepartments(svc))
		v1.GET("/bottlenecks", handlers.GetBottlenecks(svc))
		v1.GET("/analytics/workload", handlers.GetWorkload(svc))

		matters := v1.Group("/matters")
		{
			matters.GET("/3d", handlers.GetMatters3D(svc))
			matters.GET("/timeline", handlers.GetMatterTimeline(svc))
			matters.GET("/:matterId", handlers.GetMatterDetail(svc))
		}

		network := v1.Group("/network")
		{
			network.GET("/family", handlers.GetFamilyNetwork(svc))
			network.GET("/vendors", handlers.GetVendorNetwork(svc))
			network.GET("/staff", handlers.GetStaffNetwork(svc))
		}
	}
}
