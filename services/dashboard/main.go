// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/credentials/insecure"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/activity"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/analytics3d"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/config"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/handlers"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/lifecycle"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/network"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/routes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/stores"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
)

func initTracer(cfg *config.Config) (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := cfg.Telemetry.OTLPEndpoint
	if otelEndpoint == "" {
		otelEndpoint = "clio-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(cfg.Telemetry.ServiceName)))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	cleanup, err := initTracer(cfg)
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Both stores are optional: the dashboard comes up in degraded mode
	// and serves synthetic data for whatever is missing.
	var relational *stores.Relational
	if rel, err := stores.NewRelational(ctx, cfg.Postgres.ConnString()); err != nil {
		slog.Warn("postgres unavailable, relational datasets will be synthetic", "error", err)
	} else {
		relational = rel
		defer relational.Close()
		slog.Info("connected to postgres", "host", cfg.Postgres.Host)
	}

	var graph *stores.Graph
	if g, err := stores.NewGraph(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database); err != nil {
		slog.Warn("neo4j driver init failed, network datasets will be synthetic", "error", err)
	} else if err := g.Verify(ctx); err != nil {
		slog.Warn("neo4j unreachable, network datasets will be synthetic", "error", err)
		_ = g.Close(ctx)
	} else {
		graph = g
		defer graph.Close(context.Background())
		slog.Info("connected to neo4j", "uri", cfg.Neo4j.URI)
	}

	gen := synth.New(cfg.SyntheticSeed)

	// Interface values must stay nil when the concrete store is nil.
	var lifecycleStore lifecycle.Store
	var activityStore activity.Store
	var analyticsStore analytics3d.Store
	var metricsStore network.MetricsStore
	var relationalPinger handlers.Pinger
	if relational != nil {
		lifecycleStore = relational
		activityStore = relational
		analyticsStore = relational
		metricsStore = relational
		relationalPinger = relational
	}

	var graphRunner stores.GraphRunner
	var graphPinger handlers.Pinger
	if graph != nil {
		graphRunner = graph
		graphPinger = graph
	}

	svc := &handlers.Services{
		Lifecycle: lifecycle.NewService(lifecycleStore, gen),
		Activity:  activity.NewService(activityStore, gen),
		Analytics: analytics3d.NewService(analyticsStore, gen),
		Network:   network.NewService(graphRunner, metricsStore, network.WithSeed(cfg.SyntheticSeed)),
	}

	authToken, err := cfg.AuthToken()
	if err != nil {
		log.Fatalf("failed to resolve auth token: %v", err)
	}

	if !cfg.HTTP.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))

	routes.SetupRoutes(router, svc, relationalPinger, graphPinger, authToken)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	slog.Info("starting dashboard service", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("dashboard service exited: %v", err)
	}
}
