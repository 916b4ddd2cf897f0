// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package activity serves task-centric datasets: per-user workload, urgent
// task lists and the daily activity timeline. Reads fall back to synthetic
// data when the relational store is unavailable.
package activity

import (
	"context"
	"log/slog"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/telemetry"
)

// Store is the slice of the relational store this service reads.
type Store interface {
	UserWorkload(ctx context.Context, limit int) (datatypes.WorkloadData, error)
	UrgentTasks(ctx context.Context, limit int) ([]datatypes.UrgentTask, error)
	ActivitySeries(ctx context.Context, days int) (datatypes.ActivitySeries, error)
}

// Service reads task activity datasets with synthetic fallback.
type Service struct {
	store Store
	gen   *synth.Generator
}

// NewService builds the activity service. A nil store pins every read to
// the synthetic dataset.
func NewService(store Store, gen *synth.Generator) *Service {
	return &Service{store: store, gen: gen}
}

func (s *Service) fallback(what string, err error) {
	if err != nil {
		slog.Warn("activity store read failed, serving synthetic data", "dataset", what, "error", err)
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
	}
	telemetry.SyntheticFallbacks.WithLabelValues("activity").Inc()
}

// Workload returns the per-user task workload table.
func (s *Service) Workload(ctx context.Context, limit int) datatypes.WorkloadData {
	if s.store != nil {
		w, err := s.store.UserWorkload(ctx, limit)
		if err == nil {
			return w
		}
		s.fallback("workload", err)
	} else {
		s.fallback("workload", nil)
	}
	return s.gen.Workload()
}

// UrgentTasks returns the overdue and high-priority task rows. Synthetic
// rows are tagged through the returned source value since the slice itself
// carries no marker.
func (s *Service) UrgentTasks(ctx context.Context, limit int) ([]datatypes.UrgentTask, datatypes.Source) {
	if s.store != nil {
		tasks, err := s.store.UrgentTasks(ctx, limit)
		if err == nil {
			if tasks == nil {
				tasks = []datatypes.UrgentTask{}
			}
			return tasks, datatypes.SourceLive
		}
		s.fallback("urgent_tasks", err)
	} else {
		s.fallback("urgent_tasks", nil)
	}
	tasks := s.gen.UrgentTasks()
	if limit > 0 && limit < len(tasks) {
		tasks = tasks[:limit]
	}
	return tasks, datatypes.SourceSynthetic
}

// Timeline returns the trailing matters-processed-per-day series.
func (s *Service) Timeline(ctx context.Context, days int) datatypes.ActivitySeries {
	if s.store != nil {
		a, err := s.store.ActivitySeries(ctx, days)
		if err == nil {
			return a
		}
		s.fallback("timeline", err)
	} else {
		s.fallback("timeline", nil)
	}
	return s.gen.Activity(days)
}
