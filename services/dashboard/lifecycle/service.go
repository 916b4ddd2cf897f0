// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package lifecycle serves the matter lifecycle datasets: headline KPIs,
// stage distribution, department cards, bottlenecks and practice areas.
// Every read tries the relational store first and falls back to the
// deterministic synthetic dataset when the store is unavailable; the
// returned Source field always tells the caller which one it got.
package lifecycle

import (
	"context"
	"log/slog"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/telemetry"
)

// Store is the slice of the relational store this service reads.
type Store interface {
	KPICounters(ctx context.Context) (datatypes.KPISet, error)
	StageDistribution(ctx context.Context) (datatypes.StageData, error)
	DepartmentMetrics(ctx context.Context) (datatypes.DepartmentMetrics, error)
	StuckMatters(ctx context.Context) (datatypes.BottleneckData, error)
	PracticeAreaCounts(ctx context.Context, topN int) (datatypes.PracticeAreaCounts, error)
}

// Service reads lifecycle datasets with synthetic fallback.
type Service struct {
	store Store
	gen   *synth.Generator
}

// NewService builds the lifecycle service. A nil store pins every read to
// the synthetic dataset.
func NewService(store Store, gen *synth.Generator) *Service {
	return &Service{store: store, gen: gen}
}

func (s *Service) fallback(what string, err error) {
	if err != nil {
		slog.Warn("lifecycle store read failed, serving synthetic data", "dataset", what, "error", err)
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
	}
	telemetry.SyntheticFallbacks.WithLabelValues("lifecycle").Inc()
}

// KPIs returns the overview headline numbers.
func (s *Service) KPIs(ctx context.Context) datatypes.KPISet {
	if s.store != nil {
		k, err := s.store.KPICounters(ctx)
		if err == nil {
			return k
		}
		s.fallback("kpis", err)
	} else {
		s.fallback("kpis", nil)
	}
	return s.gen.KPIs()
}

// Stages returns matter counts and dwell time per lifecycle stage.
func (s *Service) Stages(ctx context.Context) datatypes.StageData {
	if s.store != nil {
		d, err := s.store.StageDistribution(ctx)
		if err == nil {
			return d
		}
		s.fallback("stages", err)
	} else {
		s.fallback("stages", nil)
	}
	return s.gen.Stages()
}

// Departments returns the intake/prelitigation/litigation cards.
func (s *Service) Departments(ctx context.Context) datatypes.DepartmentMetrics {
	if s.store != nil {
		d, err := s.store.DepartmentMetrics(ctx)
		if err == nil && len(d.Departments) > 0 {
			return d
		}
		s.fallback("departments", err)
	} else {
		s.fallback("departments", nil)
	}
	return s.gen.DepartmentMetrics()
}

// Bottlenecks returns the stuck-matter breakdown per stage.
func (s *Service) Bottlenecks(ctx context.Context) datatypes.BottleneckData {
	if s.store != nil {
		b, err := s.store.StuckMatters(ctx)
		if err == nil {
			return b
		}
		s.fallback("bottlenecks", err)
	} else {
		s.fallback("bottlenecks", nil)
	}
	return s.gen.Bottlenecks()
}

// PracticeAreas returns the matter distribution across the top practice
// areas.
func (s *Service) PracticeAreas(ctx context.Context, topN int) datatypes.PracticeAreaCounts {
	if s.store != nil {
		p, err := s.store.PracticeAreaCounts(ctx, topN)
		if err == nil {
			return p
		}
		s.fallback("practice_areas", err)
	} else {
		s.fallback("practice_areas", nil)
	}
	return s.gen.PracticeAreas()
}
