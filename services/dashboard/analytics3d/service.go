// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analytics3d serves the multi-dimensional matter analytics: the 3D
// complexity scatter, department summaries and per-matter detail. Matter
// rows are read as flat points and pivoted into the columnar layout the
// scatter views consume.
package analytics3d

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/stores"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/telemetry"
)

// ErrMatterNotFound is returned by Detail for an unknown matter id.
var ErrMatterNotFound = errors.New("matter not found")

// Store is the slice of the relational store this service reads.
type Store interface {
	MattersOverview(ctx context.Context, limit int, departmentFilter string, rangeDays int) ([]datatypes.MatterPoint, error)
	DepartmentSummary(ctx context.Context) (datatypes.DepartmentSummary, error)
	MatterDetail(ctx context.Context, matterID string) (datatypes.MatterDetail, error)
}

// Service reads matter analytics with synthetic fallback.
type Service struct {
	store Store
	gen   *synth.Generator
}

// NewService builds the analytics service. A nil store pins every read to
// the synthetic dataset.
func NewService(store Store, gen *synth.Generator) *Service {
	return &Service{store: store, gen: gen}
}

func (s *Service) fallback(what string, err error) {
	if err != nil {
		slog.Warn("analytics store read failed, serving synthetic data", "dataset", what, "error", err)
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
	}
	telemetry.SyntheticFallbacks.WithLabelValues("analytics3d").Inc()
}

// Matters3D returns the columnar 3D scatter dataset. The department filter
// and day range apply to the live query and to the synthetic generator
// alike, so toggling a degraded store never changes the filter semantics.
func (s *Service) Matters3D(ctx context.Context, limit int, departmentFilter string, rangeDays int) datatypes.Matter3DData {
	if s.store != nil {
		points, err := s.store.MattersOverview(ctx, limit, departmentFilter, rangeDays)
		if err == nil && len(points) > 0 {
			return pivot(points, datatypes.SourceLive)
		}
		if err != nil {
			s.fallback("matters_3d", err)
		} else {
			// An empty window usually means the analytics tables were
			// never populated; serve the synthetic set instead of a
			// blank chart.
			s.fallback("matters_3d", nil)
		}
	} else {
		s.fallback("matters_3d", nil)
	}
	return pivot(s.gen.Matters(limit, departmentFilter), datatypes.SourceSynthetic)
}

// Departments returns the per-department aggregates.
func (s *Service) Departments(ctx context.Context) datatypes.DepartmentSummary {
	if s.store != nil {
		d, err := s.store.DepartmentSummary(ctx)
		if err == nil && len(d.Departments) > 0 {
			return d
		}
		s.fallback("department_summary", err)
	} else {
		s.fallback("department_summary", nil)
	}
	return s.gen.DepartmentSummary()
}

// Detail returns the full record for one matter. Unknown ids return
// ErrMatterNotFound; there is no synthetic stand-in for a specific matter.
func (s *Service) Detail(ctx context.Context, matterID string) (datatypes.MatterDetail, error) {
	if s.store == nil {
		return datatypes.MatterDetail{}, ErrMatterNotFound
	}
	d, err := s.store.MatterDetail(ctx, matterID)
	if errors.Is(err, stores.ErrNotFound) {
		return datatypes.MatterDetail{}, ErrMatterNotFound
	}
	if err != nil {
		telemetry.StoreErrors.WithLabelValues("relational").Inc()
		return datatypes.MatterDetail{}, fmt.Errorf("reading matter detail: %w", err)
	}
	return d, nil
}

// Timeline returns the gantt dataset of matters progressing through
// lifecycle stages. The analytics tables carry no per-stage history, so the
// dataset is always generated.
func (s *Service) Timeline(departmentFilter string, limit int) datatypes.TimelineData {
	return s.gen.Timeline(departmentFilter, limit)
}

// Heatmap returns the attorney workload matrix along the requested
// dimension (practice_area, stage or month).
func (s *Service) Heatmap(dimension string) datatypes.HeatmapData {
	return s.gen.Heatmap(dimension)
}

// Sankey returns the matter flow between lifecycle stages.
func (s *Service) Sankey() datatypes.SankeyFlow {
	return s.gen.Sankey()
}

// ParallelCoords returns the correlated matter attribute set.
func (s *Service) ParallelCoords() datatypes.ParallelCoords {
	return s.gen.ParallelCoords()
}

// pivot turns flat matter points into the columnar dataset, building the
// hover text for each point.
func pivot(points []datatypes.MatterPoint, source datatypes.Source) datatypes.Matter3DData {
	n := len(points)
	out := datatypes.Matter3DData{
		Departments:      make([]string, 0, n),
		DaysInStage:      make([]int, 0, n),
		TotalExpenses:    make([]float64, 0, n),
		ActiveTasks:      make([]int, 0, n),
		PercentComplete:  make([]float64, 0, n),
		HoverText:        make([]string, 0, n),
		MatterIDs:        make([]string, 0, n),
		ClientNames:      make([]string, 0, n),
		ResponsibleStaff: make([]string, 0, n),
		Source:           source,
	}
	for _, p := range points {
		out.Departments = append(out.Departments, p.Department)
		out.DaysInStage = append(out.DaysInStage, p.DaysInStage)
		out.TotalExpenses = append(out.TotalExpenses, p.TotalExpenses)
		out.ActiveTasks = append(out.ActiveTasks, p.ActiveTasks)
		out.PercentComplete = append(out.PercentComplete, p.PercentComplete)
		out.HoverText = append(out.HoverText, hoverText(p))
		out.MatterIDs = append(out.MatterIDs, p.MatterID)
		out.ClientNames = append(out.ClientNames, p.ClientName)
		out.ResponsibleStaff = append(out.ResponsibleStaff, p.ResponsibleStaff)
	}
	return out
}

func hoverText(p datatypes.MatterPoint) string {
	return fmt.Sprintf(
		"Matter: %s<br>Client: %s<br>Staff: %s<br>Stage: %s<br>Priority: %s<br>Settlement Prob: %.0f%%",
		p.MatterID, p.ClientName, p.ResponsibleStaff, p.StageName, p.PriorityLevel,
		math.Round(p.SettlementProbability*100))
}
