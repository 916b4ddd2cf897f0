// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

func TestMatters_Deterministic(t *testing.T) {
	a := New(42).Matters(200, "")
	b := New(42).Matters(200, "")
	assert.Equal(t, a, b)
}

func TestMatters_DifferentSeedsDiffer(t *testing.T) {
	a := New(42).Matters(50, "")
	b := New(7).Matters(50, "")
	assert.NotEqual(t, a, b)
}

func TestMatters_DepartmentFilter(t *testing.T) {
	points := New(42).Matters(100, "Litigation")
	require.Len(t, points, 100)
	for _, p := range points {
		assert.Equal(t, "Litigation", p.Department)
	}
}

func TestMatters_ValueBounds(t *testing.T) {
	points := New(42).Matters(500, "")
	for _, p := range points {
		assert.GreaterOrEqual(t, p.SettlementProbability, 0.05)
		assert.LessOrEqual(t, p.SettlementProbability, 0.95)
		assert.LessOrEqual(t, p.ActiveTasks, 30)
		assert.Greater(t, p.TotalExpenses, 0.0)
		assert.Contains(t, []string{"High", "Medium", "Low", "Critical"}, p.PriorityLevel)
	}
}

func TestTimeline_StagesAreOrdered(t *testing.T) {
	data := New(42).Timeline("", 25)
	require.Len(t, data.Matters, 25)
	assert.Equal(t, datatypes.SourceSynthetic, data.Source)

	for _, m := range data.Matters {
		require.GreaterOrEqual(t, len(m.Stages), 3)
		require.LessOrEqual(t, len(m.Stages), 7)
		for i := 1; i < len(m.Stages); i++ {
			// Stage windows must not overlap; a small gap separates them.
			assert.Less(t, m.Stages[i-1].End, m.Stages[i].Start,
				"matter %s stage %d starts before previous ends", m.MatterID, i)
		}
	}
}

func TestParallelCoords_Correlations(t *testing.T) {
	pc := New(42).ParallelCoords()
	require.Len(t, pc.MatterIDs, 100)

	for i := range pc.MatterIDs {
		assert.GreaterOrEqual(t, pc.BudgetSpent[i], 1000.0)
		assert.LessOrEqual(t, pc.BudgetSpent[i], 50000.0)
		assert.GreaterOrEqual(t, pc.CycleTime[i], 10.0)
		assert.LessOrEqual(t, pc.CycleTime[i], 180.0)
		if pc.Outcome[i] == 1 {
			assert.Greater(t, pc.TasksCompleted[i], 70)
			assert.Less(t, pc.CycleTime[i], 100.0)
		}
	}
}

func TestHeatmap_Dimensions(t *testing.T) {
	g := New(42)
	for _, dim := range []string{"practice_area", "stage", "month"} {
		h := g.Heatmap(dim)
		require.Len(t, h.Matrix, len(h.Attorneys), "dimension %s", dim)
		for _, row := range h.Matrix {
			assert.Len(t, row, len(h.Columns))
		}
	}
}

func TestActivity_Length(t *testing.T) {
	series := New(42).Activity(30)
	require.Len(t, series.Points, 30)
	// Dates ascend and the last one is today.
	for i := 1; i < len(series.Points); i++ {
		assert.Less(t, series.Points[i-1].Date, series.Points[i].Date)
	}
}

func TestStaticDatasets_Shape(t *testing.T) {
	g := New(42)

	stages := g.Stages()
	assert.Len(t, stages.Counts, len(stages.Stages))
	assert.Len(t, stages.AvgDays, len(stages.Stages))

	bn := g.Bottlenecks()
	assert.Len(t, bn.StuckCounts, len(bn.Stages))

	sankey := g.Sankey()
	assert.Len(t, sankey.Target, len(sankey.Source))
	assert.Len(t, sankey.Value, len(sankey.Source))
	for i := range sankey.Source {
		assert.Less(t, sankey.Source[i], len(sankey.Labels))
		assert.Less(t, sankey.Target[i], len(sankey.Labels))
	}

	dm := g.DepartmentMetrics()
	assert.Contains(t, dm.Departments, "intake")
	assert.Equal(t, datatypes.SourceSynthetic, dm.Source)
}
