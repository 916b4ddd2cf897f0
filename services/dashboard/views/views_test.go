// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
)

func TestKnown(t *testing.T) {
	for _, name := range []string{
		"overview", "lifecycle", "department", "matter3d",
		"matter-bubble", "matter-timeline", "bottlenecks", "analytics",
	} {
		assert.True(t, Known(name), name)
	}
	assert.False(t, Known("settings"))
	assert.False(t, Known(""))
}

func TestOverviewComposesPayload(t *testing.T) {
	gen := synth.New(42)
	kpis := gen.KPIs()
	urgent := gen.UrgentTasks()

	p := Overview(kpis, gen.PracticeAreas(), gen.Activity(30), urgent, datatypes.SourceSynthetic)

	assert.Equal(t, "overview", p.View)
	require.Len(t, p.KPIs, 5)
	assert.Equal(t, "Active Matters", p.KPIs[0].Label)
	assert.Equal(t, "145", p.KPIs[0].Value)
	assert.Equal(t, "days", p.KPIs[1].Suffix)

	require.Len(t, p.Charts, 2)
	assert.Equal(t, datatypes.ChartBar, p.Charts[0].Kind)
	assert.Equal(t, datatypes.ChartLine, p.Charts[1].Kind)

	require.Len(t, p.Tables, 1)
	assert.Len(t, p.Tables[0].Rows, len(urgent))
	assert.Len(t, p.Tables[0].Rows[0], len(p.Tables[0].Columns))

	assert.Equal(t, datatypes.SourceSynthetic, p.Source)
}

func TestOverviewMixedSourcesReportSynthetic(t *testing.T) {
	gen := synth.New(42)
	kpis := gen.KPIs()
	kpis.Source = datatypes.SourceLive
	areas := gen.PracticeAreas()
	areas.Source = datatypes.SourceLive

	p := Overview(kpis, areas, gen.Activity(7), nil, datatypes.SourceSynthetic)
	assert.Equal(t, datatypes.SourceSynthetic, p.Source, "one synthetic input taints the view")
}

func TestOverviewAllLive(t *testing.T) {
	gen := synth.New(42)
	kpis := gen.KPIs()
	kpis.Source = datatypes.SourceLive
	areas := gen.PracticeAreas()
	areas.Source = datatypes.SourceLive
	activity := gen.Activity(7)
	activity.Source = datatypes.SourceLive

	p := Overview(kpis, areas, activity, nil, datatypes.SourceLive)
	assert.Equal(t, datatypes.SourceLive, p.Source)
}

func TestLifecycleView(t *testing.T) {
	gen := synth.New(42)

	p := Lifecycle(gen.Stages(), gen.Sankey())
	assert.Equal(t, "lifecycle", p.View)
	require.Len(t, p.Charts, 3)
	assert.Equal(t, datatypes.ChartSankey, p.Charts[2].Kind)
}

func TestDepartmentView(t *testing.T) {
	gen := synth.New(42)

	p := Department(gen.DepartmentMetrics(), gen.Workload())
	assert.Equal(t, "department", p.View)
	assert.Len(t, p.KPIs, 9, "three cards per department")
	require.Len(t, p.Tables, 1)
	assert.Len(t, p.Tables[0].Columns, 5)
	for _, row := range p.Tables[0].Rows {
		assert.Len(t, row, 5)
	}
}

func TestDepartmentViewSkipsMissingDepartments(t *testing.T) {
	depts := datatypes.DepartmentMetrics{
		Departments: map[string]datatypes.DepartmentMetric{
			"litigation": {Active: 10, AvgDays: 40, CompletedMTD: 2},
		},
		Source: datatypes.SourceLive,
	}

	p := Department(depts, synth.New(42).Workload())
	assert.Len(t, p.KPIs, 3)
	assert.Equal(t, "litigation active", p.KPIs[0].Label)
}

func TestMatterViews(t *testing.T) {
	gen := synth.New(42)
	data := datatypes.Matter3DData{
		MatterIDs: []string{"M1", "M2"},
		Source:    datatypes.SourceLive,
	}

	p3d := Matter3D(data)
	assert.Equal(t, "matter3d", p3d.View)
	assert.Equal(t, "2", p3d.KPIs[0].Value)
	assert.Equal(t, datatypes.ChartScatter3D, p3d.Charts[0].Kind)
	assert.Equal(t, datatypes.SourceLive, p3d.Source)

	bubble := MatterBubble(data)
	assert.Equal(t, "matter-bubble", bubble.View)

	tl := MatterTimeline(gen.Timeline("", 10))
	assert.Equal(t, "matter-timeline", tl.View)
	assert.Equal(t, datatypes.ChartGantt, tl.Charts[0].Kind)
	assert.Equal(t, datatypes.SourceSynthetic, tl.Source)
}

func TestBottlenecksView(t *testing.T) {
	b := datatypes.BottleneckData{
		Stages:       []string{"Discovery", "Mediation"},
		StuckCounts:  []int{12, 4},
		AvgStuckDays: []int{130, 101},
		Source:       datatypes.SourceLive,
	}

	p := Bottlenecks(b)
	assert.Equal(t, "bottlenecks", p.View)
	require.Len(t, p.KPIs, 3)
	assert.Equal(t, "16", p.KPIs[0].Value)
	assert.Equal(t, "Discovery", p.KPIs[1].Value)
	assert.Equal(t, "130", p.KPIs[2].Value)
}

func TestAnalyticsView(t *testing.T) {
	gen := synth.New(42)

	p := Analytics(gen.Heatmap("practice_area"), gen.Sankey(), gen.ParallelCoords())
	assert.Equal(t, "analytics", p.View)
	require.Len(t, p.Charts, 3)
	assert.Equal(t, datatypes.ChartHeatmap, p.Charts[0].Kind)
	assert.Equal(t, datatypes.ChartParCoords, p.Charts[2].Kind)
	assert.Equal(t, datatypes.SourceSynthetic, p.Source)
}
