// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package views composes datasets into the declarative visual trees the
// frontend renders. Every builder is a pure function: datasets in, payload
// out, no store access and no fallback decisions. The payload's Source is
// derived from the inputs and reports synthetic as soon as any component
// dataset is synthetic.
package views

import (
	"fmt"
	"strconv"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// Names of the dashboard views, in navigation order.
const (
	ViewOverview       = "overview"
	ViewLifecycle      = "lifecycle"
	ViewDepartment     = "department"
	ViewMatter3D       = "matter3d"
	ViewMatterBubble   = "matter-bubble"
	ViewMatterTimeline = "matter-timeline"
	ViewBottlenecks    = "bottlenecks"
	ViewAnalytics      = "analytics"
)

// Known reports whether name is a dashboard view.
func Known(name string) bool {
	switch name {
	case ViewOverview, ViewLifecycle, ViewDepartment, ViewMatter3D,
		ViewMatterBubble, ViewMatterTimeline, ViewBottlenecks, ViewAnalytics:
		return true
	}
	return false
}

// combineSources reports live only when every component dataset is live.
func combineSources(sources ...datatypes.Source) datatypes.Source {
	for _, s := range sources {
		if s == datatypes.SourceSynthetic {
			return datatypes.SourceSynthetic
		}
	}
	return datatypes.SourceLive
}

// Overview builds the landing view: headline KPI cards, practice area
// distribution, the activity trend and the urgent task table.
func Overview(kpis datatypes.KPISet, areas datatypes.PracticeAreaCounts, activity datatypes.ActivitySeries, urgent []datatypes.UrgentTask, urgentSource datatypes.Source) datatypes.ViewPayload {
	taskRows := make([][]string, 0, len(urgent))
	for _, t := range urgent {
		taskRows = append(taskRows, []string{t.Task, t.Matter, t.Assignee, t.DueDate, t.Priority})
	}

	return datatypes.ViewPayload{
		View:  ViewOverview,
		Title: "Overview",
		KPIs: []datatypes.KPICard{
			{Label: "Active Matters", Value: strconv.Itoa(kpis.TotalActiveMatters)},
			{Label: "Avg. Cycle Time", Value: strconv.Itoa(kpis.AvgDaysInStage), Suffix: "days"},
			{Label: "Resolved (MTD)", Value: strconv.Itoa(kpis.MattersSettledMonth)},
			{Label: "Bottleneck Rate", Value: strconv.Itoa(kpis.BottleneckPercentage), Suffix: "%"},
			{Label: "Avg. Caseload", Value: strconv.Itoa(kpis.AvgStaffWorkload), Suffix: "matters"},
		},
		Charts: []datatypes.ChartSpec{
			{ID: "practice-area-distribution", Kind: datatypes.ChartBar, Title: "Practice Area Distribution", Data: areas},
			{ID: "activity-trend", Kind: datatypes.ChartLine, Title: "Matter Activity Trend", Data: activity},
		},
		Tables: []datatypes.TableSpec{{
			ID:      "urgent-tasks",
			Title:   "Priority Actions",
			Columns: []string{"Task", "Matter", "Assignee", "Due Date", "Priority"},
			Rows:    taskRows,
		}},
		Source: combineSources(kpis.Source, areas.Source, activity.Source, urgentSource),
	}
}

// Lifecycle builds the stage funnel view: distribution bars, dwell-time
// bars and the stage flow sankey.
func Lifecycle(stages datatypes.StageData, flow datatypes.SankeyFlow) datatypes.ViewPayload {
	return datatypes.ViewPayload{
		View:  ViewLifecycle,
		Title: "Lifecycle",
		Charts: []datatypes.ChartSpec{
			{ID: "stage-progress", Kind: datatypes.ChartBar, Title: "Matters per Stage", Data: stages},
			{ID: "stage-duration", Kind: datatypes.ChartBar, Title: "Average Days per Stage", Data: stages},
			{ID: "stage-flow", Kind: datatypes.ChartSankey, Title: "Stage Flow", Data: flow},
		},
		Source: stages.Source,
	}
}

// Department builds the department view: one card per department plus the
// team workload table.
func Department(depts datatypes.DepartmentMetrics, workload datatypes.WorkloadData) datatypes.ViewPayload {
	cards := make([]datatypes.KPICard, 0, len(depts.Departments)*3)
	for _, key := range []string{"intake", "prelitigation", "litigation"} {
		m, ok := depts.Departments[key]
		if !ok {
			continue
		}
		cards = append(cards,
			datatypes.KPICard{Label: key + " active", Value: strconv.Itoa(m.Active)},
			datatypes.KPICard{Label: key + " avg days", Value: strconv.Itoa(m.AvgDays), Suffix: "days"},
			datatypes.KPICard{Label: key + " completed (MTD)", Value: strconv.Itoa(m.CompletedMTD)},
		)
	}

	rows := make([][]string, 0, len(workload.Users))
	for i, user := range workload.Users {
		rows = append(rows, []string{
			user,
			strconv.Itoa(workload.ActiveTasks[i]),
			strconv.Itoa(workload.OverdueTasks[i]),
			strconv.Itoa(workload.CompletionRate[i]) + "%",
			strconv.Itoa(workload.TotalCompleted[i]),
		})
	}

	return datatypes.ViewPayload{
		View:  ViewDepartment,
		Title: "Department",
		KPIs:  cards,
		Tables: []datatypes.TableSpec{{
			ID:      "team-workload",
			Title:   "Team Workload",
			Columns: []string{"Team Member", "Active Tasks", "Overdue", "Completion Rate", "Total Completed"},
			Rows:    rows,
		}},
		Source: combineSources(depts.Source, workload.Source),
	}
}

// Matter3D builds the 3D complexity scatter view.
func Matter3D(data datatypes.Matter3DData) datatypes.ViewPayload {
	return datatypes.ViewPayload{
		View:  ViewMatter3D,
		Title: "3D Matter View",
		KPIs: []datatypes.KPICard{
			{Label: "Matters Plotted", Value: strconv.Itoa(data.Len())},
		},
		Charts: []datatypes.ChartSpec{
			{ID: "matter-3d-scatter", Kind: datatypes.ChartScatter3D, Title: "Matter Complexity Space", Data: data},
		},
		Source: data.Source,
	}
}

// MatterBubble builds the bubble variant of the complexity scatter: same
// dataset, bubble sizing on expenses instead of a third axis.
func MatterBubble(data datatypes.Matter3DData) datatypes.ViewPayload {
	return datatypes.ViewPayload{
		View:  ViewMatterBubble,
		Title: "3D Matter Bubble",
		KPIs: []datatypes.KPICard{
			{Label: "Matters Plotted", Value: strconv.Itoa(data.Len())},
		},
		Charts: []datatypes.ChartSpec{
			{ID: "matter-bubble", Kind: datatypes.ChartScatter3D, Title: "Matter Bubble View", Data: data},
		},
		Source: data.Source,
	}
}

// MatterTimeline builds the gantt view of matters moving through stages.
func MatterTimeline(tl datatypes.TimelineData) datatypes.ViewPayload {
	return datatypes.ViewPayload{
		View:  ViewMatterTimeline,
		Title: "Matter Timeline",
		KPIs: []datatypes.KPICard{
			{Label: "Matters Tracked", Value: strconv.Itoa(len(tl.Matters))},
		},
		Charts: []datatypes.ChartSpec{
			{ID: "matter-timeline", Kind: datatypes.ChartGantt, Title: "Stage Progression", Data: tl},
		},
		Source: tl.Source,
	}
}

// Bottlenecks builds the stuck-matter view: alert cards plus the per-stage
// breakdown charts.
func Bottlenecks(b datatypes.BottleneckData) datatypes.ViewPayload {
	totalStuck := 0
	worstStage := ""
	worstCount := -1
	maxDays := 0
	for i, stage := range b.Stages {
		totalStuck += b.StuckCounts[i]
		if b.StuckCounts[i] > worstCount {
			worstCount = b.StuckCounts[i]
			worstStage = stage
		}
		if b.AvgStuckDays[i] > maxDays {
			maxDays = b.AvgStuckDays[i]
		}
	}

	return datatypes.ViewPayload{
		View:  ViewBottlenecks,
		Title: "Bottlenecks",
		KPIs: []datatypes.KPICard{
			{Label: "Matters Stuck >90 Days", Value: strconv.Itoa(totalStuck)},
			{Label: "Worst Stage", Value: worstStage},
			{Label: "Longest Avg. Delay", Value: strconv.Itoa(maxDays), Suffix: "days"},
		},
		Charts: []datatypes.ChartSpec{
			{ID: "stuck-by-stage", Kind: datatypes.ChartBar, Title: "Stuck Matters by Stage", Data: b},
			{ID: "stuck-duration", Kind: datatypes.ChartBar, Title: "Average Days Stuck", Data: b},
		},
		Source: b.Source,
	}
}

// Analytics builds the multi-dimensional analytics view: workload heatmap,
// stage flow sankey and the parallel coordinates chart.
func Analytics(heatmap datatypes.HeatmapData, flow datatypes.SankeyFlow, coords datatypes.ParallelCoords) datatypes.ViewPayload {
	return datatypes.ViewPayload{
		View:  ViewAnalytics,
		Title: "Analytics",
		Charts: []datatypes.ChartSpec{
			{
				ID:    "workload-heatmap",
				Kind:  datatypes.ChartHeatmap,
				Title: fmt.Sprintf("Attorney Workload by %s", heatmap.Dimension),
				Data:  heatmap,
			},
			{ID: "matter-flow", Kind: datatypes.ChartSankey, Title: "Matter Flow", Data: flow},
			{ID: "matter-attributes", Kind: datatypes.ChartParCoords, Title: "Matter Attribute Correlations", Data: coords},
		},
		Source: heatmap.Source,
	}
}
