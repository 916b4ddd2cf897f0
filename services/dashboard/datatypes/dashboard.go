// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// KPISet holds the headline numbers on the overview page.
type KPISet struct {
	TotalActiveMatters   int    `json:"total_active_matters"`
	AvgDaysInStage       int    `json:"avg_days_in_stage"`
	MattersSettledMonth  int    `json:"matters_settled_month"`
	BottleneckPercentage int    `json:"bottleneck_percentage"`
	AvgStaffWorkload     int    `json:"avg_staff_workload"`
	Source               Source `json:"source"`
}

// StageData is the matter count and average dwell time per lifecycle stage.
type StageData struct {
	Stages  []string `json:"stages"`
	Counts  []int    `json:"counts"`
	AvgDays []int    `json:"avg_days"`
	Source  Source   `json:"source"`
}

// BottleneckData reports matters stuck in each stage (more than 90 days)
// and how long they have been stuck on average.
type BottleneckData struct {
	Stages       []string `json:"stages"`
	StuckCounts  []int    `json:"stuck_counts"`
	AvgStuckDays []int    `json:"avg_stuck_days"`
	Source       Source   `json:"source"`
}

// DepartmentMetric is one department card: active matters, average dwell
// time, completions month-to-date.
type DepartmentMetric struct {
	Active       int `json:"active"`
	AvgDays      int `json:"avg_days"`
	CompletedMTD int `json:"completed_mtd"`
}

// DepartmentMetrics maps department key (intake, prelitigation,
// litigation) to its card.
type DepartmentMetrics struct {
	Departments map[string]DepartmentMetric `json:"departments"`
	Source      Source                      `json:"source"`
}

// WorkloadData is the per-user task workload table.
type WorkloadData struct {
	Users          []string `json:"users"`
	ActiveTasks    []int    `json:"active_tasks"`
	OverdueTasks   []int    `json:"overdue_tasks"`
	CompletionRate []int    `json:"completion_rate"`
	TotalCompleted []int    `json:"total_completed"`
	Source         Source   `json:"source"`
}

// PracticeAreaCounts is the matter distribution across practice areas.
type PracticeAreaCounts struct {
	PracticeAreas []string `json:"practice_areas"`
	Counts        []int    `json:"counts"`
	Source        Source   `json:"source"`
}

// ActivityPoint is one day on the activity timeline.
type ActivityPoint struct {
	Date    string `json:"date"`
	Matters int    `json:"matters"`
}

// ActivitySeries is the trailing matters-processed-per-day line.
type ActivitySeries struct {
	Points []ActivityPoint `json:"points"`
	Source Source          `json:"source"`
}

// UrgentTask is one row of the overdue/high-priority task table.
type UrgentTask struct {
	Task     string `json:"task"`
	Matter   string `json:"matter"`
	Assignee string `json:"assignee"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
}

// HeatmapData is the attorney workload matrix along a selectable second
// dimension (practice area, stage or month). Columns holds the labels of
// that second dimension.
type HeatmapData struct {
	Attorneys []string `json:"attorneys"`
	Columns   []string `json:"columns"`
	Matrix    [][]int  `json:"matrix"`
	Dimension string   `json:"dimension"`
	Source    Source   `json:"source"`
}

// SankeyFlow describes matter flow between stages. Source/Target index
// into Labels.
type SankeyFlow struct {
	Labels []string `json:"labels"`
	Source []int    `json:"source"`
	Target []int    `json:"target"`
	Value  []int    `json:"value"`
}

// ParallelCoords holds the correlated matter attributes for the parallel
// coordinates chart.
type ParallelCoords struct {
	MatterIDs      []string  `json:"matter_ids"`
	TasksCompleted []int     `json:"tasks_completed"`
	BudgetSpent    []float64 `json:"budget_spent"`
	CycleTime      []float64 `json:"cycle_time"`
	AttorneyHours  []float64 `json:"attorney_hours"`
	Outcome        []int     `json:"outcome"`
}

// TimelineStage is one lifecycle stage bar on a matter's gantt row.
type TimelineStage struct {
	Stage      string  `json:"stage"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Completion float64 `json:"completion"`
}

// TimelineMatter is one matter row on the timeline view.
type TimelineMatter struct {
	MatterID         string          `json:"matter_id"`
	ClientName       string          `json:"client_name"`
	Department       string          `json:"department"`
	ResponsibleStaff string          `json:"responsible_staff"`
	Stages           []TimelineStage `json:"stages"`
}

// TimelineData is the full matter timeline dataset.
type TimelineData struct {
	Matters []TimelineMatter `json:"matters"`
	Source  Source           `json:"source"`
}
