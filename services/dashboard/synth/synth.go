// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package synth generates deterministic placeholder datasets with the same
// shape as the live store queries. Every result it produces is tagged
// datatypes.SourceSynthetic so degraded mode is never mistaken for real
// data. Given the same seed the output is identical across calls and
// restarts.
package synth

import (
	"math/rand"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// Departments are the lifecycle departments used across generated datasets.
var Departments = []string{
	"Prelitigation", "Litigation", "Appeals", "Settlement",
	"Discovery", "Trial Prep", "Post-Settlement", "Compliance",
}

// StageNames are the matter lifecycle stages.
var StageNames = []string{
	"Initial Review", "Investigation", "Filing", "Discovery",
	"Mediation", "Trial Prep", "Trial", "Settlement", "Appeal", "Closed",
}

var clientNames = []string{
	"Acme Corporation", "Global Industries Inc", "Tech Solutions LLC",
	"Regional Healthcare", "Metro Construction", "Coastal Insurance",
	"Summit Financial", "Valley Manufacturing", "Urban Development",
	"Pacific Logistics", "Eastern Energy", "Central Banking",
}

var staffNames = []string{
	"Sarah Chen", "Michael Rodriguez", "Emily Johnson", "David Kim",
	"Jennifer Lee", "Robert Thompson", "Lisa Martinez", "James Wilson",
	"Maria Garcia", "Thomas Anderson", "Ashley Davis", "Christopher Brown",
}

var attorneys = []string{
	"Travis Crawford", "Lisa Litigator", "Amy Assistant",
	"Paul Prelit", "Nina Assistant", "Omar Ops", "Ivy Intake",
}

var practiceAreas = []string{
	"Auto Accident", "Medical Malpractice", "Workers Comp",
	"Premises Liability", "Product Liability", "Wrongful Death",
}

// Generator produces the synthetic datasets. Each method draws from a
// fresh rand source so individual datasets stay deterministic no matter
// the call order.
type Generator struct {
	seed int64
}

// New returns a generator for the given seed.
func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

func (g *Generator) rng() *rand.Rand {
	return rand.New(rand.NewSource(g.seed))
}

// KPIs returns the overview headline figures.
func (g *Generator) KPIs() datatypes.KPISet {
	return datatypes.KPISet{
		TotalActiveMatters:   145,
		AvgDaysInStage:       42,
		MattersSettledMonth:  12,
		BottleneckPercentage: 18,
		AvgStaffWorkload:     23,
		Source:               datatypes.SourceSynthetic,
	}
}

// Stages returns the lifecycle stage distribution.
func (g *Generator) Stages() datatypes.StageData {
	return datatypes.StageData{
		Stages:  []string{"Client Onboarding", "Investigation", "Negotiation", "Litigation", "Settlement", "Closed"},
		Counts:  []int{15, 32, 28, 18, 12, 5},
		AvgDays: []int{7, 45, 62, 120, 30, 0},
		Source:  datatypes.SourceSynthetic,
	}
}

// Bottlenecks returns matters stuck per stage.
func (g *Generator) Bottlenecks() datatypes.BottleneckData {
	return datatypes.BottleneckData{
		Stages:       []string{"Investigation", "Negotiation", "Litigation", "Settlement", "Documentation", "Closing"},
		StuckCounts:  []int{8, 15, 12, 5, 3, 2},
		AvgStuckDays: []int{95, 120, 150, 85, 60, 45},
		Source:       datatypes.SourceSynthetic,
	}
}

// DepartmentMetrics returns the three department cards.
func (g *Generator) DepartmentMetrics() datatypes.DepartmentMetrics {
	return datatypes.DepartmentMetrics{
		Departments: map[string]datatypes.DepartmentMetric{
			"intake":        {Active: 42, AvgDays: 8, CompletedMTD: 15},
			"prelitigation": {Active: 67, AvgDays: 35, CompletedMTD: 12},
			"litigation":    {Active: 36, AvgDays: 120, CompletedMTD: 5},
		},
		Source: datatypes.SourceSynthetic,
	}
}

// Workload returns the team workload table.
func (g *Generator) Workload() datatypes.WorkloadData {
	return datatypes.WorkloadData{
		Users:          []string{"Travis Crawford", "Lisa Litigator", "Amy Assistant", "Paul Prelit", "Nina Assistant"},
		ActiveTasks:    []int{18, 23, 15, 20, 12},
		OverdueTasks:   []int{2, 5, 1, 3, 0},
		CompletionRate: []int{95, 82, 98, 88, 100},
		TotalCompleted: []int{145, 198, 132, 167, 89},
		Source:         datatypes.SourceSynthetic,
	}
}

// PracticeAreas returns the practice-area matter distribution.
func (g *Generator) PracticeAreas() datatypes.PracticeAreaCounts {
	return datatypes.PracticeAreaCounts{
		PracticeAreas: []string{"Auto Accident", "Medical Malpractice", "Workers Comp", "Premises Liability"},
		Counts:        []int{45, 32, 28, 40},
		Source:        datatypes.SourceSynthetic,
	}
}

// UrgentTasks returns a small overdue-task table.
func (g *Generator) UrgentTasks() []datatypes.UrgentTask {
	return []datatypes.UrgentTask{
		{Task: "File discovery responses", Matter: "MTR-2024-1042", Assignee: "Lisa Litigator", DueDate: "2025-09-12", Priority: "Critical"},
		{Task: "Depose treating physician", Matter: "MTR-2024-1087", Assignee: "Travis Crawford", DueDate: "2025-09-15", Priority: "High"},
		{Task: "Draft settlement demand", Matter: "MTR-2024-1105", Assignee: "Paul Prelit", DueDate: "2025-09-18", Priority: "High"},
		{Task: "Serve subpoena on employer", Matter: "MTR-2024-1121", Assignee: "Amy Assistant", DueDate: "2025-09-19", Priority: "High"},
		{Task: "Schedule mediation", Matter: "MTR-2024-1136", Assignee: "Nina Assistant", DueDate: "2025-09-22", Priority: "High"},
	}
}

// DepartmentSummary returns per-department aggregates.
func (g *Generator) DepartmentSummary() datatypes.DepartmentSummary {
	return datatypes.DepartmentSummary{
		Departments:   append([]string(nil), Departments...),
		MatterCounts:  []int{45, 38, 12, 23, 67, 34, 19, 8},
		AvgDays:       []float64{85, 156, 298, 189, 123, 267, 78, 445},
		AvgCompletion: []float64{65, 78, 45, 89, 72, 56, 92, 34},
		TotalExpenses: []float64{234567, 456789, 123456, 789012, 345678, 567890, 123890, 456123},
		Source:        datatypes.SourceSynthetic,
	}
}
