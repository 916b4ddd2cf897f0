// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// MatterPoint is a single matter positioned in the 3D complexity space:
// days in stage (x), total expenses (y), active tasks (z), completion as
// the color axis.
type MatterPoint struct {
	MatterID              string  `json:"matter_id"`
	ClientName            string  `json:"client_name"`
	Department            string  `json:"department"`
	StageName             string  `json:"stage_name"`
	DaysInStage           int     `json:"days_in_stage"`
	TotalExpenses         float64 `json:"total_expenses"`
	ActiveTasks           int     `json:"active_tasks"`
	PercentComplete       float64 `json:"percent_complete"`
	ResponsibleStaff      string  `json:"responsible_staff"`
	PriorityLevel         string  `json:"priority_level"`
	SettlementProbability float64 `json:"settlement_probability"`
}

// Matter3DData is the columnar dataset consumed by the 3D scatter views.
// All slices share the same length and index.
type Matter3DData struct {
	Departments      []string  `json:"departments"`
	DaysInStage      []int     `json:"days_in_stage"`
	TotalExpenses    []float64 `json:"total_expenses"`
	ActiveTasks      []int     `json:"active_tasks"`
	PercentComplete  []float64 `json:"percent_complete"`
	HoverText        []string  `json:"hover_text"`
	MatterIDs        []string  `json:"matter_ids"`
	ClientNames      []string  `json:"client_names"`
	ResponsibleStaff []string  `json:"responsible_staff"`
	Source           Source    `json:"source"`
}

// Len returns the number of matters in the dataset.
func (d Matter3DData) Len() int { return len(d.MatterIDs) }

// DepartmentSummary aggregates matter statistics per department.
type DepartmentSummary struct {
	Departments   []string  `json:"departments"`
	MatterCounts  []int     `json:"matter_counts"`
	AvgDays       []float64 `json:"avg_days"`
	AvgCompletion []float64 `json:"avg_completion"`
	TotalExpenses []float64 `json:"total_expenses"`
	Source        Source    `json:"source"`
}

// MatterDetail is the full record for a single matter, joined with expense
// and task rollups.
type MatterDetail struct {
	MatterID              string  `json:"matter_id"`
	ClientName            string  `json:"client_name"`
	Department            string  `json:"department"`
	StageName             string  `json:"stage_name"`
	DaysInStage           int     `json:"days_in_stage"`
	PercentComplete       float64 `json:"percent_complete"`
	ResponsibleStaff      string  `json:"responsible_staff"`
	PriorityLevel         string  `json:"priority_level"`
	SettlementProbability float64 `json:"settlement_probability"`
	TotalExpenses         float64 `json:"total_expenses"`
	ActiveTasks           int     `json:"active_tasks"`
	CompletedTasks        int     `json:"completed_tasks"`
}

// ClientMetrics is the auxiliary relational lookup for a client node.
type ClientMetrics struct {
	MatterCount      int     `json:"matter_count"`
	TotalMatterValue float64 `json:"total_matter_value"`
	AvgMatterValue   float64 `json:"avg_matter_value"`
}

// MatterRecord is the auxiliary relational lookup for a matter node.
type MatterRecord struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Value        float64 `json:"value"`
	Status       string  `json:"status"`
	PracticeArea string  `json:"practice_area"`
	CreatedDate  string  `json:"created_date"`
}

// VendorMetrics is the auxiliary relational lookup for a vendor node.
type VendorMetrics struct {
	MatterCount      int     `json:"matter_count"`
	TotalRevenue     float64 `json:"total_revenue"`
	AvgCostPerMatter float64 `json:"avg_cost_per_matter"`
}

// StaffMetrics is the auxiliary relational lookup for a staff node.
// CapacityPct assumes 15 active matters is full capacity.
type StaffMetrics struct {
	ActiveMatters  int     `json:"active_matters"`
	TotalMatters   int     `json:"total_matters"`
	AvgMatterValue float64 `json:"avg_matter_value"`
	CapacityPct    float64 `json:"capacity_percentage"`
}
