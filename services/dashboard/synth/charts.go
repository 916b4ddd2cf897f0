// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package synth

import (
	"time"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// Heatmap returns the attorney workload matrix for the requested second
// dimension: "practice_area", "stage" or "month".
func (g *Generator) Heatmap(dimension string) datatypes.HeatmapData {
	switch dimension {
	case "stage":
		return datatypes.HeatmapData{
			Attorneys: append([]string(nil), attorneys...),
			Columns:   []string{"Intake", "Investigation", "Prelitigation", "Litigation", "Settlement", "Closed"},
			Matrix: [][]int{
				{5, 12, 14, 10, 5, 2},
				{2, 8, 12, 22, 9, 4},
				{10, 16, 18, 8, 6, 2},
				{8, 14, 20, 9, 4, 2},
				{9, 12, 14, 8, 7, 3},
				{6, 15, 16, 14, 8, 3},
				{14, 18, 12, 8, 5, 3},
			},
			Dimension: "Attorney × Stage",
			Source:    datatypes.SourceSynthetic,
		}
	case "month":
		return datatypes.HeatmapData{
			Attorneys: append([]string(nil), attorneys...),
			Columns:   []string{"Sep 2025", "Aug 2025", "Jul 2025", "Jun 2025", "May 2025", "Apr 2025"},
			Matrix: [][]int{
				{48, 50, 52, 48, 45, 42},
				{57, 55, 58, 60, 62, 55},
				{60, 62, 58, 55, 53, 50},
				{57, 55, 57, 59, 57, 55},
				{53, 55, 52, 50, 48, 45},
				{62, 60, 62, 65, 63, 60},
				{60, 58, 60, 62, 60, 58},
			},
			Dimension: "Attorney × Month",
			Source:    datatypes.SourceSynthetic,
		}
	default: // practice_area
		return datatypes.HeatmapData{
			Attorneys: append([]string(nil), attorneys...),
			Columns:   append([]string(nil), practiceAreas...),
			Matrix: [][]int{
				{18, 12, 5, 8, 3, 2},
				{23, 8, 15, 6, 4, 1},
				{15, 20, 3, 12, 6, 4},
				{20, 5, 18, 9, 2, 3},
				{12, 15, 8, 5, 8, 5},
				{8, 18, 12, 15, 3, 6},
				{16, 10, 6, 8, 12, 8},
			},
			Dimension: "Attorney × Practice Area",
			Source:    datatypes.SourceSynthetic,
		}
	}
}

// Sankey returns the matter flow between departments.
func (g *Generator) Sankey() datatypes.SankeyFlow {
	return datatypes.SankeyFlow{
		Labels: []string{"Intake", "Investigation", "Prelitigation", "Litigation", "Settlement", "Trial", "Resolved", "Dismissed"},
		Source: []int{0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5},
		Target: []int{1, 2, 2, 3, 3, 4, 4, 5, 6, 7, 6},
		Value:  []int{120, 25, 95, 30, 80, 45, 35, 10, 55, 20, 8},
	}
}

// activityBaseline is the trailing 30-day matters-processed shape.
var activityBaseline = []int{
	20, 25, 22, 28, 30, 27, 25, 23, 26, 29, 31, 28, 27, 30, 32,
	29, 27, 26, 28, 30, 31, 29, 27, 28, 30, 32, 31, 29, 28, 30,
}

// Activity returns a matters-processed-per-day series ending today. Days
// beyond the baseline length repeat the baseline pattern.
func (g *Generator) Activity(days int) datatypes.ActivitySeries {
	now := time.Now().UTC()
	out := datatypes.ActivitySeries{
		Points: make([]datatypes.ActivityPoint, 0, days),
		Source: datatypes.SourceSynthetic,
	}
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -(days - 1 - i))
		out.Points = append(out.Points, datatypes.ActivityPoint{
			Date:    day.Format("2006-01-02"),
			Matters: activityBaseline[i%len(activityBaseline)],
		})
	}
	return out
}
