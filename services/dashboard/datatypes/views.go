// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// KPICard is a single headline figure on a view.
type KPICard struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Suffix string `json:"suffix,omitempty"`
	Trend  string `json:"trend,omitempty"`
}

// ChartKind enumerates the chart descriptions the rendering layer knows
// how to draw.
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartScatter3D ChartKind = "scatter3d"
	ChartHeatmap   ChartKind = "heatmap"
	ChartSankey    ChartKind = "sankey"
	ChartGantt     ChartKind = "gantt"
	ChartParCoords ChartKind = "parcoords"
	ChartNetwork   ChartKind = "network"
)

// ChartSpec is a declarative chart description: the kind selects the
// renderer, Data carries the dataset verbatim. No business logic lives on
// this side of the boundary.
type ChartSpec struct {
	ID    string    `json:"id"`
	Kind  ChartKind `json:"kind"`
	Title string    `json:"title"`
	Data  any       `json:"data"`
}

// TableSpec is a declarative table: ordered column headers plus rows of
// cell strings.
type TableSpec struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ViewPayload is the composed visual tree for one dashboard view.
type ViewPayload struct {
	View    string        `json:"view"`
	Title   string        `json:"title"`
	KPIs    []KPICard     `json:"kpis,omitempty"`
	Charts  []ChartSpec   `json:"charts,omitempty"`
	Tables  []TableSpec   `json:"tables,omitempty"`
	Network *NetworkGraph `json:"network,omitempty"`
	Source  Source        `json:"source"`
}
