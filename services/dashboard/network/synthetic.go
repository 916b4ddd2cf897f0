// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package network

import (
	"fmt"
	"math/rand"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/stores"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
)

// The synthetic networks go through the same Aggregator as live results so
// the fallback payloads obey the same dedupe and endpoint rules.

var familySurnames = []string{
	"Hendricks", "Calloway", "Okafor", "Delgado", "Petrov",
	"Lindqvist", "Whitfield", "Marsh", "Suarez", "Abrams",
}

var vendorCatalog = []struct {
	id        string
	name      string
	specialty string
}{
	{"V001", "Apex Expert Witnesses", "expert_witness"},
	{"V002", "Veritas Court Reporting", "court_reporting"},
	{"V003", "Sterling Investigations", "investigation"},
	{"V004", "MedRecord Review Group", "medical_records"},
	{"V005", "Langford Forensic Accounting", "forensic_accounting"},
}

var staffRoster = []struct {
	id   string
	name string
	role string
}{
	{"S001", "Sarah Chen", "Attorney"},
	{"S002", "Michael Rodriguez", "Attorney"},
	{"S003", "Emily Johnson", "Paralegal"},
	{"S004", "David Kim", "Attorney"},
	{"S005", "Jennifer Lee", "Paralegal"},
	{"S006", "Robert Thompson", "Case Manager"},
}

func (s *Service) syntheticFamilyNetwork(limit int) datatypes.NetworkGraph {
	rng := rand.New(rand.NewSource(s.seed))
	agg := s.newAggregator()

	families := len(familySurnames)
	if limit > 0 && limit < families {
		families = limit
	}

	matterSeq := 0
	for i := 0; i < families; i++ {
		surname := familySurnames[i]
		ids := [2]string{fmt.Sprintf("C%03d", 2*i+1), fmt.Sprintf("C%03d", 2*i+2)}
		labels := [2]string{surname + " Family Trust", surname + " Holdings"}

		for j := 0; j < 2; j++ {
			matterCount := 1 + rng.Intn(3)
			totalValue := 0.0
			matterIDs := make([]string, 0, matterCount)
			for k := 0; k < matterCount; k++ {
				matterSeq++
				matterIDs = append(matterIDs, fmt.Sprintf("M%04d", matterSeq))
				totalValue += float64(25000 + rng.Intn(225000))
			}
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeClient, ids[j]),
				Label: labels[j],
				Type:  datatypes.NodeClient,
				Props: map[string]any{
					"value":        totalValue,
					"matter_count": matterCount,
				},
			})
			for _, matterID := range matterIDs {
				agg.AddNode(datatypes.Node{
					ID:    datatypes.NodeID(datatypes.NodeMatter, matterID),
					Label: fmt.Sprintf("%s v. %s", surname, practicePool[rng.Intn(len(practicePool))]),
					Type:  datatypes.NodeMatter,
					Props: map[string]any{
						"value":  float64(25000 + rng.Intn(225000)),
						"status": "Active",
					},
				})
				agg.AddEdge(datatypes.Edge{
					Source:       datatypes.NodeID(datatypes.NodeClient, ids[j]),
					Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
					Relationship: "owns",
					Label:        "Owns",
				})
			}
		}

		agg.AddEdge(datatypes.Edge{
			Source:       datatypes.NodeID(datatypes.NodeClient, ids[0]),
			Target:       datatypes.NodeID(datatypes.NodeClient, ids[1]),
			Relationship: "family",
			Label:        "Family",
		})
	}

	stats := datatypes.NetworkStats{
		ClusterCount: agg.SeenCount(datatypes.NodeClient) / 2,
	}
	return agg.Graph("cose", "Client Family Networks", datatypes.SourceSynthetic, stats)
}

func (s *Service) syntheticVendorNetwork(practiceArea string, minValue int) datatypes.NetworkGraph {
	rng := rand.New(rand.NewSource(s.seed + 1))
	agg := s.newAggregator()

	for i, vendor := range vendorCatalog {
		agg.AddNode(datatypes.Node{
			ID:    datatypes.NodeID(datatypes.NodeVendor, vendor.id),
			Label: vendor.name,
			Type:  datatypes.NodeVendor,
			Props: map[string]any{
				"specialty":     vendor.specialty,
				"total_revenue": float64(40000 + rng.Intn(160000)),
				"matter_count":  2 + rng.Intn(6),
			},
		})

		engagements := 2 + rng.Intn(3)
		for k := 0; k < engagements; k++ {
			area := practicePool[rng.Intn(len(practicePool))]
			if practiceArea != "" {
				area = practiceArea
			}
			value := float64(minValue + rng.Intn(200000))
			matterID := fmt.Sprintf("M%d%02d", i+1, k+1)
			clientID := fmt.Sprintf("C%d%02d", i+1, k+1)

			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeMatter, matterID),
				Label: truncateLabel(fmt.Sprintf("%s engagement %s", area, matterID), 30),
				Type:  datatypes.NodeMatter,
				Props: map[string]any{"value": value},
			})
			if agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeClient, clientID),
				Label: fmt.Sprintf("Client %s", clientID),
				Type:  datatypes.NodeClient,
				Props: map[string]any{"value": 0},
			}) {
				agg.AddEdge(datatypes.Edge{
					Source:       datatypes.NodeID(datatypes.NodeClient, clientID),
					Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
					Relationship: "owns",
					Label:        "Owns",
				})
			}

			cost := float64(2500 + rng.Intn(27500))
			agg.AddEdge(datatypes.Edge{
				Source:       datatypes.NodeID(datatypes.NodeVendor, vendor.id),
				Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
				Relationship: "used_in",
				Label:        formatDollars(cost),
				Cost:         cost,
				Props:        map[string]any{"service_type": vendor.specialty},
			})
		}
	}

	stats := datatypes.NetworkStats{VendorCount: agg.SeenCount(datatypes.NodeVendor)}
	return agg.Graph("concentric", vendorNetworkTitle(practiceArea), datatypes.SourceSynthetic, stats)
}

func (s *Service) syntheticStaffNetwork(department string) datatypes.NetworkGraph {
	rng := rand.New(rand.NewSource(s.seed + 2))
	agg := s.newAggregator()

	departments := synth.Departments[:3]
	if department != "" {
		departments = []string{department}
	}

	totalAssignments := 0
	staffCount := 0
	for di, deptName := range departments {
		deptID := fmt.Sprintf("D%02d", di+1)

		for si, member := range staffRoster {
			if si%len(departments) != di {
				continue
			}
			staffCount++
			workload := 4 + rng.Intn(10)
			agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeStaff, member.id),
				Label: member.name,
				Type:  datatypes.NodeStaff,
				Props: map[string]any{
					"role":         member.role,
					"workload":     workload,
					"capacity_pct": stores.CapacityPct(workload),
				},
			})
			if agg.AddNode(datatypes.Node{
				ID:    datatypes.NodeID(datatypes.NodeDepartment, deptID),
				Label: deptName,
				Type:  datatypes.NodeDepartment,
			}) {
				agg.AddEdge(datatypes.Edge{
					Source:       datatypes.NodeID(datatypes.NodeStaff, member.id),
					Target:       datatypes.NodeID(datatypes.NodeDepartment, deptID),
					Relationship: "works_in",
					Label:        "Works in",
				})
			}

			assignments := 1 + rng.Intn(3)
			totalAssignments += assignments
			for k := 0; k < assignments; k++ {
				matterID := fmt.Sprintf("M%s%02d", member.id[1:], k+1)
				agg.AddNode(datatypes.Node{
					ID:    datatypes.NodeID(datatypes.NodeMatter, matterID),
					Label: truncateLabel(fmt.Sprintf("%s matter %s", deptName, matterID), 25),
					Type:  datatypes.NodeMatter,
					Props: map[string]any{"status": "Active"},
				})
				agg.AddEdge(datatypes.Edge{
					Source:       datatypes.NodeID(datatypes.NodeStaff, member.id),
					Target:       datatypes.NodeID(datatypes.NodeMatter, matterID),
					Relationship: "assigned_to",
					Label:        "Assigned",
				})
			}
		}
	}

	var avg float64
	if staffCount > 0 {
		avg = float64(totalAssignments) / float64(staffCount)
	}
	stats := datatypes.NetworkStats{
		StaffCount:  agg.SeenCount(datatypes.NodeStaff),
		AvgWorkload: avg,
	}
	return agg.Graph("breadthfirst", staffNetworkTitle(department), datatypes.SourceSynthetic, stats)
}

var practicePool = []string{
	"Auto Accident", "Medical Malpractice", "Workers Comp",
	"Premises Liability", "Product Liability", "Wrongful Death",
}
