// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// matterRanges drives the correlated value ranges for a department.
type matterRanges struct {
	daysMin, daysMax       int
	expenseMin, expenseMax float64
	tasksMin, tasksMax     int
	pctMin, pctMax         float64
}

func rangesFor(department string) matterRanges {
	switch department {
	case "Prelitigation", "Initial Review":
		return matterRanges{1, 120, 1000, 50000, 1, 8, 10, 60}
	case "Discovery", "Investigation":
		return matterRanges{30, 300, 25000, 200000, 5, 15, 40, 80}
	case "Trial Prep", "Litigation":
		return matterRanges{180, 600, 100000, 500000, 10, 25, 60, 90}
	case "Settlement", "Mediation":
		return matterRanges{90, 400, 50000, 300000, 3, 12, 70, 95}
	default: // Appeals, Post-Settlement, Compliance
		return matterRanges{60, 800, 20000, 400000, 2, 10, 80, 100}
	}
}

func settlementBase(department string) float64 {
	switch department {
	case "Settlement", "Mediation":
		return 0.8
	case "Trial Prep", "Trial":
		return 0.6
	case "Discovery":
		return 0.4
	default:
		return 0.3
	}
}

// Matters generates correlated matter points: department drives the day,
// expense, task and completion ranges; long-running matters accumulate
// more tasks and higher completion.
func (g *Generator) Matters(limit int, departmentFilter string) []datatypes.MatterPoint {
	rng := g.rng()

	depts := Departments
	if departmentFilter != "" {
		depts = []string{departmentFilter}
	}

	points := make([]datatypes.MatterPoint, 0, limit)
	for i := 0; i < limit; i++ {
		dept := depts[rng.Intn(len(depts))]
		r := rangesFor(dept)

		days := r.daysMin + rng.Intn(r.daysMax-r.daysMin)

		// Time increases cost.
		baseExpense := r.expenseMin + rng.Float64()*(r.expenseMax-r.expenseMin)
		expenses := baseExpense * (1 + float64(days)/365*0.5)

		tasks := r.tasksMin + rng.Intn(r.tasksMax-r.tasksMin)
		if days > 200 {
			tasks = min(tasks+2+rng.Intn(6), 30)
		}

		completion := r.pctMin + rng.Float64()*(r.pctMax-r.pctMin)
		if days > 300 {
			completion = math.Min(completion+15, 95)
		}

		prob := settlementBase(dept) + (rng.Float64()*0.4 - 0.2)
		prob = math.Max(0.05, math.Min(0.95, prob))

		priority := pickWeighted(rng.Float64())

		points = append(points, datatypes.MatterPoint{
			MatterID:              fmt.Sprintf("MTR-2024-%04d", i+1001),
			ClientName:            clientNames[rng.Intn(len(clientNames))],
			Department:            dept,
			StageName:             StageNames[rng.Intn(len(StageNames))],
			DaysInStage:           days,
			TotalExpenses:         expenses,
			ActiveTasks:           tasks,
			PercentComplete:       completion,
			ResponsibleStaff:      staffNames[rng.Intn(len(staffNames))],
			PriorityLevel:         priority,
			SettlementProbability: prob,
		})
	}
	return points
}

// pickWeighted maps a uniform draw to the priority distribution
// High 15%, Medium 50%, Low 30%, Critical 5%.
func pickWeighted(u float64) string {
	switch {
	case u < 0.15:
		return "High"
	case u < 0.65:
		return "Medium"
	case u < 0.95:
		return "Low"
	default:
		return "Critical"
	}
}

// timelineProgression is the canonical stage order a matter advances
// through on the gantt view.
var timelineProgression = []string{
	"Initial Review", "Investigation", "Filing", "Discovery",
	"Mediation", "Trial Prep", "Settlement", "Closed",
}

func stageDuration(rng intner, stage string) int {
	switch stage {
	case "Initial Review":
		return 5 + rng.Intn(25)
	case "Investigation", "Discovery":
		return 30 + rng.Intn(90)
	case "Filing", "Mediation":
		return 15 + rng.Intn(45)
	case "Trial Prep":
		return 60 + rng.Intn(120)
	default:
		return 10 + rng.Intn(35)
	}
}

type intner interface {
	Intn(n int) int
}

// Timeline generates matter gantt rows: each matter gets 3-7 consecutive
// lifecycle stages with department-typical durations and small gaps
// between stages.
func (g *Generator) Timeline(departmentFilter string, limit int) datatypes.TimelineData {
	rng := g.rng()
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	depts := Departments
	if departmentFilter != "" {
		depts = []string{departmentFilter}
	}

	out := datatypes.TimelineData{Source: datatypes.SourceSynthetic}
	for i := 0; i < limit; i++ {
		dept := depts[rng.Intn(len(depts))]
		staff := staffNames[rng.Intn(len(staffNames))]
		start := base.AddDate(0, 0, rng.Intn(600))
		numStages := 3 + rng.Intn(5)
		if numStages > len(timelineProgression) {
			numStages = len(timelineProgression)
		}

		matter := datatypes.TimelineMatter{
			MatterID:         fmt.Sprintf("MTR-2024-%04d", i+1001),
			ClientName:       clientNames[rng.Intn(len(clientNames))],
			Department:       dept,
			ResponsibleStaff: staff,
		}

		current := start
		for s := 0; s < numStages; s++ {
			stage := timelineProgression[s]
			days := stageDuration(rng, stage)
			end := current.AddDate(0, 0, days)

			completion := float64(60 + rng.Intn(36))
			if stage == "Closed" {
				completion = 100
			}

			matter.Stages = append(matter.Stages, datatypes.TimelineStage{
				Stage:      stage,
				Start:      current.Format("2006-01-02"),
				End:        end.Format("2006-01-02"),
				Completion: completion,
			})
			current = end.AddDate(0, 0, 1+rng.Intn(6))
		}
		out.Matters = append(out.Matters, matter)
	}
	return out
}

// ParallelCoords generates correlated matter attributes: matters with more
// completed tasks trend toward higher budgets, shorter cycles and more
// attorney hours.
func (g *Generator) ParallelCoords() datatypes.ParallelCoords {
	rng := g.rng()
	const n = 100

	out := datatypes.ParallelCoords{
		MatterIDs:      make([]string, n),
		TasksCompleted: make([]int, n),
		BudgetSpent:    make([]float64, n),
		CycleTime:      make([]float64, n),
		AttorneyHours:  make([]float64, n),
		Outcome:        make([]int, n),
	}
	for i := 0; i < n; i++ {
		tasks := 5 + rng.Intn(90)
		budget := clamp(float64(tasks)*300+rng.NormFloat64()*5000, 1000, 50000)
		cycle := clamp(180-float64(tasks)*1.2+rng.NormFloat64()*20, 10, 180)
		hours := clamp(float64(tasks)*1.5+rng.NormFloat64()*20, 5, 200)

		outcome := 0
		if tasks > 70 && cycle < 100 {
			outcome = 1
		}

		out.MatterIDs[i] = fmt.Sprintf("M%03d", i+1)
		out.TasksCompleted[i] = tasks
		out.BudgetSpent[i] = budget
		out.CycleTime[i] = cycle
		out.AttorneyHours[i] = hours
		out.Outcome[i] = outcome
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
