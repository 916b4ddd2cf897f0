// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package stores

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
)

// ErrNotFound is returned when a point lookup matches no row and the
// caller needs to branch on absence.
var ErrNotFound = errors.New("record not found")

// staffFullCapacity is the active-matter count treated as 100% utilization.
const staffFullCapacity = 15

// Relational wraps the Postgres analytics store. All queries check a
// connection out of the pool for the duration of the call only.
type Relational struct {
	pool *pgxpool.Pool
}

// NewRelational connects the pool and pings the store.
func NewRelational(ctx context.Context, connString string) (*Relational, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Relational{pool: pool}, nil
}

// Close releases the pool.
func (r *Relational) Close() {
	r.pool.Close()
}

// Verify checks connectivity to the relational store.
func (r *Relational) Verify(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ClientMetrics returns aggregate matter figures for one client. A client
// with no matters yields zeros, not an error.
func (r *Relational) ClientMetrics(ctx context.Context, clientID string) (datatypes.ClientMetrics, error) {
	const q = `
		SELECT COUNT(m.id),
		       COALESCE(SUM(m.value), 0),
		       COALESCE(AVG(m.value), 0)
		FROM matters m
		WHERE m.client_id = $1`

	var out datatypes.ClientMetrics
	err := r.pool.QueryRow(ctx, q, clientID).Scan(&out.MatterCount, &out.TotalMatterValue, &out.AvgMatterValue)
	if err != nil {
		return datatypes.ClientMetrics{}, fmt.Errorf("querying client metrics: %w", err)
	}
	return out, nil
}

// MatterRecord returns the display record for one matter.
func (r *Relational) MatterRecord(ctx context.Context, matterID string) (datatypes.MatterRecord, error) {
	const q = `
		SELECT id, description, COALESCE(value, 0), COALESCE(status, 'Active'),
		       COALESCE(practice_area, ''), COALESCE(created_date::text, '')
		FROM matters
		WHERE id = $1`

	var out datatypes.MatterRecord
	err := r.pool.QueryRow(ctx, q, matterID).Scan(
		&out.ID, &out.Description, &out.Value, &out.Status, &out.PracticeArea, &out.CreatedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return datatypes.MatterRecord{ID: matterID}, nil
	}
	if err != nil {
		return datatypes.MatterRecord{}, fmt.Errorf("querying matter record: %w", err)
	}
	return out, nil
}

// VendorMetrics returns engagement figures for one vendor.
func (r *Relational) VendorMetrics(ctx context.Context, vendorID string) (datatypes.VendorMetrics, error) {
	const q = `
		SELECT COUNT(DISTINCT m.id),
		       COALESCE(SUM(ve.cost), 0),
		       COALESCE(AVG(ve.cost), 0)
		FROM vendor_engagements ve
		JOIN matters m ON ve.matter_id = m.id
		WHERE ve.vendor_id = $1`

	var out datatypes.VendorMetrics
	err := r.pool.QueryRow(ctx, q, vendorID).Scan(&out.MatterCount, &out.TotalRevenue, &out.AvgCostPerMatter)
	if err != nil {
		return datatypes.VendorMetrics{}, fmt.Errorf("querying vendor metrics: %w", err)
	}
	return out, nil
}

// StaffMetrics returns workload figures for one staff member, including
// the derived capacity percentage.
func (r *Relational) StaffMetrics(ctx context.Context, staffID string) (datatypes.StaffMetrics, error) {
	const q = `
		SELECT COUNT(*) FILTER (WHERE m.status = 'Active'),
		       COUNT(m.id),
		       COALESCE(AVG(m.value), 0)
		FROM matter_assignments ma
		JOIN matters m ON ma.matter_id = m.id
		WHERE ma.staff_id = $1`

	var out datatypes.StaffMetrics
	err := r.pool.QueryRow(ctx, q, staffID).Scan(&out.ActiveMatters, &out.TotalMatters, &out.AvgMatterValue)
	if err != nil {
		return datatypes.StaffMetrics{}, fmt.Errorf("querying staff metrics: %w", err)
	}
	out.CapacityPct = CapacityPct(out.ActiveMatters)
	return out, nil
}

// CapacityPct converts an active-matter count into a utilization
// percentage, capped at 100.
func CapacityPct(activeMatters int) float64 {
	return math.Min(100, float64(activeMatters)/staffFullCapacity*100)
}

// StageDistribution returns matter counts and average dwell time per
// lifecycle stage.
func (r *Relational) StageDistribution(ctx context.Context) (datatypes.StageData, error) {
	const q = `
		SELECT stage_name, COUNT(*), COALESCE(AVG(days_in_stage), 0)::int
		FROM matters
		WHERE status = 'Active'
		GROUP BY stage_name
		ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return datatypes.StageData{}, fmt.Errorf("querying stage distribution: %w", err)
	}
	defer rows.Close()

	out := datatypes.StageData{Stages: []string{}, Counts: []int{}, AvgDays: []int{}, Source: datatypes.SourceLive}
	for rows.Next() {
		var stage string
		var count, avgDays int
		if err := rows.Scan(&stage, &count, &avgDays); err != nil {
			return datatypes.StageData{}, fmt.Errorf("scanning stage row: %w", err)
		}
		out.Stages = append(out.Stages, stage)
		out.Counts = append(out.Counts, count)
		out.AvgDays = append(out.AvgDays, avgDays)
	}
	if err := rows.Err(); err != nil {
		return datatypes.StageData{}, fmt.Errorf("iterating stage rows: %w", err)
	}
	return out, nil
}

// MattersOverview returns the matter points feeding the 3D views, joined
// with expense and task rollups. departmentFilter may be empty.
func (r *Relational) MattersOverview(ctx context.Context, limit int, departmentFilter string, rangeDays int) ([]datatypes.MatterPoint, error) {
	const q = `
		SELECT m.id, m.client_name, m.department, m.stage_name, m.days_in_stage,
		       COALESCE(e.total_expenses, 0),
		       COALESCE(t.active_tasks, 0),
		       COALESCE(m.percent_complete, 0),
		       COALESCE(m.responsible_staff, ''),
		       COALESCE(m.priority_level, 'Medium'),
		       COALESCE(m.settlement_probability, 0)
		FROM matters m
		LEFT JOIN (
			SELECT matter_id, SUM(amount) AS total_expenses
			FROM expenses GROUP BY matter_id
		) e ON m.id = e.matter_id
		LEFT JOIN (
			SELECT matter_id, COUNT(*) AS active_tasks
			FROM tasks WHERE status = 'active' GROUP BY matter_id
		) t ON m.id = t.matter_id
		WHERE m.created_date >= now() - make_interval(days => $1)
		  AND ($2 = '' OR m.department = $2)
		ORDER BY m.created_date DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, q, rangeDays, departmentFilter, limit)
	if err != nil {
		return nil, fmt.Errorf("querying matters overview: %w", err)
	}
	defer rows.Close()

	var points []datatypes.MatterPoint
	for rows.Next() {
		var p datatypes.MatterPoint
		if err := rows.Scan(&p.MatterID, &p.ClientName, &p.Department, &p.StageName, &p.DaysInStage,
			&p.TotalExpenses, &p.ActiveTasks, &p.PercentComplete, &p.ResponsibleStaff,
			&p.PriorityLevel, &p.SettlementProbability); err != nil {
			return nil, fmt.Errorf("scanning matter point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matter points: %w", err)
	}
	return points, nil
}

// DepartmentSummary aggregates matter statistics per department.
func (r *Relational) DepartmentSummary(ctx context.Context) (datatypes.DepartmentSummary, error) {
	const q = `
		SELECT m.department, COUNT(*),
		       COALESCE(AVG(m.days_in_stage), 0),
		       COALESCE(AVG(m.percent_complete), 0),
		       COALESCE(SUM(e.total_expenses), 0)
		FROM matters m
		LEFT JOIN (
			SELECT matter_id, SUM(amount) AS total_expenses
			FROM expenses GROUP BY matter_id
		) e ON m.id = e.matter_id
		GROUP BY m.department
		ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return datatypes.DepartmentSummary{}, fmt.Errorf("querying department summary: %w", err)
	}
	defer rows.Close()

	out := datatypes.DepartmentSummary{Source: datatypes.SourceLive}
	for rows.Next() {
		var dept string
		var count int
		var avgDays, avgCompletion, totalExpenses float64
		if err := rows.Scan(&dept, &count, &avgDays, &avgCompletion, &totalExpenses); err != nil {
			return datatypes.DepartmentSummary{}, fmt.Errorf("scanning department row: %w", err)
		}
		out.Departments = append(out.Departments, dept)
		out.MatterCounts = append(out.MatterCounts, count)
		out.AvgDays = append(out.AvgDays, avgDays)
		out.AvgCompletion = append(out.AvgCompletion, avgCompletion)
		out.TotalExpenses = append(out.TotalExpenses, totalExpenses)
	}
	if err := rows.Err(); err != nil {
		return datatypes.DepartmentSummary{}, fmt.Errorf("iterating department rows: %w", err)
	}
	return out, nil
}

// MatterDetail returns the full record for one matter. Returns ErrNotFound
// when the matter does not exist.
func (r *Relational) MatterDetail(ctx context.Context, matterID string) (datatypes.MatterDetail, error) {
	const q = `
		SELECT m.id, m.client_name, m.department, m.stage_name, m.days_in_stage,
		       COALESCE(m.percent_complete, 0),
		       COALESCE(m.responsible_staff, ''),
		       COALESCE(m.priority_level, 'Medium'),
		       COALESCE(m.settlement_probability, 0),
		       COALESCE(e.total_expenses, 0),
		       COALESCE(t.active_tasks, 0),
		       COALESCE(t.completed_tasks, 0)
		FROM matters m
		LEFT JOIN (
			SELECT matter_id, SUM(amount) AS total_expenses
			FROM expenses GROUP BY matter_id
		) e ON m.id = e.matter_id
		LEFT JOIN (
			SELECT matter_id,
			       COUNT(*) FILTER (WHERE status = 'active') AS active_tasks,
			       COUNT(*) FILTER (WHERE status = 'completed') AS completed_tasks
			FROM tasks GROUP BY matter_id
		) t ON m.id = t.matter_id
		WHERE m.id = $1`

	var d datatypes.MatterDetail
	err := r.pool.QueryRow(ctx, q, matterID).Scan(
		&d.MatterID, &d.ClientName, &d.Department, &d.StageName, &d.DaysInStage,
		&d.PercentComplete, &d.ResponsibleStaff, &d.PriorityLevel, &d.SettlementProbability,
		&d.TotalExpenses, &d.ActiveTasks, &d.CompletedTasks)
	if errors.Is(err, pgx.ErrNoRows) {
		return datatypes.MatterDetail{}, ErrNotFound
	}
	if err != nil {
		return datatypes.MatterDetail{}, fmt.Errorf("querying matter detail: %w", err)
	}
	return d, nil
}

// UserWorkload returns the per-user task workload table, busiest first.
func (r *Relational) UserWorkload(ctx context.Context, limit int) (datatypes.WorkloadData, error) {
	const q = `
		SELECT u.name,
		       COUNT(*) FILTER (WHERE t.status = 'active'),
		       COUNT(*) FILTER (WHERE t.status = 'active' AND t.due_date < now()),
		       COALESCE((100.0 * COUNT(*) FILTER (WHERE t.status = 'completed' AND t.completed_at <= t.due_date)
		                 / NULLIF(COUNT(*) FILTER (WHERE t.status = 'completed'), 0))::int, 100),
		       COUNT(*) FILTER (WHERE t.status = 'completed')
		FROM users u
		JOIN tasks t ON t.assignee_id = u.id
		GROUP BY u.name
		ORDER BY COUNT(*) FILTER (WHERE t.status = 'active') DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return datatypes.WorkloadData{}, fmt.Errorf("querying user workload: %w", err)
	}
	defer rows.Close()

	out := datatypes.WorkloadData{Source: datatypes.SourceLive}
	for rows.Next() {
		var user string
		var active, overdue, rate, completed int
		if err := rows.Scan(&user, &active, &overdue, &rate, &completed); err != nil {
			return datatypes.WorkloadData{}, fmt.Errorf("scanning workload row: %w", err)
		}
		out.Users = append(out.Users, user)
		out.ActiveTasks = append(out.ActiveTasks, active)
		out.OverdueTasks = append(out.OverdueTasks, overdue)
		out.CompletionRate = append(out.CompletionRate, rate)
		out.TotalCompleted = append(out.TotalCompleted, completed)
	}
	if err := rows.Err(); err != nil {
		return datatypes.WorkloadData{}, fmt.Errorf("iterating workload rows: %w", err)
	}
	return out, nil
}

// StuckMatters reports matters sitting in a stage for more than 90 days,
// grouped by stage.
func (r *Relational) StuckMatters(ctx context.Context) (datatypes.BottleneckData, error) {
	const q = `
		SELECT stage_name, COUNT(*), COALESCE(AVG(days_in_stage), 0)::int
		FROM matters
		WHERE status = 'Active' AND days_in_stage > 90
		GROUP BY stage_name
		ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return datatypes.BottleneckData{}, fmt.Errorf("querying stuck matters: %w", err)
	}
	defer rows.Close()

	out := datatypes.BottleneckData{Source: datatypes.SourceLive}
	for rows.Next() {
		var stage string
		var count, avgDays int
		if err := rows.Scan(&stage, &count, &avgDays); err != nil {
			return datatypes.BottleneckData{}, fmt.Errorf("scanning stuck row: %w", err)
		}
		out.Stages = append(out.Stages, stage)
		out.StuckCounts = append(out.StuckCounts, count)
		out.AvgStuckDays = append(out.AvgStuckDays, avgDays)
	}
	if err := rows.Err(); err != nil {
		return datatypes.BottleneckData{}, fmt.Errorf("iterating stuck rows: %w", err)
	}
	return out, nil
}

// PracticeAreaCounts returns the top practice areas by active matter count.
func (r *Relational) PracticeAreaCounts(ctx context.Context, topN int) (datatypes.PracticeAreaCounts, error) {
	const q = `
		SELECT COALESCE(practice_area, 'Unassigned'), COUNT(*)
		FROM matters
		WHERE status = 'Active'
		GROUP BY practice_area
		ORDER BY COUNT(*) DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, q, topN)
	if err != nil {
		return datatypes.PracticeAreaCounts{}, fmt.Errorf("querying practice areas: %w", err)
	}
	defer rows.Close()

	out := datatypes.PracticeAreaCounts{Source: datatypes.SourceLive}
	for rows.Next() {
		var area string
		var count int
		if err := rows.Scan(&area, &count); err != nil {
			return datatypes.PracticeAreaCounts{}, fmt.Errorf("scanning practice area row: %w", err)
		}
		out.PracticeAreas = append(out.PracticeAreas, area)
		out.Counts = append(out.Counts, count)
	}
	if err := rows.Err(); err != nil {
		return datatypes.PracticeAreaCounts{}, fmt.Errorf("iterating practice area rows: %w", err)
	}
	return out, nil
}

// ActivitySeries returns matters processed per day over the trailing window.
func (r *Relational) ActivitySeries(ctx context.Context, days int) (datatypes.ActivitySeries, error) {
	const q = `
		SELECT d::date::text, COUNT(m.id)
		FROM generate_series(now() - make_interval(days => $1 - 1), now(), '1 day') d
		LEFT JOIN matters m ON m.last_activity_date::date = d::date
		GROUP BY d::date
		ORDER BY d::date`

	rows, err := r.pool.Query(ctx, q, days)
	if err != nil {
		return datatypes.ActivitySeries{}, fmt.Errorf("querying activity series: %w", err)
	}
	defer rows.Close()

	out := datatypes.ActivitySeries{Source: datatypes.SourceLive}
	for rows.Next() {
		var p datatypes.ActivityPoint
		if err := rows.Scan(&p.Date, &p.Matters); err != nil {
			return datatypes.ActivitySeries{}, fmt.Errorf("scanning activity row: %w", err)
		}
		out.Points = append(out.Points, p)
	}
	if err := rows.Err(); err != nil {
		return datatypes.ActivitySeries{}, fmt.Errorf("iterating activity rows: %w", err)
	}
	return out, nil
}

// UrgentTasks returns overdue and high-priority open tasks.
func (r *Relational) UrgentTasks(ctx context.Context, limit int) ([]datatypes.UrgentTask, error) {
	const q = `
		SELECT t.description, m.id, u.name, t.due_date::date::text, t.priority
		FROM tasks t
		JOIN matters m ON t.matter_id = m.id
		JOIN users u ON t.assignee_id = u.id
		WHERE t.status = 'active' AND (t.due_date < now() OR t.priority IN ('High', 'Critical'))
		ORDER BY t.due_date ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("querying urgent tasks: %w", err)
	}
	defer rows.Close()

	var tasks []datatypes.UrgentTask
	for rows.Next() {
		var t datatypes.UrgentTask
		if err := rows.Scan(&t.Task, &t.Matter, &t.Assignee, &t.DueDate, &t.Priority); err != nil {
			return nil, fmt.Errorf("scanning urgent task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating urgent tasks: %w", err)
	}
	return tasks, nil
}

// DepartmentMetrics returns the per-department cards: active matters,
// average dwell time and completions month-to-date.
func (r *Relational) DepartmentMetrics(ctx context.Context) (datatypes.DepartmentMetrics, error) {
	const q = `
		SELECT lower(department),
		       COUNT(*) FILTER (WHERE status = 'Active'),
		       COALESCE(AVG(days_in_stage) FILTER (WHERE status = 'Active'), 0)::int,
		       COUNT(*) FILTER (WHERE status = 'Completed' AND closed_at >= date_trunc('month', now()))
		FROM matters
		GROUP BY lower(department)`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return datatypes.DepartmentMetrics{}, fmt.Errorf("querying department metrics: %w", err)
	}
	defer rows.Close()

	out := datatypes.DepartmentMetrics{
		Departments: make(map[string]datatypes.DepartmentMetric),
		Source:      datatypes.SourceLive,
	}
	for rows.Next() {
		var name string
		var m datatypes.DepartmentMetric
		if err := rows.Scan(&name, &m.Active, &m.AvgDays, &m.CompletedMTD); err != nil {
			return datatypes.DepartmentMetrics{}, fmt.Errorf("scanning department metrics: %w", err)
		}
		out.Departments[name] = m
	}
	if err := rows.Err(); err != nil {
		return datatypes.DepartmentMetrics{}, fmt.Errorf("iterating department metrics: %w", err)
	}
	return out, nil
}

// KPICounters returns the headline overview figures in one round trip.
func (r *Relational) KPICounters(ctx context.Context) (datatypes.KPISet, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM matters WHERE status = 'Active'),
			(SELECT COALESCE(AVG(days_in_stage), 0)::int FROM matters WHERE status = 'Active'),
			(SELECT COUNT(*) FROM matters
			 WHERE stage_name = 'Settlement' AND stage_entered_at >= date_trunc('month', now())),
			(SELECT COALESCE((100.0 * COUNT(*) FILTER (WHERE days_in_stage > 90) / NULLIF(COUNT(*), 0))::int, 0)
			 FROM matters WHERE status = 'Active'),
			(SELECT COALESCE(AVG(cnt), 0)::int FROM (
				SELECT COUNT(*) AS cnt FROM tasks WHERE status = 'active' GROUP BY assignee_id
			) w)`

	var k datatypes.KPISet
	err := r.pool.QueryRow(ctx, q).Scan(
		&k.TotalActiveMatters, &k.AvgDaysInStage, &k.MattersSettledMonth,
		&k.BottleneckPercentage, &k.AvgStaffWorkload)
	if err != nil {
		return datatypes.KPISet{}, fmt.Errorf("querying kpi counters: %w", err)
	}
	k.Source = datatypes.SourceLive
	return k, nil
}
