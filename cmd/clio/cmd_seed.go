// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/cfe-solutions/clio-analytics/services/dashboard/datatypes"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/stores"
	"github.com/cfe-solutions/clio-analytics/services/dashboard/synth"
)

var seedPracticeAreas = []string{
	"Auto Accident", "Medical Malpractice", "Workers Comp",
	"Premises Liability", "Product Liability", "Wrongful Death",
}

var seedServiceTypes = []string{
	"Expert Witness", "Court Reporting", "Document Review",
	"Investigation", "Medical Records",
}

var seedVendors = []struct {
	id, name, specialty string
}{
	{"V001", "Apex Expert Witnesses", "Expert Witness"},
	{"V002", "Meridian Court Reporting", "Court Reporting"},
	{"V003", "Sterling Document Review", "Document Review"},
	{"V004", "Beacon Investigations", "Investigation"},
	{"V005", "Harbor Medical Records", "Medical Records"},
}

var seedTaskVerbs = []string{
	"Review discovery responses", "Draft motion", "Schedule deposition",
	"File status report", "Prepare exhibit list", "Client follow-up call",
	"Summarize medical records", "Serve subpoena",
}

// seedMatter is one generated matter plus the relational columns the chart
// points do not carry.
type seedMatter struct {
	datatypes.MatterPoint

	ClientID       string
	Value          float64
	Status         string
	PracticeArea   string
	CreatedAt      time.Time
	StageEnteredAt time.Time
	LastActivity   time.Time
	ClosedAt       *time.Time
}

type seedTask struct {
	ID          string
	MatterID    string
	AssigneeID  string
	Description string
	Status      string
	Priority    string
	DueDate     time.Time
	CompletedAt *time.Time
}

type seedExpense struct {
	ID       string
	MatterID string
	Amount   float64
}

type seedEngagement struct {
	VendorID    string
	MatterID    string
	Cost        float64
	ServiceType string
}

type seedStaff struct {
	ID, Name, Role, DepartmentID string
}

// seedDataset is everything the seed command writes, derived entirely from
// the seed value so repeat runs produce the same demo environment.
type seedDataset struct {
	Matters     []seedMatter
	Clients     []struct{ ID, Name string }
	Users       []struct{ ID, Name string }
	Staff       []seedStaff
	Departments []struct{ ID, Name string }
	Tasks       []seedTask
	Expenses    []seedExpense
	Engagements []seedEngagement
	FamilyPairs [][2]string
}

// runSeed generates the dataset and writes it to whichever stores are not
// skipped. Postgres gets the analytics tables, Neo4j the relationship graph;
// both describe the same matters.
func runSeed(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return fmt.Errorf("loading configuration: %w", cfgErr)
	}
	if seedMatterCount < 1 {
		return fmt.Errorf("--matters must be at least 1")
	}

	ds := buildDataset(seedValue, seedMatterCount)
	fmt.Printf("generated %d matters, %d tasks, %d expenses, %d vendor engagements (seed %d)\n",
		len(ds.Matters), len(ds.Tasks), len(ds.Expenses), len(ds.Engagements), seedValue)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if !seedSkipSQL {
		if err := seedPostgres(ctx, ds); err != nil {
			return fmt.Errorf("seeding postgres: %w", err)
		}
		fmt.Println("postgres seeded")
	}
	if !seedSkipGraph {
		if err := seedNeo4j(ctx, ds); err != nil {
			return fmt.Errorf("seeding neo4j: %w", err)
		}
		fmt.Println("neo4j seeded")
	}
	return nil
}

// buildDataset derives the full dataset from the generated matter points.
// Clients and staff are interned in order of first appearance so ids are
// stable for a given seed.
func buildDataset(seed int64, matterCount int) *seedDataset {
	points := synth.New(seed).Matters(matterCount, "")
	rng := rand.New(rand.NewSource(seed + 1))
	now := time.Now().UTC().Truncate(24 * time.Hour)

	ds := &seedDataset{}
	clientIDs := map[string]string{}
	userIDs := map[string]string{}

	for _, p := range points {
		clientID, ok := clientIDs[p.ClientName]
		if !ok {
			clientID = fmt.Sprintf("C%03d", len(ds.Clients)+1)
			clientIDs[p.ClientName] = clientID
			ds.Clients = append(ds.Clients, struct{ ID, Name string }{clientID, p.ClientName})
		}
		userID, ok := userIDs[p.ResponsibleStaff]
		if !ok {
			userID = fmt.Sprintf("U%03d", len(ds.Users)+1)
			userIDs[p.ResponsibleStaff] = userID
			ds.Users = append(ds.Users, struct{ ID, Name string }{userID, p.ResponsibleStaff})
		}

		m := seedMatter{
			MatterPoint:  p,
			ClientID:     clientID,
			Value:        math.Round(10000 + rng.Float64()*490000),
			Status:       "Active",
			PracticeArea: seedPracticeAreas[rng.Intn(len(seedPracticeAreas))],
		}
		if rng.Float64() < 0.25 {
			m.Status = "Completed"
			closed := now.AddDate(0, 0, -rng.Intn(40))
			m.ClosedAt = &closed
		}
		m.StageEnteredAt = now.AddDate(0, 0, -p.DaysInStage)
		m.CreatedAt = m.StageEnteredAt.AddDate(0, 0, -rng.Intn(200))
		m.LastActivity = now.AddDate(0, 0, -rng.Intn(14))
		ds.Matters = append(ds.Matters, m)

		// Each point's active-task count becomes real task rows, plus a
		// completed tail so completion rates are non-trivial.
		for i := 0; i < p.ActiveTasks; i++ {
			ds.Tasks = append(ds.Tasks, seedTask{
				ID:          uuid.NewString(),
				MatterID:    p.MatterID,
				AssigneeID:  userID,
				Description: seedTaskVerbs[rng.Intn(len(seedTaskVerbs))],
				Status:      "active",
				Priority:    seedPriority(rng),
				DueDate:     now.AddDate(0, 0, rng.Intn(28)-7),
			})
		}
		for i := 0; i < rng.Intn(6); i++ {
			due := now.AddDate(0, 0, -rng.Intn(60)-1)
			done := due.AddDate(0, 0, rng.Intn(5)-2)
			ds.Tasks = append(ds.Tasks, seedTask{
				ID:          uuid.NewString(),
				MatterID:    p.MatterID,
				AssigneeID:  userID,
				Description: seedTaskVerbs[rng.Intn(len(seedTaskVerbs))],
				Status:      "completed",
				Priority:    seedPriority(rng),
				DueDate:     due,
				CompletedAt: &done,
			})
		}

		// Split the rollup expense figure into line items.
		parts := 1 + rng.Intn(3)
		remaining := p.TotalExpenses
		for i := 0; i < parts; i++ {
			amount := remaining / float64(parts-i)
			if i < parts-1 {
				amount *= 0.5 + rng.Float64()
			}
			remaining -= amount
			ds.Expenses = append(ds.Expenses, seedExpense{
				ID:       uuid.NewString(),
				MatterID: p.MatterID,
				Amount:   math.Round(amount*100) / 100,
			})
		}

		if rng.Float64() < 0.4 {
			for i := 0; i < 1+rng.Intn(2); i++ {
				v := seedVendors[rng.Intn(len(seedVendors))]
				ds.Engagements = append(ds.Engagements, seedEngagement{
					VendorID:    v.id,
					MatterID:    p.MatterID,
					Cost:        math.Round(500 + rng.Float64()*19500),
					ServiceType: v.specialty,
				})
			}
		}
	}

	for i, d := range synth.Departments {
		ds.Departments = append(ds.Departments, struct{ ID, Name string }{fmt.Sprintf("D%03d", i+1), d})
	}
	roles := []string{"Attorney", "Paralegal", "Case Manager"}
	for i, u := range ds.Users {
		ds.Staff = append(ds.Staff, seedStaff{
			ID:           u.ID,
			Name:         u.Name,
			Role:         roles[i%len(roles)],
			DepartmentID: ds.Departments[i%len(ds.Departments)].ID,
		})
	}
	// Pair clients off into families for the FAMILY_OF graph.
	for i := 0; i+1 < len(ds.Clients); i += 2 {
		ds.FamilyPairs = append(ds.FamilyPairs, [2]string{ds.Clients[i].ID, ds.Clients[i+1].ID})
	}
	return ds
}

func seedPriority(rng *rand.Rand) string {
	switch u := rng.Float64(); {
	case u < 0.05:
		return "Critical"
	case u < 0.20:
		return "High"
	case u < 0.70:
		return "Medium"
	default:
		return "Low"
	}
}

const seedSchema = `
CREATE TABLE IF NOT EXISTS matters (
	id text PRIMARY KEY,
	client_id text NOT NULL,
	client_name text NOT NULL,
	description text NOT NULL,
	value numeric NOT NULL,
	status text NOT NULL,
	practice_area text,
	department text NOT NULL,
	stage_name text NOT NULL,
	days_in_stage int NOT NULL,
	percent_complete numeric,
	responsible_staff text,
	priority_level text,
	settlement_probability numeric,
	created_date timestamptz NOT NULL,
	stage_entered_at timestamptz NOT NULL,
	last_activity_date timestamptz,
	closed_at timestamptz
);
CREATE TABLE IF NOT EXISTS users (
	id text PRIMARY KEY,
	name text NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id uuid PRIMARY KEY,
	matter_id text NOT NULL REFERENCES matters(id),
	assignee_id text NOT NULL REFERENCES users(id),
	description text NOT NULL,
	status text NOT NULL,
	priority text NOT NULL,
	due_date timestamptz NOT NULL,
	completed_at timestamptz
);
CREATE TABLE IF NOT EXISTS expenses (
	id uuid PRIMARY KEY,
	matter_id text NOT NULL REFERENCES matters(id),
	amount numeric NOT NULL
);
CREATE TABLE IF NOT EXISTS vendor_engagements (
	vendor_id text NOT NULL,
	matter_id text NOT NULL REFERENCES matters(id),
	cost numeric NOT NULL,
	service_type text NOT NULL
);
CREATE TABLE IF NOT EXISTS matter_assignments (
	staff_id text NOT NULL,
	matter_id text NOT NULL REFERENCES matters(id)
);`

func seedPostgres(ctx context.Context, ds *seedDataset) error {
	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return fmt.Errorf("creating postgres pool: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, seedSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if seedReset {
		if _, err := pool.Exec(ctx,
			`TRUNCATE matter_assignments, vendor_engagements, expenses, tasks, users, matters CASCADE`); err != nil {
			return fmt.Errorf("truncating tables: %w", err)
		}
	}

	matterRows := make([][]any, 0, len(ds.Matters))
	assignmentRows := make([][]any, 0, len(ds.Matters))
	for _, m := range ds.Matters {
		matterRows = append(matterRows, []any{
			m.MatterID, m.ClientID, m.ClientName,
			fmt.Sprintf("%s - %s", m.PracticeArea, m.ClientName),
			m.Value, m.Status, m.PracticeArea, m.Department, m.StageName,
			m.DaysInStage, m.PercentComplete, m.ResponsibleStaff,
			m.PriorityLevel, m.SettlementProbability,
			m.CreatedAt, m.StageEnteredAt, m.LastActivity, m.ClosedAt,
		})
		assignmentRows = append(assignmentRows, []any{staffIDFor(ds, m.ResponsibleStaff), m.MatterID})
	}
	if err := copyRows(ctx, pool, "matters", []string{
		"id", "client_id", "client_name", "description", "value", "status",
		"practice_area", "department", "stage_name", "days_in_stage",
		"percent_complete", "responsible_staff", "priority_level",
		"settlement_probability", "created_date", "stage_entered_at",
		"last_activity_date", "closed_at",
	}, matterRows); err != nil {
		return err
	}

	userRows := make([][]any, 0, len(ds.Users))
	for _, u := range ds.Users {
		userRows = append(userRows, []any{u.ID, u.Name})
	}
	if err := copyRows(ctx, pool, "users", []string{"id", "name"}, userRows); err != nil {
		return err
	}

	taskRows := make([][]any, 0, len(ds.Tasks))
	for _, t := range ds.Tasks {
		taskRows = append(taskRows, []any{
			t.ID, t.MatterID, t.AssigneeID, t.Description, t.Status,
			t.Priority, t.DueDate, t.CompletedAt,
		})
	}
	if err := copyRows(ctx, pool, "tasks", []string{
		"id", "matter_id", "assignee_id", "description", "status",
		"priority", "due_date", "completed_at",
	}, taskRows); err != nil {
		return err
	}

	expenseRows := make([][]any, 0, len(ds.Expenses))
	for _, e := range ds.Expenses {
		expenseRows = append(expenseRows, []any{e.ID, e.MatterID, e.Amount})
	}
	if err := copyRows(ctx, pool, "expenses", []string{"id", "matter_id", "amount"}, expenseRows); err != nil {
		return err
	}

	engagementRows := make([][]any, 0, len(ds.Engagements))
	for _, e := range ds.Engagements {
		engagementRows = append(engagementRows, []any{e.VendorID, e.MatterID, e.Cost, e.ServiceType})
	}
	if err := copyRows(ctx, pool, "vendor_engagements",
		[]string{"vendor_id", "matter_id", "cost", "service_type"}, engagementRows); err != nil {
		return err
	}

	return copyRows(ctx, pool, "matter_assignments", []string{"staff_id", "matter_id"}, assignmentRows)
}

// staffIDFor maps a staff display name back to its interned user id.
func staffIDFor(ds *seedDataset, name string) string {
	for _, u := range ds.Users {
		if u.Name == name {
			return u.ID
		}
	}
	return ""
}

func copyRows(ctx context.Context, pool *pgxpool.Pool, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copying into %s: %w", table, err)
	}
	return nil
}

func seedNeo4j(ctx context.Context, ds *seedDataset) error {
	graph, err := stores.NewGraph(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database)
	if err != nil {
		return err
	}
	defer graph.Close(ctx)
	if err := graph.Verify(ctx); err != nil {
		return fmt.Errorf("verifying neo4j connectivity: %w", err)
	}

	if seedReset {
		if err := graph.Write(ctx, `MATCH (n) DETACH DELETE n`, nil); err != nil {
			return err
		}
	}

	clients := make([]any, 0, len(ds.Clients))
	for _, c := range ds.Clients {
		clients = append(clients, map[string]any{"id": c.ID, "name": c.Name})
	}
	matters := make([]any, 0, len(ds.Matters))
	owns := make([]any, 0, len(ds.Matters))
	assigned := make([]any, 0, len(ds.Matters))
	for _, m := range ds.Matters {
		matters = append(matters, map[string]any{
			"id":            m.MatterID,
			"description":   fmt.Sprintf("%s - %s", m.PracticeArea, m.ClientName),
			"status":        m.Status,
			"value":         m.Value,
			"practice_area": m.PracticeArea,
		})
		owns = append(owns, map[string]any{"client_id": m.ClientID, "matter_id": m.MatterID})
		assigned = append(assigned, map[string]any{
			"matter_id": m.MatterID,
			"staff_id":  staffIDFor(ds, m.ResponsibleStaff),
		})
	}
	families := make([]any, 0, len(ds.FamilyPairs))
	for _, p := range ds.FamilyPairs {
		families = append(families, map[string]any{"a": p[0], "b": p[1]})
	}
	vendors := make([]any, 0, len(seedVendors))
	for _, v := range seedVendors {
		vendors = append(vendors, map[string]any{"id": v.id, "name": v.name, "specialty": v.specialty})
	}
	engagements := make([]any, 0, len(ds.Engagements))
	for _, e := range ds.Engagements {
		engagements = append(engagements, map[string]any{
			"vendor_id":    e.VendorID,
			"matter_id":    e.MatterID,
			"cost":         e.Cost,
			"service_type": e.ServiceType,
		})
	}
	departments := make([]any, 0, len(ds.Departments))
	for _, d := range ds.Departments {
		departments = append(departments, map[string]any{"id": d.ID, "name": d.Name})
	}
	staff := make([]any, 0, len(ds.Staff))
	for _, s := range ds.Staff {
		staff = append(staff, map[string]any{
			"id": s.ID, "name": s.Name, "role": s.Role, "dept_id": s.DepartmentID,
		})
	}

	// MERGE keeps reruns idempotent without --reset.
	writes := []struct {
		query string
		rows  []any
	}{
		{`UNWIND $rows AS row MERGE (c:Client {id: row.id}) SET c.name = row.name`, clients},
		{`UNWIND $rows AS row MERGE (m:Matter {id: row.id})
		  SET m.description = row.description, m.status = row.status,
		      m.value = row.value, m.practice_area = row.practice_area`, matters},
		{`UNWIND $rows AS row
		  MATCH (a:Client {id: row.a}), (b:Client {id: row.b})
		  MERGE (a)-[:FAMILY_OF]->(b)`, families},
		{`UNWIND $rows AS row
		  MATCH (c:Client {id: row.client_id}), (m:Matter {id: row.matter_id})
		  MERGE (c)-[:OWNS]->(m)
		  MERGE (m)-[:OWNED_BY]->(c)`, owns},
		{`UNWIND $rows AS row MERGE (v:Vendor {id: row.id})
		  SET v.name = row.name, v.specialty = row.specialty`, vendors},
		{`UNWIND $rows AS row
		  MATCH (v:Vendor {id: row.vendor_id}), (m:Matter {id: row.matter_id})
		  MERGE (v)-[r:USED_IN]->(m)
		  SET r.cost = row.cost, r.service_type = row.service_type`, engagements},
		{`UNWIND $rows AS row MERGE (d:Department {id: row.id}) SET d.name = row.name`, departments},
		{`UNWIND $rows AS row
		  MERGE (s:Staff {id: row.id})
		  SET s.name = row.name, s.role = row.role
		  WITH s, row
		  MATCH (d:Department {id: row.dept_id})
		  MERGE (s)-[:WORKS_IN]->(d)`, staff},
		{`UNWIND $rows AS row
		  MATCH (m:Matter {id: row.matter_id}), (s:Staff {id: row.staff_id})
		  MERGE (m)-[:ASSIGNED_TO]->(s)`, assigned},
	}
	for _, w := range writes {
		if len(w.rows) == 0 {
			continue
		}
		if err := graph.Write(ctx, w.query, map[string]any{"rows": w.rows}); err != nil {
			return err
		}
	}
	return nil
}
