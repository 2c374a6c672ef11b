//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"holiday_planner/internal/domain"
	mysqlrepo "holiday_planner/internal/storage/mysql"
)

// ---------- helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func record(id, dest string, generatedAt time.Time) domain.TripRecord {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	return domain.TripRecord{
		ID: id,
		Intent: domain.TripIntent{
			Destination: dest,
			RangeStart:  start,
			RangeEnd:    start.AddDate(0, 0, 9),
			Travelers:   2,
			Prefs:       domain.Preferences{MinDuration: 3, MaxDuration: 5},
		},
		Packages: []domain.TripPackage{{
			ID:        id + "-pkg",
			Flight:    domain.FlightCandidate{Airline: "BA", DepartTime: start.Add(10 * time.Hour), ArriveTime: start.Add(12 * time.Hour), Cost: 120, Source: "mock"},
			Hotel:     domain.HotelCandidate{Name: "Test Inn", CostPerNight: 80, DistanceKM: 1.2, Source: "mock"},
			Window:    domain.TravelWindow{StartDate: start, EndDate: start.AddDate(0, 0, 3), Duration: 3},
			Travelers: 2,
			TotalCost: 720,
		}},
		GeneratedAt: generatedAt,
	}
}

// ---------- the test ----------

func TestRepo_MySQL_SaveAndListRecent(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=planner",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "planner")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	base := time.Date(2024, 8, 30, 12, 0, 0, 0, time.UTC)
	older := record("11111111-1111-1111-1111-111111111111", "Lisbon", base)
	newer := record("22222222-2222-2222-2222-222222222222", "Rome", base.Add(time.Hour))

	if err := repo.SaveRecord(ctx, older); err != nil {
		t.Fatalf("SaveRecord older: %v", err)
	}
	if err := repo.SaveRecord(ctx, newer); err != nil {
		t.Fatalf("SaveRecord newer: %v", err)
	}

	// saving the same id again updates rather than duplicating
	if err := repo.SaveRecord(ctx, older); err != nil {
		t.Fatalf("SaveRecord upsert: %v", err)
	}

	got, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Intent.Destination != "Rome" || len(got[0].Packages) != 1 {
		t.Fatalf("record content lost: %+v", got[0])
	}
	if got[0].Packages[0].TotalCost != 720 {
		t.Fatalf("package cost drifted: %v", got[0].Packages[0].TotalCost)
	}

	// limit applies
	one, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent limit: %v", err)
	}
	if len(one) != 1 || one[0].ID != newer.ID {
		t.Fatalf("unexpected limited page: %+v", one)
	}
}
