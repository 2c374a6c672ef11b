//go:build integration || !unit

package integration

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/rs/zerolog"

	server "holiday_planner/internal/adapters/http_server"
	redisad "holiday_planner/internal/adapters/redis"
	"holiday_planner/internal/app"
	"holiday_planner/internal/domain"
	"holiday_planner/internal/engine"
	"holiday_planner/internal/shared"
	"holiday_planner/internal/sources/mock"
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

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
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
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/planner?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

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
	return db
}

// ---------- the test ----------

func TestHTTP_EndToEnd_PlanAndHistory(t *testing.T) {
	db := startMySQL(t)
	mr := miniredis.RunT(t)

	repo := mysqlrepo.New(db)
	cache := redisad.New(mr.Addr(), "", 0)
	programs := shared.DefaultPrograms()

	sources := []domain.CandidateSource{
		mock.New("SkySearch", 42),
		mock.New("TravelHub", 43),
	}
	optimizer := engine.NewOptimizer(sources, programs, engine.DefaultPolicy(), zerolog.Nop())

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Plan:    app.NewPlanService(optimizer, repo, cache, time.Minute),
		History: app.NewHistoryService(repo, cache, time.Minute),
		Loyalty: app.NewLoyaltyService(programs, 10),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	body := `{
		"destination": "Paris",
		"date_range": ["2024-09-01", "2024-09-10"],
		"travelers": 2,
		"preferences": {"min_duration": 3, "max_duration": 5, "prefer_evening_flights": true},
		"loyalty": {"program": "virgin", "balance": 500000}
	}`
	res, err := http.Post(ts.URL+"/v1/trips/plan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST plan: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("plan status %d", res.StatusCode)
	}

	var plan struct {
		RequestID string               `json:"request_id"`
		Packages  []domain.TripPackage `json:"packages"`
	}
	if err := json.NewDecoder(res.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.RequestID == "" {
		t.Fatal("empty request id")
	}
	if len(plan.Packages) == 0 {
		t.Fatal("no packages returned")
	}
	for i := 1; i < len(plan.Packages); i++ {
		if plan.Packages[i].TotalScore > plan.Packages[i-1].TotalScore {
			t.Fatalf("packages not ranked: %v > %v at %d",
				plan.Packages[i].TotalScore, plan.Packages[i-1].TotalScore, i)
		}
	}
	if plan.Packages[0].Loyalty == nil {
		t.Fatal("expected loyalty evaluation on top package")
	}

	// the plan must be durably recorded and visible through history
	res2, err := http.Get(ts.URL + "/v1/trips/history?limit=5")
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusOK {
		t.Fatalf("history status %d", res2.StatusCode)
	}
	var hist struct {
		Items []domain.TripRecord `json:"items"`
	}
	if err := json.NewDecoder(res2.Body).Decode(&hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	found := false
	for _, rec := range hist.Items {
		if rec.ID == plan.RequestID {
			found = true
			if rec.Intent.Destination != "Paris" {
				t.Fatalf("persisted destination = %q", rec.Intent.Destination)
			}
			if len(rec.Packages) != len(plan.Packages) {
				t.Fatalf("persisted %d packages, served %d", len(rec.Packages), len(plan.Packages))
			}
		}
	}
	if !found {
		t.Fatalf("plan %s not found in history", plan.RequestID)
	}
}
