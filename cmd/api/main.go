package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "holiday_planner/internal/adapters/http_server"
	"holiday_planner/internal/adapters/observability"
	redisad "holiday_planner/internal/adapters/redis"
	"holiday_planner/internal/app"
	"holiday_planner/internal/domain"
	"holiday_planner/internal/engine"
	"holiday_planner/internal/shared"
	"holiday_planner/internal/sources/mock"
	"holiday_planner/internal/sources/travelapi"
	mysqlrepo "holiday_planner/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	programs, err := shared.LoadPrograms(cfg.ProgramsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ProgramsPath).Msg("loading loyalty programs failed")
	}

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	optimizer := engine.NewOptimizer(buildSources(cfg), programs, policyFrom(cfg), log.Logger)

	plan := app.NewPlanService(optimizer, repo, cache, cfg.CacheTTL)
	history := app.NewHistoryService(repo, cache, cfg.CacheTTL)
	loyalty := app.NewLoyaltyService(programs, cfg.LoyaltyThreshold)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Plan: plan, History: history, Loyalty: loyalty})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// buildSources returns the configured candidate sources: the external travel
// API when TRAVELAPI_BASE_URL is set, the seeded mock providers otherwise.
func buildSources(cfg shared.Config) []domain.CandidateSource {
	if cfg.TravelAPIBase != "" {
		client, err := travelapi.New("travelapi", cfg.TravelAPIBase, cfg.TravelAPIKey, cfg.TravelAPIRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize travel API client")
		}
		return []domain.CandidateSource{client}
	}
	return []domain.CandidateSource{
		mock.New("SkySearch", cfg.MockSeed),
		mock.New("TravelHub", cfg.MockSeed+1),
	}
}

func policyFrom(cfg shared.Config) engine.Policy {
	return engine.Policy{
		MaxWindows:       cfg.MaxWindows,
		PerSourceLimit:   cfg.PerSourceLimit,
		SourceTimeout:    cfg.SourceTimeout,
		WindowWorkers:    cfg.WindowWorkers,
		TopK:             cfg.TopK,
		MaxExpectedCost:  cfg.MaxExpectedCost,
		LoyaltyThreshold: cfg.LoyaltyThreshold,
	}
}
