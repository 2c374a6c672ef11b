package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	ProgramsPath  string
	TravelAPIBase string
	TravelAPIKey  string
	TravelAPIRPS  int
	MockSeed      int64
	CacheTTL      time.Duration

	// engine policy knobs
	MaxWindows       int
	PerSourceLimit   int
	SourceTimeout    time.Duration
	WindowWorkers    int
	TopK             int
	MaxExpectedCost  float64
	LoyaltyThreshold float64
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/planner?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		ProgramsPath:  env("LOYALTY_PROGRAMS_PATH", "configs/loyalty_programs.yaml"),
		TravelAPIBase: env("TRAVELAPI_BASE_URL", ""),
		TravelAPIKey:  env("TRAVELAPI_KEY", ""),
		TravelAPIRPS:  atoi("TRAVELAPI_RPS", 5),
		MockSeed:      int64(atoi("MOCK_SEED", 0)),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		MaxWindows:       atoi("MAX_WINDOWS", 10),
		PerSourceLimit:   atoi("PER_SOURCE_LIMIT", 5),
		SourceTimeout:    time.Duration(atoi("SOURCE_TIMEOUT_SECONDS", 15)) * time.Second,
		WindowWorkers:    atoi("WINDOW_WORKERS", 4),
		TopK:             atoi("TOP_K", 3),
		MaxExpectedCost:  atof("MAX_EXPECTED_COST", 2000),
		LoyaltyThreshold: atof("LOYALTY_THRESHOLD", 10),
	}
	if c.TravelAPIBase != "" && c.TravelAPIKey == "" {
		log.Warn().Msg("TRAVELAPI_BASE_URL set but TRAVELAPI_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
