// README: Smoke/benchmark runner for a running RickshawGo API; executes HTTP/DB/Redis checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	s := summarize(results)
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", s.pass, s.fail, s.pending, s.skipped)

	if s.fail > 0 || (cfg.Strict && s.pending > 0) {
		os.Exit(1)
	}
}

type summary struct {
	pass, fail, pending, skipped int
}

func summarize(results []Result) summary {
	var s summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.pass++
		case StatusFail:
			s.fail++
		case StatusPending:
			s.pending++
		case StatusSkip:
			s.skipped++
		}
	}
	return s
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("RICKSHAW_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("RICKSHAW_DB_DSN"), "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("RICKSHAW_REDIS_ADDR"), "Redis address (empty skips Redis checks)")
	flag.StringVar(&cfg.MigrationPath, "migration", envOrDefault("RICKSHAW_BENCH_MIGRATION", "migrations/0001_region_tariffs.sql"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", envOrDefaultBool("RICKSHAW_BENCH_APPLY_MIGRATION", false), "Apply migration SQL before tests")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("RICKSHAW_BENCH_STRICT", false), "Fail on pending tests")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("RICKSHAW_BENCH_TIMEOUT", 60*time.Second), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("RICKSHAW_BENCH_CONCURRENCY", 20), "Concurrency for perf tests")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("RICKSHAW_BENCH_DURATION", 10*time.Second), "Duration for perf tests")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
