// README: Bench cases for the fare API; includes HTTP, DB, Redis, regional tariff, and throughput checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"rickshawgo/internal/modules/pricing"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

// benchRegion is seeded with a flat tariff and removed afterwards.
const benchRegion = "bench-flat"

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

var (
	busStand    = map[string]float64{"lng": 73.3004, "lat": 16.9944}
	ganpatipule = map[string]float64{"lng": 73.2602, "lat": 17.1377}
)

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "tariff store reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "tariff cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "apply migration SQL",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "tables from the migration file exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("API: metrics", http.MethodGet, base+"/metrics", nil, []int{200}, []int{404}),

		// Fares
		fareCase("Fare: estimate by coordinates is capped", base, map[string]any{
			"pickup":      busStand,
			"destination": ganpatipule,
		}, func(total int64) bool { return total == 200 }),

		fareCase("Fare: same point hits minimum", base, map[string]any{
			"pickup":      busStand,
			"destination": busStand,
		}, func(total int64) bool { return total == 20 || total == 23 }),

		fareCase("Fare: estimate by landmark names", base, map[string]any{
			"pickup_name":      "Ratnagiri Bus Stand",
			"destination_name": "Ratnadurg Fort",
			"waiting_minutes":  10,
		}, func(total int64) bool { return total == 51 || total == 76 }),

		httpCase("Fare: invalid coordinate -> 400", base+"/api/fares/estimate", map[string]any{
			"pickup":      map[string]float64{"lng": 73.3, "lat": 123},
			"destination": ganpatipule,
		}, []int{400}, nil),

		httpCase("Fare: negative waiting -> 400", base+"/api/fares/estimate", map[string]any{
			"pickup":          busStand,
			"destination":     ganpatipule,
			"waiting_minutes": -5,
		}, []int{400}, nil),

		httpCase("Fare: unknown place -> 404", base+"/api/fares/estimate", map[string]any{
			"pickup_name":      "Nowhere In Particular 12345",
			"destination_name": "Ratnadurg Fort",
		}, []int{404}, nil),

		httpCase("Fare: empty body -> 400", base+"/api/fares/estimate", map[string]any{}, []int{400}, nil),

		httpCaseMethod("Fare: preview", http.MethodGet, base+"/api/fares/preview?distance_km=3.5", nil, []int{200}, nil),
		httpCaseMethod("Fare: preview negative distance -> 400", http.MethodGet, base+"/api/fares/preview?distance_km=-2", nil, []int{400}, nil),
		httpCaseMethod("Fare: common routes", http.MethodGet, base+"/api/routes/common", nil, []int{200}, nil),

		{
			Name:  "Tariff: regional override",
			Focus: "seeded region tariff is served by preview",
			Run: func(ctx context.Context, r *Runner) Result {
				return regionalTariff(ctx, r, base)
			},
		},

		// Places
		httpCaseMethod("Places: search", http.MethodGet, base+"/api/places?q=beach", nil, []int{200}, nil),
		httpCaseMethod("Places: nearest", http.MethodGet, base+"/api/places/nearest?lng=73.30&lat=16.99&limit=3", nil, []int{200}, nil),
		httpCaseMethod("Places: nearest invalid -> 400", http.MethodGet, base+"/api/places/nearest?lng=73.30", nil, []int{400}, nil),

		manualCase("Error: DB down -> default tariff", "stop Postgres and check estimates still return 200"),
		manualCase("Error: Redis down -> store read", "stop Redis and check regional tariffs still apply"),

		// Performance
		{
			Name:  "Perf: estimate throughput",
			Focus: "sustained fare estimates",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/fares/estimate", map[string]any{
					"pickup":          busStand,
					"destination":     ganpatipule,
					"waiting_minutes": 2,
				})
			},
		},
	}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, _, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return classify(status, time.Since(start), okStatuses, pendingStatuses)
		},
	}
}

// fareCase posts an estimate and checks total_fare. Night-dependent cases
// accept either the day or the night total.
func fareCase(name, base string, body any, ok func(total int64) bool) TestCase {
	return TestCase{
		Name:  name,
		Focus: "fare breakdown",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, raw, err := r.do(ctx, http.MethodPost, base+"/api/fares/estimate", body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			latency := time.Since(start)
			if status != http.StatusOK {
				return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			var b pricing.Breakdown
			if err := json.Unmarshal(raw, &b); err != nil {
				return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
			}
			note := fmt.Sprintf("total=%d night=%t", b.TotalFare, b.NightSurcharge)
			if !ok(b.TotalFare) {
				return Result{Status: StatusFail, Latency: latency, Note: note}
			}
			return Result{Status: StatusPass, Latency: latency, Note: note}
		},
	}
}

func manualCase(name, note string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Manual",
		Run: func(ctx context.Context, r *Runner) Result {
			return Result{Status: StatusSkip, Note: note}
		},
	}
}

// regionalTariff writes a flat tariff through the store, asks the API for a
// preview in that region, and removes the row and any cached copy.
func regionalTariff(ctx context.Context, r *Runner, base string) Result {
	if r.db == nil {
		return Result{Status: StatusSkip, Note: "db not configured"}
	}
	store := pricing.NewStore(r.db)
	var cache *pricing.Cache
	if r.redis != nil {
		cache = pricing.NewCache(r.redis, time.Minute)
	}

	flat := pricing.DefaultConfig()
	flat.BaseFare = 50
	flat.PerKmRate = 0
	flat.WaitingChargePerMin = 0
	flat.NightSurchargeMultiplier = 1
	if err := store.PutTariff(ctx, benchRegion, flat); err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	defer func() {
		_ = store.DeleteTariff(context.WithoutCancel(ctx), benchRegion)
		if cache != nil {
			_ = cache.Invalidate(context.WithoutCancel(ctx), benchRegion)
		}
	}()
	if cache != nil {
		_ = cache.Invalidate(ctx, benchRegion)
	}

	start := time.Now()
	status, raw, err := r.do(ctx, http.MethodGet, base+"/api/fares/preview?distance_km=7&region="+benchRegion, nil)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	latency := time.Since(start)
	if status != http.StatusOK {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
	}
	var out struct {
		Fare int64 `json:"fare"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
	}
	if out.Fare != 50 {
		return Result{Status: StatusPending, Latency: latency, Note: fmt.Sprintf("fare=%d; API may not share this DB", out.Fare)}
	}
	return Result{Status: StatusPass, Latency: latency, Note: "fare=50"}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, err
}

func classify(status int, latency time.Duration, okStatuses, pendingStatuses []int) Result {
	note := fmt.Sprintf("status=%d", status)
	switch {
	case slices.Contains(okStatuses, status):
		return Result{Status: StatusPass, Latency: latency, Note: note}
	case slices.Contains(pendingStatuses, status):
		return Result{Status: StatusPending, Latency: latency, Note: note}
	default:
		return Result{Status: StatusFail, Latency: latency, Note: note}
	}
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	matches := createTableRe.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
