package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/recliiga/internal/config"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "recliiga-api",
		InstanceID:         "instance-test",
		HTTPAddr:           ":0",
		Storage:            config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		IdentityBaseURL:    "http://127.0.0.1:1",
		IdentityTimeout:    time.Second,
		SessionTTL:         time.Minute,
		SessionMaxEntries:  10,
		ReminderCron:       "*/15 * * * *",
		ReminderLead:       24 * time.Hour,
		ReminderMaxWorkers: 2,
	}
}

func TestNew_MemoryStorageServesHealthz(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if a.Scheduler != nil {
		t.Fatalf("scheduler should stay nil when disabled")
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a bearer token, got %d", rec.Code)
	}
}

func TestNew_RegistersReminderJob(t *testing.T) {
	cfg := memoryConfig()
	cfg.SchedulerEnabled = true

	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if a.Scheduler == nil {
		t.Fatalf("expected scheduler when enabled")
	}
}

func TestNew_RejectsBadCron(t *testing.T) {
	cfg := memoryConfig()
	cfg.SchedulerEnabled = true
	cfg.ReminderCron = "every monday"

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
}

func TestNew_RequiresHTTPAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace("  SELECT id\n\tFROM events\n WHERE league_id = $1 ")
	if got != "SELECT id FROM events WHERE league_id = $1" {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}

func TestLeaderboardCache_FollowsCacheEnabled(t *testing.T) {
	cfg := memoryConfig()
	if leaderboardCache(cfg) == nil {
		t.Fatalf("expected a leaderboard cache when caching is enabled")
	}

	cfg.CacheEnabled = false
	if store := leaderboardCache(cfg); store != nil {
		t.Fatalf("expected no leaderboard cache when caching is disabled")
	}
}
