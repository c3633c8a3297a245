package observability

import (
	"testing"

	"github.com/riskibarqy/recliiga/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog(logging.LevelDebug, logging.LevelInfo, "remote roster applied", nil) {
		t.Fatalf("expected debug log under min level to be skipped")
	}
	if !shouldSkipUptraceLog(logging.LevelInfo, logging.LevelInfo, "http request", []any{"path", "/v1/leagues", "status", 200}) {
		t.Fatalf("expected successful request log to be skipped")
	}
	if shouldSkipUptraceLog(logging.LevelInfo, logging.LevelInfo, "http request", []any{"path", "/v1/leagues", "status", 409}) {
		t.Fatalf("did not expect failed request log to be skipped")
	}
	if shouldSkipUptraceLog(logging.LevelWarn, logging.LevelInfo, "publish draft pick failed", []any{"status", 200}) {
		t.Fatalf("did not expect non-request log to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"league_id", "lg-sunday-5s", "attempt", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "league_id" || attrs[0].Value.AsString() != "lg-sunday-5s" {
		t.Fatalf("unexpected league_id attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"team_a_score": 3,
		"captain_win":  true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}
