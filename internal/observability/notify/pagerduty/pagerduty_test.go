package pagerduty

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/target/t1250-loader/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{RoutingKey: "  "}); err == nil {
		t.Fatal("expected error when routing key missing")
	}
}

func TestBuildEventDefaults(t *testing.T) {
	client, err := NewClient(Config{RoutingKey: "key", Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := client.buildEvent(notify.LoadAlertPayload{
		LoadID:     "123",
		File:       "T1250_TOLP_20131021141503.txt",
		Error:      "boom",
		ErrorClass: "missing_eof",
		Alerts:     []notify.RecordAlert{{Line: 2, Message: "bad"}},
		Metadata:   map[string]string{"host": "loader-1"},
		OccurredAt: time.Date(2013, 10, 21, 14, 15, 3, 0, time.FixedZone("AEDT", 11*3600)),
	})

	p := ev.Payload
	if p.Severity != notify.SeverityCritical {
		t.Fatalf("expected default severity, got %v", p.Severity)
	}
	if p.Source != "t1250-loader" || p.Component != "loader" {
		t.Fatalf("unexpected defaults source=%q component=%q", p.Source, p.Component)
	}
	if p.Summary != "T1250 load of T1250_TOLP_20131021141503.txt failed" {
		t.Fatalf("unexpected summary %q", p.Summary)
	}
	if p.Timestamp != "2013-10-21T03:15:03Z" {
		t.Fatalf("timestamp must be UTC, got %q", p.Timestamp)
	}
	d := p.CustomDetails
	if d.ErrorClass != "missing_eof" || d.Metadata["host"] != "loader-1" {
		t.Fatalf("unexpected custom details %+v", d)
	}
	if len(d.Alerts) != 1 || d.Alerts[0] != "line 2: bad" {
		t.Fatalf("unexpected alerts %v", d.Alerts)
	}
	if ev.DedupKey != "t1250:123" {
		t.Fatalf("expected dedup key to reference load id, got %s", ev.DedupKey)
	}
}

func TestBuildEventSkippedSummary(t *testing.T) {
	client, err := NewClient(Config{RoutingKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev := client.buildEvent(notify.LoadAlertPayload{File: "f.txt", Skipped: 3, Severity: "WARNING"})
	if ev.Payload.Summary != "T1250 load of f.txt skipped 3 record(s)" {
		t.Fatalf("unexpected summary %v", ev.Payload.Summary)
	}
	if ev.Payload.Severity != notify.SeverityWarning {
		t.Fatalf("expected lowercased severity, got %v", ev.Payload.Severity)
	}
	if ev.DedupKey != "" {
		t.Fatalf("expected no dedup key without load id, got %q", ev.DedupKey)
	}
}

func TestSendLoadAlertPostsEvent(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client, err := NewClient(Config{RoutingKey: "key", Endpoint: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.SendLoadAlert(context.Background(), notify.LoadAlertPayload{LoadID: "9"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["routing_key"] != "key" || got["event_action"] != "trigger" || got["dedup_key"] != "t1250:9" {
		t.Fatalf("unexpected event %v", got)
	}
}
