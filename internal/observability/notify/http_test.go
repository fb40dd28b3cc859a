package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPosterRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := NewPoster("test", nil, time.Second, 2)
	p.Backoff = time.Millisecond
	if err := p.PostJSON(context.Background(), srv.URL, map[string]string{"k": "v"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestPosterStopsOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(" invalid routing key \n"))
	}))
	defer srv.Close()

	p := NewPoster("test", nil, time.Second, 3)
	p.Backoff = time.Millisecond
	err := p.PostJSON(context.Background(), srv.URL, struct{}{})

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusBadRequest || se.Body != "invalid routing key" || se.Retryable() {
		t.Fatalf("unexpected status error %+v", se)
	}
	if calls.Load() != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", calls.Load())
	}
}

func TestPosterHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoster("test", nil, time.Second, 5)
	p.Backoff = time.Hour
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := p.PostJSON(ctx, srv.URL, struct{}{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	cases := map[string]LoadAlertPayload{
		"T1250 load of a.txt failed":                    {File: "a.txt", Error: "boom", Skipped: 2},
		"T1250 load of a.txt skipped 2 record(s)":       {File: "a.txt", Skipped: 2},
		"T1250 load of unknown file loaded 5 record(s)": {Records: 5},
	}
	for want, p := range cases {
		if got := p.Summary(); got != want {
			t.Errorf("Summary() = %q, want %q", got, want)
		}
	}
}
