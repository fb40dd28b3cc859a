// Package pagerduty raises load alerts through the PagerDuty Events API v2.
package pagerduty

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/target/t1250-loader/internal/observability/notify"
)

// APIEndpoint is the PagerDuty Events API v2 ingest URL.
const APIEndpoint = "https://events.pagerduty.com/v2/enqueue"

// Config captures runtime configuration for the PagerDuty sink.
type Config struct {
	RoutingKey string
	Source     string
	Component  string
	Endpoint   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Client publishes events via PagerDuty's Events API v2.
type Client struct {
	routingKey string
	source     string
	component  string
	endpoint   string
	poster     notify.Poster
}

// NewClient constructs a PagerDuty events client. A routing key is required.
func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.RoutingKey)
	if key == "" {
		return nil, errors.New("pagerduty routing key is required")
	}
	return &Client{
		routingKey: key,
		source:     orDefault(cfg.Source, "t1250-loader"),
		component:  orDefault(cfg.Component, "loader"),
		endpoint:   orDefault(cfg.Endpoint, APIEndpoint),
		poster:     notify.NewPoster("pagerduty", cfg.Client, cfg.Timeout, cfg.RetryLimit),
	}, nil
}

type event struct {
	RoutingKey  string       `json:"routing_key"`
	EventAction string       `json:"event_action"`
	DedupKey    string       `json:"dedup_key,omitempty"`
	Payload     eventPayload `json:"payload"`
}

type eventPayload struct {
	Summary       string        `json:"summary"`
	Severity      string        `json:"severity"`
	Source        string        `json:"source"`
	Component     string        `json:"component"`
	Timestamp     string        `json:"timestamp"`
	CustomDetails customDetails `json:"custom_details"`
}

type customDetails struct {
	LoadID       string            `json:"load_id,omitempty"`
	File         string            `json:"file,omitempty"`
	BusinessUnit string            `json:"business_unit,omitempty"`
	Records      int               `json:"records"`
	Skipped      int               `json:"skipped"`
	DryRun       bool              `json:"dry_run"`
	Error        string            `json:"error,omitempty"`
	ErrorClass   string            `json:"error_class,omitempty"`
	Alerts       []string          `json:"alerts,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// SendLoadAlert submits a trigger event to PagerDuty.
func (c *Client) SendLoadAlert(ctx context.Context, payload notify.LoadAlertPayload) error {
	return c.poster.PostJSON(ctx, c.endpoint, c.buildEvent(payload))
}

func (c *Client) buildEvent(payload notify.LoadAlertPayload) event {
	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	details := customDetails{
		LoadID:       payload.LoadID,
		File:         payload.File,
		BusinessUnit: payload.BusinessUnit,
		Records:      payload.Records,
		Skipped:      payload.Skipped,
		DryRun:       payload.DryRun,
		Error:        payload.Error,
		ErrorClass:   payload.ErrorClass,
		Metadata:     payload.Metadata,
	}
	for _, a := range payload.Alerts {
		details.Alerts = append(details.Alerts, fmt.Sprintf("line %d: %s", a.Line, a.Message))
	}

	ev := event{
		RoutingKey:  c.routingKey,
		EventAction: "trigger",
		Payload: eventPayload{
			Summary:       payload.Summary(),
			Severity:      orDefault(strings.ToLower(payload.Severity), notify.SeverityCritical),
			Source:        c.source,
			Component:     c.component,
			Timestamp:     occurredAt.UTC().Format(time.RFC3339),
			CustomDetails: details,
		},
	}
	if payload.LoadID != "" {
		ev.DedupKey = "t1250:" + payload.LoadID
	}
	return ev
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}
