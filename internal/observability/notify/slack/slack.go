package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/target/t1250-loader/internal/observability/notify"
)

// maxAlertLines caps the skipped records listed in one message.
const maxAlertLines = 10

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL string
	Channel    string
	Username   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Client delivers load alerts to a Slack webhook.
type Client struct {
	webhookURL string
	channel    string
	username   string
	poster     notify.Poster
}

// NewClient builds a Slack webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	return &Client{
		webhookURL: webhookURL,
		channel:    strings.TrimSpace(cfg.Channel),
		username:   fallbackString(strings.TrimSpace(cfg.Username), "t1250-loader"),
		poster:     notify.NewPoster("slack", cfg.Client, cfg.Timeout, cfg.RetryLimit),
	}, nil
}

// SendLoadAlert posts a formatted message to Slack.
func (c *Client) SendLoadAlert(ctx context.Context, payload notify.LoadAlertPayload) error {
	return c.poster.PostJSON(ctx, c.webhookURL, c.formatMessage(payload))
}

type message struct {
	Text     string `json:"text"`
	Username string `json:"username"`
	Channel  string `json:"channel,omitempty"`
}

func (c *Client) formatMessage(payload notify.LoadAlertPayload) message {
	timestamp := payload.OccurredAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	text := strings.Builder{}
	writeSlackHeader(&text, payload)
	appendSlackDetails(&text, payload)
	appendSlackAlerts(&text, payload.Alerts)
	appendSlackMetadata(&text, payload.Metadata)
	writeSlackTimestamp(&text, timestamp)

	return message{Text: text.String(), Username: c.username, Channel: c.channel}
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func writeSlackHeader(text *strings.Builder, payload notify.LoadAlertPayload) {
	switch {
	case payload.Failed():
		text.WriteString("*T1250 load failed*")
	case payload.Skipped > 0 || len(payload.Alerts) > 0:
		text.WriteString("*T1250 records skipped*")
	default:
		text.WriteString("*T1250 file loaded*")
	}
	if payload.File != "" {
		text.WriteString(" `")
		text.WriteString(escapeSlackText(payload.File))
		text.WriteByte('`')
	}
	if payload.DryRun {
		text.WriteString(" (dry run)")
	}
	text.WriteByte('\n')
}

func appendSlackDetails(text *strings.Builder, payload notify.LoadAlertPayload) {
	fields := []struct {
		label string
		value string
	}{
		{"Severity", fallbackString(payload.Severity, notify.SeverityCritical)},
		{"Business unit", escapeSlackText(payload.BusinessUnit)},
		{"Load ID", payload.LoadID},
		{"Records", strconv.Itoa(payload.Records)},
		{"Skipped", strconv.Itoa(payload.Skipped)},
		{"Error class", payload.ErrorClass},
		{"Error", escapeSlackText(payload.Error)},
	}

	for _, field := range fields {
		appendSlackField(text, field.label, field.value)
	}
}

func appendSlackAlerts(text *strings.Builder, alerts []notify.RecordAlert) {
	if len(alerts) == 0 {
		return
	}
	text.WriteString("• Skipped records:\n")
	for i, a := range alerts {
		if i == maxAlertLines {
			fmt.Fprintf(text, "    • … and %d more\n", len(alerts)-maxAlertLines)
			break
		}
		text.WriteString("    • ")
		if a.Line > 0 {
			fmt.Fprintf(text, "line %d ", a.Line)
		}
		if a.Connote != "" {
			text.WriteString("connote ")
			text.WriteString(escapeSlackText(a.Connote))
			text.WriteByte(' ')
		}
		text.WriteString(escapeSlackText(a.Message))
		text.WriteByte('\n')
	}
}

func escapeSlackText(value string) string {
	if value == "" {
		return ""
	}
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(value)
}

func appendSlackField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	text.WriteString("• ")
	text.WriteString(label)
	text.WriteString(": ")
	text.WriteString(value)
	text.WriteByte('\n')
}

func appendSlackMetadata(text *strings.Builder, metadata map[string]string) {
	if len(metadata) == 0 {
		return
	}
	text.WriteString("• Metadata:\n")
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		text.WriteString("    • ")
		text.WriteString(k)
		text.WriteString(": ")
		text.WriteString(metadata[k])
		text.WriteByte('\n')
	}
}

func writeSlackTimestamp(text *strings.Builder, timestamp time.Time) {
	text.WriteString("• Timestamp: ")
	text.WriteString(timestamp.UTC().Format(time.RFC3339))
}
