package notify

import (
	"context"
	"fmt"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// RecordAlert is one skipped record inside a load alert.
type RecordAlert struct {
	Line    int
	Field   string
	Connote string
	Barcode string
	Message string
}

// LoadAlertPayload captures the canonical data we emit for file load alerts.
// Error is empty when the file committed but some records were skipped.
type LoadAlertPayload struct {
	LoadID       string
	File         string
	BusinessUnit string
	Records      int
	Skipped      int
	DryRun       bool
	Alerts       []RecordAlert
	Error        string
	ErrorClass   string
	Severity     string
	OccurredAt   time.Time
	Metadata     map[string]string
}

// Failed reports whether the whole file was rolled back.
func (p LoadAlertPayload) Failed() bool {
	return p.Error != ""
}

// Summary is a one-line description of the outcome.
func (p LoadAlertPayload) Summary() string {
	file := p.File
	if file == "" {
		file = "unknown file"
	}
	switch {
	case p.Failed():
		return fmt.Sprintf("T1250 load of %s failed", file)
	case p.Skipped > 0:
		return fmt.Sprintf("T1250 load of %s skipped %d record(s)", file, p.Skipped)
	default:
		return fmt.Sprintf("T1250 load of %s loaded %d record(s)", file, p.Records)
	}
}

// Sink describes a destination capable of consuming load alerts.
type Sink interface {
	SendLoadAlert(ctx context.Context, payload LoadAlertPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload LoadAlertPayload) error

// SendLoadAlert implements the Sink interface.
func (f SinkFunc) SendLoadAlert(ctx context.Context, payload LoadAlertPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
