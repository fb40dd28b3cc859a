// Package alertnotifier fans file load outcomes out to operator notification sinks.
package alertnotifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/t1250-loader/internal/domain/model"
	obserrors "github.com/target/t1250-loader/internal/observability/errors"
	"github.com/target/t1250-loader/internal/observability/notify"
)

// Policy selects which load outcomes are reported.
type Policy int

const (
	// NotifyAlerts reports rolled back files and files with skipped records.
	NotifyAlerts Policy = iota
	// NotifyFailures reports rolled back files only.
	NotifyFailures
	// NotifyAlways reports every file.
	NotifyAlways
)

// ParsePolicy maps a configuration value to a Policy. Unknown values select NotifyAlerts.
func ParsePolicy(v string) Policy {
	switch v {
	case "failures":
		return NotifyFailures
	case "always":
		return NotifyAlways
	default:
		return NotifyAlerts
	}
}

func (p Policy) wants(report *model.LoadReport, loadErr error) bool {
	switch {
	case loadErr != nil || p == NotifyAlways:
		return true
	case p == NotifyFailures:
		return false
	default:
		return report != nil && report.HasAlerts()
	}
}

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the alert notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	Policy Policy
	// Metadata is attached to every payload (host, environment).
	Metadata map[string]string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service dispatches load alerts to all registered sinks.
type Service struct {
	logger   *slog.Logger
	sinks    []SinkRegistration
	metadata map[string]string
	now      func() time.Time
	policy   Policy
}

// NewService constructs an alert notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "alert_notifier")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{Name: name, Sink: entry.Sink})
	}

	return &Service{
		logger:   logger,
		sinks:    sinks,
		metadata: opts.Metadata,
		now:      now,
		policy:   opts.Policy,
	}
}

// NotifyLoad sends a payload when the outcome matches the policy. Every sink
// is attempted and the returned error joins the delivery failures.
func (s *Service) NotifyLoad(ctx context.Context, report *model.LoadReport, loadErr error) error {
	if len(s.sinks) == 0 {
		return nil
	}
	if !s.policy.wants(report, loadErr) {
		return nil
	}

	payload := s.buildPayload(report, loadErr)

	errs := make([]error, len(s.sinks))
	var g errgroup.Group
	for i, entry := range s.sinks {
		g.Go(func() error {
			if err := entry.Sink.SendLoadAlert(ctx, payload); err != nil {
				s.logger.ErrorContext(ctx, "alert notifier delivery error",
					"sink", entry.Name,
					"load_id", payload.LoadID,
					"file", payload.File,
					"error", err,
				)
				errs[i] = fmt.Errorf("%s: %w", entry.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func (s *Service) buildPayload(report *model.LoadReport, loadErr error) notify.LoadAlertPayload {
	severity := notify.SeverityInfo
	if report != nil && report.HasAlerts() {
		severity = notify.SeverityWarning
	}
	payload := notify.LoadAlertPayload{
		Severity:   severity,
		OccurredAt: s.now(),
		Metadata:   s.metadata,
	}
	if report != nil {
		payload.LoadID = report.LoadID
		payload.File = report.File
		payload.BusinessUnit = report.BusinessUnit
		payload.Records = report.Records
		payload.Skipped = report.Skipped
		payload.DryRun = report.DryRun
		for _, a := range report.Alerts {
			payload.Alerts = append(payload.Alerts, notify.RecordAlert{
				Line:    a.Line,
				Field:   a.Field,
				Connote: a.Connote,
				Barcode: a.Barcode,
				Message: a.Message,
			})
		}
	}
	if loadErr != nil {
		payload.Severity = notify.SeverityCritical
		payload.Error = loadErr.Error()
		payload.ErrorClass = obserrors.Classify(loadErr)
	}
	return payload
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return len(s.sinks) > 0
}
