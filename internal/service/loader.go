package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/domain/comms"
	"github.com/target/t1250-loader/internal/domain/mapping"
	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/domain/reconcile"
	"github.com/target/t1250-loader/internal/domain/record"
)

// maxLineBytes bounds a single T1250 line.
const maxLineBytes = 1 << 20

// LoaderServiceOptions groups dependencies for LoaderService.
type LoaderServiceOptions struct {
	Store     core.Store            // Required
	Comms     core.CommsEventWriter // Required
	Callbacks mapping.Registry      // Required
	Clock     core.Clock            // Optional
	Logger    *slog.Logger          // Optional
}

// LoaderService loads T1250 files into the job store.
type LoaderService struct {
	store        core.Store
	comms        core.CommsEventWriter
	clock        core.Clock
	logger       *slog.Logger
	upsert       *UpsertService
	jobRules     mapping.RuleSet
	jobItemRules mapping.RuleSet
}

// NewLoaderService constructs a LoaderService and resolves the named callbacks
// of the Job and JobItem rule sets.
func NewLoaderService(opts LoaderServiceOptions) (*LoaderService, error) {
	if opts.Store == nil {
		panic("NewLoaderService: Store is required")
	}
	if opts.Comms == nil {
		panic("NewLoaderService: Comms is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "loader")
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	jobRules, err := mapping.JobRules().Resolve(opts.Callbacks)
	if err != nil {
		return nil, fmt.Errorf("resolve job rules: %w", err)
	}
	jobItemRules, err := mapping.JobItemRules().Resolve(opts.Callbacks)
	if err != nil {
		return nil, fmt.Errorf("resolve job item rules: %w", err)
	}

	return &LoaderService{
		store:        opts.Store,
		comms:        opts.Comms,
		clock:        clock,
		logger:       logger,
		upsert:       NewUpsertService(UpsertServiceOptions{Logger: logger}),
		jobRules:     jobRules,
		jobItemRules: jobItemRules,
	}, nil
}

// FileRequest describes one file to load.
type FileRequest struct {
	Name         string
	BusinessUnit model.BusinessUnit
	Reader       io.Reader
	DryRun       bool
}

// ProcessFile loads every record of a file inside a single transaction.
//
// Records that fail mapping are reported as alerts and skipped. The
// transaction commits only when the %%EOF terminator was read and the request
// is not a dry run. Comms events are written after the commit. A returned
// error means the whole file was rolled back; the report is still returned.
func (s *LoaderService) ProcessFile(ctx context.Context, req FileRequest) (*model.LoadReport, error) {
	if req.Reader == nil {
		return nil, errors.New("process file: reader is required")
	}
	started := s.clock.Now()
	report := &model.LoadReport{
		LoadID:       uuid.NewString(),
		File:         req.Name,
		BusinessUnit: req.BusinessUnit.Name,
		DryRun:       req.DryRun,
		StartedAt:    started,
	}
	logger := s.logger.With("load_id", report.LoadID, "file", req.Name, "bu", req.BusinessUnit.Token)
	logger.InfoContext(ctx, "loading file", "dry_run", req.DryRun)

	var pending []model.CommsEvent
	err := s.store.WithinTx(ctx, func(repo core.EntityRepository) error {
		events, err := s.processLines(ctx, repo, req, report, logger)
		if err != nil {
			return err
		}
		pending = events
		if req.DryRun {
			return ErrDryRun
		}
		return nil
	})
	report.Duration = s.clock.Now().Sub(started)

	switch {
	case errors.Is(err, ErrDryRun):
		logger.InfoContext(ctx, "dry run rolled back",
			"records", report.Records,
			"skipped", report.Skipped,
			"comms_events", len(pending),
		)
		return report, nil
	case err != nil:
		logger.ErrorContext(ctx, "file rolled back", "error", err)
		return report, fmt.Errorf("load %s: %w", req.Name, err)
	}

	report.Committed = true
	s.flushComms(ctx, pending, report, logger)
	logger.InfoContext(ctx, "file loaded",
		"records", report.Records,
		"processed", report.Processed,
		"skipped", report.Skipped,
		"jobs_created", report.JobsCreated,
		"job_items_created", report.JobItemsCreated,
		"comms_events", len(report.CommsEvents),
		"duration", report.Duration,
	)
	return report, nil
}

func (s *LoaderService) processLines(
	ctx context.Context,
	repo core.EntityRepository,
	req FileRequest,
	report *model.LoadReport,
	logger *slog.Logger,
) ([]model.CommsEvent, error) {
	scanner := bufio.NewScanner(req.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var events []model.CommsEvent
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if record.IsEOF(line) {
			return events, nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Records++

		res, err := s.ProcessRecord(ctx, repo, RecordRequest{Line: line, LineNo: lineNo, BusinessUnit: req.BusinessUnit})
		if me, ok := mapping.AsMappingError(err); ok {
			alert := model.RecordAlert{
				Line:    lineNo,
				Field:   me.Field,
				Connote: res.Connote,
				Barcode: res.Barcode,
				Message: me.Error(),
			}
			report.AddAlert(alert)
			logger.WarnContext(ctx, "record skipped",
				"line", lineNo,
				"field", me.Field,
				"connote", res.Connote,
				"barcode", res.Barcode,
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		report.Processed++
		if res.JobCreated {
			report.JobsCreated++
		}
		if res.JobItemCreated {
			report.JobItemsCreated++
		}
		events = append(events, res.Events...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, ErrMissingEOF
}

func (s *LoaderService) flushComms(ctx context.Context, events []model.CommsEvent, report *model.LoadReport, logger *slog.Logger) {
	for _, ev := range events {
		if err := s.comms.Write(ctx, ev); err != nil {
			logger.ErrorContext(ctx, "comms event not written", "event", ev.Name(), "error", err)
			report.Alerts = append(report.Alerts, model.RecordAlert{
				Message: fmt.Sprintf("comms event %s not written: %v", ev.Name(), err),
			})
			continue
		}
		report.CommsEvents = append(report.CommsEvents, ev)
	}
}

// RecordRequest is one line of a file.
type RecordRequest struct {
	Line         string
	LineNo       int
	BusinessUnit model.BusinessUnit
}

// RecordResult is the outcome of one record. Connote and Barcode are set even
// when processing fails.
type RecordResult struct {
	UpsertResult
	Connote string
	Barcode string
	Events  []model.CommsEvent
}

// ProcessRecord runs one line through parsing, mapping, reconciliation, upsert
// and the comms decision. Mapping failures are returned as *mapping.MappingError
// before anything is written.
func (s *LoaderService) ProcessRecord(ctx context.Context, repo core.EntityRepository, req RecordRequest) (RecordResult, error) {
	fields := record.Parse(req.Line, record.T1250Layout)
	out := RecordResult{Connote: fields[record.FieldConnote], Barcode: fields[record.FieldBarcode]}
	s.logger.DebugContext(ctx, "record parsed",
		"line", req.LineNo,
		"identifier", fields[record.FieldIdentifier],
		"connote", out.Connote,
		"barcode", out.Barcode,
	)

	cond := req.BusinessUnit.Conditions
	raw := mapping.FromFields(fields).With(mapping.FieldBusinessUnit, req.BusinessUnit.ID)

	jobCols, err := mapping.MapFields(ctx, raw, s.jobRules, cond)
	if err != nil {
		return out, err
	}
	itemCols, err := mapping.MapFields(ctx, raw, s.jobItemRules, cond)
	if err != nil {
		return out, err
	}

	rec, err := reconcile.New(repo).Reconcile(ctx, out.Connote, out.Barcode, itemCols.String("item_nbr"))
	if err != nil {
		return out, persistenceErr("reconcile", err)
	}

	res, err := s.upsert.Upsert(ctx, repo, UpsertRequest{Job: jobCols, JobItem: itemCols, Reconciliation: rec})
	if err != nil {
		return out, err
	}
	out.UpsertResult = res

	out.Events = comms.Decide(res.JobItemID, jobCols.IntPtr("service_code"), cond, comms.Recipients{
		Email:  itemCols.String("email_addr"),
		Mobile: itemCols.String("phone_nbr"),
	})
	return out, nil
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
