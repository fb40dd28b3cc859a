// Package loadrunner drives the loader over a list of T1250 files, one file
// at a time, reporting each outcome to metrics and operator alerts.
package loadrunner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/target/t1250-loader/internal/adapters/t1250file"
	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/observability/metrics"
	"github.com/target/t1250-loader/internal/observability/statsd"
	"github.com/target/t1250-loader/internal/service"
)

// ErrUnknownBusinessUnit is returned when a file name carries a token with no
// configured business unit.
var ErrUnknownBusinessUnit = errors.New("unknown business unit")

// FileLoader loads one file. *service.LoaderService implements it.
type FileLoader interface {
	ProcessFile(ctx context.Context, req service.FileRequest) (*model.LoadReport, error)
}

// BusinessUnitResolver finds a business unit by file name token.
type BusinessUnitResolver interface {
	ByToken(token string) (model.BusinessUnit, bool)
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Loader        FileLoader              // Required
	BusinessUnits BusinessUnitResolver    // Required
	Notifier      core.LoadReportNotifier // Optional
	Metrics       statsd.Sink             // Optional
	Encoding      t1250file.Encoding      // Optional, default latin1
	Logger        *slog.Logger            // Optional
}

// Runner loads files sequentially.
type Runner struct {
	loader   FileLoader
	units    BusinessUnitResolver
	notifier core.LoadReportNotifier
	metrics  statsd.Sink
	encoding t1250file.Encoding
	logger   *slog.Logger
}

// NewRunner creates a new Runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Loader == nil {
		return nil, errors.New("loader is required")
	}
	if opts.BusinessUnits == nil {
		return nil, errors.New("business units are required")
	}
	enc := opts.Encoding
	if enc == "" {
		enc = t1250file.EncodingLatin1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "load_runner")
	}
	return &Runner{
		loader:   opts.Loader,
		units:    opts.BusinessUnits,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		encoding: enc,
		logger:   logger,
	}, nil
}

// FileOutcome is the result of loading one file. Report is nil when the file
// could not be opened or matched to a business unit.
type FileOutcome struct {
	Path   string
	Report *model.LoadReport
	Err    error
}

// Summary collects the outcomes of a run.
type Summary struct {
	Outcomes []FileOutcome
	// Pending lists files not attempted because the context was canceled.
	Pending []string
}

// Failed returns the number of files that did not load.
func (s Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Run loads each path in order. Cancellation is honored between files; a file
// already in progress runs to its own commit or rollback. The returned error
// is non-nil when any file failed or files were left pending.
func (r *Runner) Run(ctx context.Context, paths []string, dryRun bool) (Summary, error) {
	var sum Summary
	for i, path := range paths {
		if ctx.Err() != nil {
			sum.Pending = append(sum.Pending, paths[i:]...)
			r.logger.WarnContext(ctx, "run interrupted", "pending_files", len(sum.Pending))
			break
		}
		sum.Outcomes = append(sum.Outcomes, r.LoadFile(context.WithoutCancel(ctx), path, dryRun))
	}

	var errs []error
	for _, o := range sum.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(o.Path), o.Err))
		}
	}
	if len(sum.Pending) > 0 {
		errs = append(errs, fmt.Errorf("%d file(s) not loaded: %w", len(sum.Pending), ctx.Err()))
	}
	return sum, errors.Join(errs...)
}

// LoadFile loads a single file and reports its outcome.
func (r *Runner) LoadFile(ctx context.Context, path string, dryRun bool) FileOutcome {
	out := FileOutcome{Path: path}
	out.Report, out.Err = r.load(ctx, path, dryRun)

	report := out.Report
	if report == nil {
		report = &model.LoadReport{File: filepath.Base(path), DryRun: dryRun}
	}
	metrics.EmitFileLoad(r.metrics, report, out.Err)
	if r.notifier != nil {
		if err := r.notifier.NotifyLoad(ctx, report, out.Err); err != nil {
			r.logger.WarnContext(ctx, "load alert not delivered", "file", report.File, "error", err)
		}
	}
	return out
}

func (r *Runner) load(ctx context.Context, path string, dryRun bool) (*model.LoadReport, error) {
	f, err := t1250file.Open(path, r.encoding)
	if err != nil {
		r.logger.ErrorContext(ctx, "file not opened", "path", path, "error", err)
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.WarnContext(ctx, "close file failed", "path", path, "error", cerr)
		}
	}()

	bu, ok := r.units.ByToken(f.Name.Token)
	if !ok {
		err := fmt.Errorf("%w %q", ErrUnknownBusinessUnit, f.Name.Token)
		r.logger.ErrorContext(ctx, "file not loaded", "path", path, "error", err)
		return nil, err
	}

	return r.loader.ProcessFile(ctx, service.FileRequest{
		Name:         filepath.Base(path),
		BusinessUnit: bu,
		Reader:       f,
		DryRun:       dryRun,
	})
}
