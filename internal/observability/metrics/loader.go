// Package metrics emits the loader's standard statsd metrics.
package metrics

import (
	"strconv"

	"github.com/target/t1250-loader/internal/domain/model"
	obserrors "github.com/target/t1250-loader/internal/observability/errors"
	"github.com/target/t1250-loader/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultCommitted  = "committed"
	ResultDryRun     = "dry_run"
	ResultRolledBack = "rolled_back"
)

// Result returns the outcome tag for a file load.
func Result(report *model.LoadReport, err error) string {
	switch {
	case err != nil:
		return ResultRolledBack
	case report != nil && report.DryRun:
		return ResultDryRun
	case report != nil && report.Committed:
		return ResultCommitted
	default:
		return ResultRolledBack
	}
}

// EmitFileLoad emits the per-file counters and the load duration.
func EmitFileLoad(sink statsd.Sink, report *model.LoadReport, err error) {
	if sink == nil || report == nil {
		return
	}

	tags := map[string]string{
		"bu":      report.BusinessUnit,
		"result":  Result(report, err),
		"dry_run": strconv.FormatBool(report.DryRun),
	}
	if err != nil {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("load.files", 1, tags)
	sink.Count("load.records", int64(report.Records), CloneTags(tags))
	sink.Count("load.records_skipped", int64(report.Skipped), CloneTags(tags))
	sink.Count("load.jobs_created", int64(report.JobsCreated), CloneTags(tags))
	sink.Count("load.job_items_created", int64(report.JobItemsCreated), CloneTags(tags))
	sink.Count("load.comms_events", int64(len(report.CommsEvents)), CloneTags(tags))

	if report.Duration > 0 {
		sink.Timing("load.duration", report.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
