package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/domain/model"
)

// UpsertServiceOptions groups dependencies for UpsertService.
type UpsertServiceOptions struct {
	Logger *slog.Logger // Optional
}

// UpsertService creates or updates the job and job item of one record.
type UpsertService struct {
	logger *slog.Logger
}

// NewUpsertService constructs a new UpsertService.
func NewUpsertService(opts UpsertServiceOptions) *UpsertService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "upsert")
	}
	return &UpsertService{logger: logger}
}

// UpsertRequest carries the mapped columns of one record and its reconciliation.
type UpsertRequest struct {
	Job            model.Columns
	JobItem        model.Columns
	Reconciliation model.ReconciliationResult
}

// UpsertResult reports the entities a record resolved to.
type UpsertResult struct {
	JobID          int64
	JobItemID      int64
	JobCreated     bool
	JobItemCreated bool
}

// Upsert applies one record to the store.
//
// Without a reconciled job a new job and job item are inserted. With one, only
// the job's agent is updated; the job item is then reused when the
// reconciliation already identified it, otherwise it is looked up by connote
// and item number and inserted only when none exists. Store errors are returned
// as *PersistenceError and are never retried.
func (s *UpsertService) Upsert(ctx context.Context, repo core.EntityRepository, req UpsertRequest) (UpsertResult, error) {
	if repo == nil {
		return UpsertResult{}, errors.New("upsert: entity repository is required")
	}
	if req.Reconciliation.IsNew() {
		return s.insertNew(ctx, repo, req)
	}

	jobID := *req.Reconciliation.JobID
	agentID, err := req.Job.Int64("agent_id")
	if err != nil {
		return UpsertResult{}, fmt.Errorf("upsert: %w", err)
	}
	if err := repo.UpdateJobAgent(ctx, jobID, agentID); err != nil {
		return UpsertResult{}, persistenceErr("update job agent", err)
	}

	if req.Reconciliation.SkipItemCheck {
		if req.Reconciliation.JobItemID == nil {
			return UpsertResult{}, errors.New("upsert: skip item check without a job item id")
		}
		return UpsertResult{JobID: jobID, JobItemID: *req.Reconciliation.JobItemID}, nil
	}

	connote, itemNbr := req.JobItem.String("connote_nbr"), req.JobItem.String("item_nbr")
	items, err := repo.FindJobItemsByConnoteItem(ctx, connote, itemNbr)
	if err != nil {
		return UpsertResult{}, persistenceErr("find job items", err)
	}
	if len(items) > 0 {
		s.logger.DebugContext(ctx, "job item already loaded",
			"job_id", jobID,
			"job_item_id", items[0].ID,
			"connote", connote,
		)
		return UpsertResult{JobID: jobID, JobItemID: items[0].ID}, nil
	}

	itemID, err := repo.InsertJobItem(ctx, req.JobItem.With("job_id", jobID))
	if err != nil {
		return UpsertResult{}, persistenceErr("insert job item", err)
	}
	return UpsertResult{JobID: jobID, JobItemID: itemID, JobItemCreated: true}, nil
}

func (s *UpsertService) insertNew(ctx context.Context, repo core.EntityRepository, req UpsertRequest) (UpsertResult, error) {
	jobID, err := repo.InsertJob(ctx, req.Job)
	if err != nil {
		return UpsertResult{}, persistenceErr("insert job", err)
	}
	itemID, err := repo.InsertJobItem(ctx, req.JobItem.With("job_id", jobID))
	if err != nil {
		return UpsertResult{}, persistenceErr("insert job item", err)
	}
	return UpsertResult{JobID: jobID, JobItemID: itemID, JobCreated: true, JobItemCreated: true}, nil
}
