package core

import (
	"context"
	"time"

	"github.com/target/t1250-loader/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// The service layer depends on these interfaces; internal/data provides the implementations.

// EntityRepository reads and writes jobs and job items. Implementations are
// bound to the transaction of the file being loaded.
type EntityRepository interface {
	// FindJobsByBarcode returns the jobs whose card_ref_nbr equals barcode, oldest first.
	FindJobsByBarcode(ctx context.Context, barcode string) ([]model.Job, error)
	// FindJobItemsByConnoteItem returns matching job items, most recently created first.
	FindJobItemsByConnoteItem(ctx context.Context, connote, itemNbr string) ([]model.JobItem, error)
	// InsertJob inserts a job from mapped columns and returns its id.
	InsertJob(ctx context.Context, cols model.Columns) (int64, error)
	// InsertJobItem inserts a job item from mapped columns (job_id included) and returns its id.
	InsertJobItem(ctx context.Context, cols model.Columns) (int64, error)
	// UpdateJobAgent changes the agent holding a job.
	UpdateJobAgent(ctx context.Context, jobID, agentID int64) error
}

// AgentRepository defines the interface for delivery agent data operations.
type AgentRepository interface {
	// GetByCode returns model.ErrAgentNotFound when no agent has the code.
	GetByCode(ctx context.Context, code string) (*model.Agent, error)
	Create(ctx context.Context, req model.CreateAgentRequest) (*model.Agent, error)
}

// Store runs work inside a transaction. The EntityRepository handed to fn is
// bound to that transaction, which commits when fn returns nil and rolls back
// otherwise.
type Store interface {
	WithinTx(ctx context.Context, fn func(entities EntityRepository) error) error
}

// CommsEventWriter publishes comms events for the external comms daemon.
type CommsEventWriter interface {
	Write(ctx context.Context, ev model.CommsEvent) error
}

// LoadReportNotifier delivers the outcome of a file load to operators.
// loadErr is nil unless the file failed as a whole.
type LoadReportNotifier interface {
	NotifyLoad(ctx context.Context, report *model.LoadReport, loadErr error) error
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}
