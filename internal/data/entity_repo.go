package data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/data/database"
	"github.com/target/t1250-loader/internal/data/pgxutil"
	"github.com/target/t1250-loader/internal/domain/model"
	apperrors "github.com/target/t1250-loader/internal/errors"
)

const (
	jobsTable     = "jobs"
	jobItemsTable = "job_items"
)

// Columns the loader may write. Mapped columns outside these lists are dropped
// before any SQL is built.
var (
	jobInsertColumns = []string{
		"agent_id", "bu_id", "card_ref_nbr", "service_code", "state", "postcode",
		"address_1", "address_2", "suburb", "status", "job_ts",
	}
	jobItemInsertColumns = []string{
		"job_id", "connote_nbr", "item_nbr", "consumer_name", "email_addr",
		"phone_nbr", "pieces", "status", "created_ts",
	}

	jobSelectColumns     = append([]string{"id"}, jobInsertColumns...)
	jobItemSelectColumns = append([]string{"id"}, append(jobItemInsertColumns, "pickup_ts", "notify_ts")...)
)

// EntityRepo reads and writes jobs and job items through a single pgx
// connection or transaction.
type EntityRepo struct {
	q pgxutil.Querier
}

var _ core.EntityRepository = (*EntityRepo)(nil)

// NewEntityRepo creates an EntityRepo bound to q, usually a pgx.Tx.
func NewEntityRepo(q pgxutil.Querier) *EntityRepo {
	return &EntityRepo{q: q}
}

// FindJobsByBarcode returns jobs with card_ref_nbr = barcode, lowest id first.
func (r *EntityRepo) FindJobsByBarcode(ctx context.Context, barcode string) ([]model.Job, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions(jobsTable,
		database.WithColumns(jobSelectColumns...),
		database.WithCondition(database.WhereCond("card_ref_nbr", database.Equal, barcode)),
		database.WithOrderBy("id", "ASC"),
	))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find jobs by barcode: %w", apperrors.MapDBError(err))
	}
	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", apperrors.MapDBError(err))
	}
	return jobs, nil
}

// FindJobItemsByConnoteItem returns the job items for a connote and item
// number, most recently created first.
func (r *EntityRepo) FindJobItemsByConnoteItem(ctx context.Context, connote, itemNbr string) ([]model.JobItem, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions(jobItemsTable,
		database.WithColumns(jobItemSelectColumns...),
		database.WithCondition(database.WhereCond("connote_nbr", database.Equal, connote)),
		database.WithCondition(database.WhereCond("item_nbr", database.Equal, itemNbr)),
		database.WithOrderBy("created_ts", "DESC"),
		database.WithOrderBy("id", "DESC"),
	))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find job items: %w", apperrors.MapDBError(err))
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.JobItem])
	if err != nil {
		return nil, fmt.Errorf("scan job items: %w", apperrors.MapDBError(err))
	}
	return items, nil
}

// InsertJob inserts a job from mapped columns.
func (r *EntityRepo) InsertJob(ctx context.Context, cols model.Columns) (int64, error) {
	return r.insert(ctx, jobsTable, cols, jobInsertColumns)
}

// InsertJobItem inserts a job item from mapped columns; job_id must be set.
func (r *EntityRepo) InsertJobItem(ctx context.Context, cols model.Columns) (int64, error) {
	if _, err := cols.Int64("job_id"); err != nil {
		return 0, fmt.Errorf("insert job item: %w", err)
	}
	return r.insert(ctx, jobItemsTable, cols, jobItemInsertColumns)
}

func (r *EntityRepo) insert(ctx context.Context, table string, cols model.Columns, allowed []string) (int64, error) {
	query, args, err := database.BuildInsert(table, cols, allowed, "id")
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	var id int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, apperrors.MapDBError(err))
	}
	return id, nil
}

// UpdateJobAgent moves a job to another agent.
func (r *EntityRepo) UpdateJobAgent(ctx context.Context, jobID, agentID int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE jobs SET agent_id = $1 WHERE id = $2`, agentID, jobID)
	if err != nil {
		return fmt.Errorf("update job agent: %w", apperrors.MapDBError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update job %d: %w", jobID, ErrJobNotFound)
	}
	return nil
}
