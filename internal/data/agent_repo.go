package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/data/pgxutil"
	"github.com/target/t1250-loader/internal/domain/model"
	apperrors "github.com/target/t1250-loader/internal/errors"
)

// AgentRepo looks up and registers delivery agents.
type AgentRepo struct {
	DB *sql.DB
}

var _ core.AgentRepository = (*AgentRepo)(nil)

// NewAgentRepo creates a new AgentRepo.
func NewAgentRepo(db *sql.DB) *AgentRepo {
	return &AgentRepo{DB: db}
}

// GetByCode returns the agent with code, compared case-insensitively.
func (r *AgentRepo) GetByCode(ctx context.Context, code string) (*model.Agent, error) {
	var a model.Agent
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT id, code, name FROM agents WHERE upper(code) = upper($1)`, code)
		if err != nil {
			return err
		}
		a, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Agent])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get agent %q: %w", code, apperrors.MapDBError(err))
	}
	return &a, nil
}

// Create registers an agent. A duplicate code yields a conflict AppError.
func (r *AgentRepo) Create(ctx context.Context, req model.CreateAgentRequest) (*model.Agent, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var a model.Agent
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`INSERT INTO agents (code, name) VALUES ($1, $2) RETURNING id, code, name`,
			req.Code, req.Name,
		)
		if err != nil {
			return err
		}
		a, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Agent])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create agent %q: %w", req.Code, apperrors.MapDBError(err))
	}
	return &a, nil
}
