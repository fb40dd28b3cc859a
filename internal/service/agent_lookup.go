package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/domain/model"
)

// AgentLookupServiceOptions groups dependencies for AgentLookupService.
type AgentLookupServiceOptions struct {
	Agents core.AgentRepository    // Required
	Cache  *core.AgentCacheService // Optional
	Logger *slog.Logger            // Optional
}

// AgentLookupService resolves agent codes to agent ids through an optional cache.
type AgentLookupService struct {
	agents core.AgentRepository
	cache  *core.AgentCacheService
	logger *slog.Logger
}

// NewAgentLookupService constructs a new AgentLookupService.
func NewAgentLookupService(opts AgentLookupServiceOptions) *AgentLookupService {
	if opts.Agents == nil {
		panic("NewAgentLookupService: Agents repository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "agent_lookup")
	}
	return &AgentLookupService{agents: opts.Agents, cache: opts.Cache, logger: logger}
}

// AgentID returns the id of the agent with code. ok is false when no such agent exists.
// Cache failures are logged and fall through to the repository.
func (s *AgentLookupService) AgentID(ctx context.Context, code string) (int64, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, false, nil
	}

	id, hit, err := s.cache.GetAgentID(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "agent cache read failed", "agent_code", code, "error", err)
	}
	if hit {
		return id, true, nil
	}

	agent, err := s.agents.GetByCode(ctx, code)
	if errors.Is(err, model.ErrAgentNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, persistenceErr("get agent by code", err)
	}

	if err := s.cache.PutAgentID(ctx, code, agent.ID); err != nil {
		s.logger.WarnContext(ctx, "agent cache write failed", "agent_code", code, "error", err)
	}
	return agent.ID, true, nil
}
