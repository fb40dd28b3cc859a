// Package core defines the ports of the T1250 loader and the small services built directly on them.
package core

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// CacheRepository defines the interface for caching operations.
// This follows the hexagonal architecture pattern where the core defines interfaces
// and the data layer provides implementations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// AgentCacheService caches agent code to agent id lookups.
type AgentCacheService struct {
	cache CacheRepository
	ttl   time.Duration
}

// AgentCacheConfig holds configuration for agent caching.
type AgentCacheConfig struct {
	TTL time.Duration `json:"ttl"`
}

// AgentCacheServiceOptions bundles dependencies for NewAgentCacheService.
type AgentCacheServiceOptions struct {
	Cache  CacheRepository
	Config AgentCacheConfig
}

// DefaultAgentCacheConfig returns an AgentCacheConfig with sensible defaults.
func DefaultAgentCacheConfig() AgentCacheConfig {
	return AgentCacheConfig{
		TTL: 15 * time.Minute,
	}
}

// NewAgentCacheService creates a new AgentCacheService.
func NewAgentCacheService(opts AgentCacheServiceOptions) *AgentCacheService {
	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultAgentCacheConfig().TTL
	}
	return &AgentCacheService{cache: opts.Cache, ttl: ttl}
}

// GetAgentID returns the cached agent id for code. ok is false on a miss or
// when the cached value is unreadable.
func (s *AgentCacheService) GetAgentID(ctx context.Context, code string) (int64, bool, error) {
	if s == nil || s.cache == nil || code == "" {
		return 0, false, nil
	}
	raw, err := s.cache.Get(ctx, agentCodeKey(code))
	if err != nil {
		return 0, false, err
	}
	if len(raw) == 0 {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return id, true, nil
}

// PutAgentID caches the agent id for code.
func (s *AgentCacheService) PutAgentID(ctx context.Context, code string, id int64) error {
	if s == nil || s.cache == nil || code == "" {
		return nil
	}
	return s.cache.Set(ctx, agentCodeKey(code), []byte(strconv.FormatInt(id, 10)), s.ttl)
}

// InvalidateAgent removes the cached id for code.
func (s *AgentCacheService) InvalidateAgent(ctx context.Context, code string) error {
	if s == nil || s.cache == nil || code == "" {
		return nil
	}
	_, err := s.cache.Delete(ctx, agentCodeKey(code))
	return err
}

// agentCodeKey generates a cache key for an agent code.
func agentCodeKey(code string) string {
	return "agent:code:" + strings.ToUpper(strings.TrimSpace(code))
}
