package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/target/t1250-loader/config"
	"github.com/target/t1250-loader/internal/bootstrap"
)

var errRedisNotConfigured = errors.New("redis not configured")

// openDB connects to Postgres. The returned release func closes the pool and
// logs a close failure instead of masking the command's own error.
func openDB(cmdCtx *commandContext) (*sql.DB, func(), error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cmdCtx.Config.Postgres, Logger: cmdCtx.Logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	return db, releaser(cmdCtx, "db", db), nil
}

// openRedis connects to the agent cache.
//
//nolint:ireturn // redis.UniversalClient covers standalone, sentinel and cluster.
func openRedis(cmdCtx *commandContext) (redis.UniversalClient, func(), error) {
	cfg := cmdCtx.Config.Redis
	if !redisConfigured(&cfg) {
		return nil, nil, errRedisNotConfigured
	}
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: cfg, Logger: cmdCtx.Logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, releaser(cmdCtx, "redis", client), nil
}

func releaser(cmdCtx *commandContext, what string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			cmdCtx.Logger.Warn(what+" close failed", "error", err)
		}
	}
}

// redisConfigured reports whether cfg names somewhere to connect to.
func redisConfigured(cfg *config.RedisConfig) bool {
	switch {
	case cfg == nil || !cfg.Enabled:
		return false
	case cfg.UseCluster:
		return len(cfg.ClusterNodes) > 0 || cfg.URI != ""
	case cfg.UseSentinel:
		return len(cfg.SentinelNodes) > 0
	default:
		return cfg.URI != ""
	}
}
