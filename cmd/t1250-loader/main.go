// Command t1250-loader loads T1250 consignment files into the job store.
//
// Usage:
//
//	t1250-loader [-dry-run] FILE...
//
// Files are loaded one at a time, each in its own transaction. The exit
// status is 1 when any file failed to load and 2 on usage errors.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/target/t1250-loader/config"
	"github.com/target/t1250-loader/internal/bootstrap"
)

type options struct {
	DryRun bool
	Files  []string
}

var errUsage = errors.New("usage")

func parseFlags(args []string, stderr io.Writer, defaults config.LoaderConfig) (options, error) {
	fs := flag.NewFlagSet("t1250-loader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: t1250-loader [-dry-run] FILE...\n\n")
		fs.PrintDefaults()
	}

	opts := options{}
	fs.BoolVar(&opts.DryRun, "dry-run", defaults.DryRun, "Process files and roll every transaction back")
	if err := fs.Parse(args); err != nil {
		return options{}, errUsage
	}
	opts.Files = fs.Args()
	if len(opts.Files) == 0 {
		fs.Usage()
		return options{}, errUsage
	}
	return opts, nil
}

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		bootstrap.InitLogger("info", false).Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg.LogLevel, cfg.IsDev)

	opts, err := parseFlags(os.Args[1:], os.Stderr, cfg.Loader)
	if err != nil {
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status on usage errors
	}

	ctx := context.Background()
	if err := run(ctx, logger, &cfg, opts); err != nil {
		logger.ErrorContext(ctx, "load failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must report failed files to callers
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, opts options) error {
	logger.InfoContext(ctx, "starting t1250 loader",
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
		"files", len(opts.Files),
		"dry_run", opts.DryRun,
	)

	db, redisClient, err := initInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	if cfg.Postgres.RunMigrationsOnStart {
		if err := bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.WarnContext(ctx, "close services failed", "error", cerr)
		}
	}()

	summary, err := bootstrap.RunLoader(ctx, bootstrap.RunLoaderConfig{
		Services: services,
		Files:    opts.Files,
		DryRun:   opts.DryRun,
	})
	logger.InfoContext(ctx, "load finished",
		"files", len(summary.Outcomes),
		"failed", summary.Failed(),
		"pending", len(summary.Pending),
	)
	return err
}

// initInfrastructure connects the database and, when enabled, Redis. A Redis
// failure is logged and the loader runs without the agent cache.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	if !cfg.Redis.Enabled {
		return db, nil, nil
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: cfg.Redis, Logger: logger})
	if err != nil {
		logger.WarnContext(ctx, "redis unavailable, agent cache disabled", "error", err)
		return db, nil, nil
	}
	return db, redisClient, nil
}
