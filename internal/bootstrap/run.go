package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/t1250-loader/internal/adapters/loadrunner"
)

// RunLoaderConfig contains what RunLoader needs.
type RunLoaderConfig struct {
	Services *ServiceContainer
	Files    []string
	DryRun   bool
}

// RunLoader loads the files in order. SIGINT and SIGTERM stop the run after
// the file in progress finishes.
func RunLoader(ctx context.Context, cfg RunLoaderConfig) (loadrunner.Summary, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cfg.Services.Runner.Run(ctx, cfg.Files, cfg.DryRun)
}
