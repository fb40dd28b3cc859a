// Package commsfs publishes comms events as zero-byte marker files that the
// comms daemon picks up from a shared directory.
package commsfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/domain/model"
)

const (
	defaultDirMode  os.FileMode = 0o755
	defaultFileMode os.FileMode = 0o644
)

// WriterOptions configures a Writer.
type WriterOptions struct {
	Dir      string       // Required
	FileMode os.FileMode  // Optional, default 0644
	Logger   *slog.Logger // Optional
}

// Writer creates one empty file named "<channel>.<job_item_id>.<template>"
// per comms event.
type Writer struct {
	dir    string
	mode   os.FileMode
	logger *slog.Logger
}

var _ core.CommsEventWriter = (*Writer)(nil)

// NewWriter creates a Writer and makes sure the marker directory exists.
func NewWriter(opts WriterOptions) (*Writer, error) {
	if opts.Dir == "" {
		return nil, errors.New("commsfs: dir is required")
	}
	if err := os.MkdirAll(opts.Dir, defaultDirMode); err != nil {
		return nil, fmt.Errorf("commsfs: create dir: %w", err)
	}
	mode := opts.FileMode
	if mode == 0 {
		mode = defaultFileMode
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "commsfs")
	}
	return &Writer{dir: opts.Dir, mode: mode, logger: logger}, nil
}

// Dir returns the marker directory.
func (w *Writer) Dir() string { return w.dir }

// Write creates the marker for ev. An existing marker for the same event is
// left untouched.
func (w *Writer) Write(ctx context.Context, ev model.CommsEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("commsfs: %w", err)
	}

	path := filepath.Join(w.dir, ev.Name())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, w.mode)
	if errors.Is(err, os.ErrExist) {
		w.logger.DebugContext(ctx, "comms marker already present", "marker", ev.Name())
		return nil
	}
	if err != nil {
		return fmt.Errorf("commsfs: create %s: %w", ev.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("commsfs: close %s: %w", ev.Name(), err)
	}
	w.logger.DebugContext(ctx, "comms marker written", "marker", ev.Name())
	return nil
}
