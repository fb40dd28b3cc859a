// Package reconcile matches a record's barcode and connote to stored jobs.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/target/t1250-loader/internal/domain/model"
)

// manufacturedMinConnote is the connote length above which a barcode may be a
// truncated copy of the connote.
const manufacturedMinConnote = 15

// EntityLookup is the read side of the entity store used during reconciliation.
type EntityLookup interface {
	FindJobsByBarcode(ctx context.Context, barcode string) ([]model.Job, error)
	FindJobItemsByConnoteItem(ctx context.Context, connote, itemNbr string) ([]model.JobItem, error)
}

// IsManufactured reports whether barcode was derived from a truncated connote.
// Only connotes longer than 15 characters qualify. The barcode windows [0:16]
// and [4:16] are clamped to the barcode length, so a barcode of four
// characters or fewer yields an empty second window, which matches any
// qualifying connote.
func IsManufactured(connote, barcode string) bool {
	if len(connote) <= manufacturedMinConnote {
		return false
	}
	return strings.Contains(connote, window(barcode, 0, 16)) ||
		strings.Contains(connote, window(barcode, 4, 16))
}

func window(s string, start, end int) string {
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		start = end
	}
	return s[start:end]
}

// Reconciler resolves records to existing jobs.
type Reconciler struct {
	lookup EntityLookup
}

// New creates a Reconciler.
func New(lookup EntityLookup) *Reconciler {
	if lookup == nil {
		panic("reconcile.New: lookup is required")
	}
	return &Reconciler{lookup: lookup}
}

// Reconcile classifies the barcode and looks up the matching job.
//
// A manufactured barcode is matched through the job item with the same
// connote and item number; when found the job item is reused as is. Any other
// barcode is matched on card_ref_nbr and the first job wins. No match means a
// new job is required.
func (r *Reconciler) Reconcile(ctx context.Context, connote, barcode, itemNbr string) (model.ReconciliationResult, error) {
	if IsManufactured(connote, barcode) {
		items, err := r.lookup.FindJobItemsByConnoteItem(ctx, connote, itemNbr)
		if err != nil {
			return model.ReconciliationResult{}, fmt.Errorf("find job items by connote: %w", err)
		}
		if len(items) == 0 {
			return model.ReconciliationResult{}, nil
		}
		jobID, itemID := items[0].JobID, items[0].ID
		return model.ReconciliationResult{JobID: &jobID, JobItemID: &itemID, SkipItemCheck: true}, nil
	}

	jobs, err := r.lookup.FindJobsByBarcode(ctx, barcode)
	if err != nil {
		return model.ReconciliationResult{}, fmt.Errorf("find jobs by barcode: %w", err)
	}
	if len(jobs) == 0 {
		return model.ReconciliationResult{}, nil
	}
	jobID := jobs[0].ID
	return model.ReconciliationResult{JobID: &jobID}, nil
}
