package sync

import (
	"context"
	"errors"
	"fmt"
)

// errEmptyOverwrite is the misconfiguration guardrail: a full read that
// returned nothing under overwrite mode is treated as a broken connection,
// not as "delete everything".
var errEmptyOverwrite = errors.New("source returned no rows; skipping overwrite deletion as a likely misconfiguration")

// flatSpec describes one flat entity family (a dictionary, a party, an
// order header): how to read it, how rows map to the local aggregate and
// which natural key adopts pre-existing local rows.
type flatSpec[R any] struct {
	scope        string
	entityType   string
	externalKind string
	sourceEntity string
	counterKey   string

	read       func(ctx context.Context, connectionID string, lastKey *int64) ([]R, error)
	externalID func(row R) int64
	adopt      NaturalKeyStrategy[R]
	// prepare runs once per pass, after the read and before the row loop.
	prepare func(ctx context.Context, s Stores, run *Run, rows []R) error
	// create constructs and (outside dry runs) persists a new local
	// entity; update applies upstream attributes through the aggregate's
	// own mutation API.
	create func(ctx context.Context, s Stores, run *Run, row R) (string, error)
	update func(ctx context.Context, s Stores, run *Run, localID string, row R) error
	// deleter builds the deletion surface over a (possibly tx-scoped)
	// store set for overwrite reconciliation.
	deleter func(s Stores) EntityDeleter
}

// flatHandler runs the shared reconciliation pass for a flatSpec.
// Specialized families (statuses, users via prepare, items, products,
// groups, BOMs) either parameterize or bypass it.
type flatHandler[R any] struct {
	stores Stores
	spec   flatSpec[R]
}

func newFlatHandler[R any](stores Stores, spec flatSpec[R]) *flatHandler[R] {
	return &flatHandler[R]{stores: stores, spec: spec}
}

func (h *flatHandler[R]) Scope() string { return h.spec.scope }

func (h *flatHandler[R]) Sync(ctx context.Context, run *Run) (int, error) {
	lastKey, err := loadCursor(ctx, h.stores.Cursors(), run, h.spec.sourceEntity)
	if err != nil {
		return 0, fmt.Errorf("failed to load cursor for %s: %w", h.spec.sourceEntity, err)
	}

	rows, err := h.spec.read(ctx, run.ConnectionID, lastKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s rows: %w", h.spec.sourceEntity, err)
	}

	if len(rows) == 0 {
		if run.Mode == ModeOverwrite && !run.DryRun {
			run.AddError(h.spec.entityType, h.spec.externalKind, nil, errEmptyOverwrite)
		}
		return 0, nil
	}

	if h.spec.prepare != nil {
		if err := h.spec.prepare(ctx, h.stores, run, rows); err != nil {
			return 0, fmt.Errorf("failed to prepare %s pass: %w", h.spec.sourceEntity, err)
		}
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, h.spec.externalID(row))
	}
	links, err := prefetchLinks(ctx, h.stores.Links(), h.spec.entityType, h.spec.externalKind, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to load identity links: %w", err)
	}

	processed := 0
	seen := make(map[int64]struct{}, len(rows))
	var newCursor int64
	if lastKey != nil {
		newCursor = *lastKey
	}

	pass := func(s Stores) error {
		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			extID := h.spec.externalID(row)
			seen[extID] = struct{}{}
			if err := h.syncRow(ctx, s, run, links, row); err != nil {
				key := extID
				run.AddError(h.spec.entityType, h.spec.externalKind, &key, err)
			} else {
				processed++
			}
			if extID > newCursor {
				newCursor = extID
			}
		}
		if !run.DryRun && processed > 0 {
			return saveCursor(ctx, s.Cursors(), run.ConnectionID, h.spec.sourceEntity, newCursor)
		}
		return nil
	}

	if run.DryRun {
		err = pass(h.stores)
	} else {
		err = h.stores.InTx(ctx, pass)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to save %s pass: %w", h.spec.sourceEntity, err)
	}

	if run.Mode == ModeOverwrite && !run.DryRun {
		if err := ReconcileDeletions(ctx, h.stores, run, h.spec.entityType, h.spec.externalKind, seen, h.spec.deleter, h.spec.counterKey); err != nil {
			return processed, fmt.Errorf("failed to reconcile %s deletions: %w", h.spec.sourceEntity, err)
		}
	}

	run.Count(h.spec.counterKey, processed)
	return processed, nil
}

// syncRow reconciles one source row: resolve by link, fall back to the
// family's natural key, otherwise create. A returned error is contained to
// this row by the caller.
func (h *flatHandler[R]) syncRow(ctx context.Context, s Stores, run *Run, links *linkSet, row R) error {
	extID := h.spec.externalID(row)

	if link := links.get(extID); link != nil {
		if err := h.spec.update(ctx, s, run, link.LocalEntityID, row); err != nil {
			return err
		}
		return touchLink(ctx, s, run, link, nil)
	}

	localID, ok, err := h.spec.adopt.Find(ctx, s, row)
	if err != nil {
		return fmt.Errorf("natural key lookup (%s) failed: %w", h.spec.adopt.Name, err)
	}
	if ok {
		if err := h.spec.update(ctx, s, run, localID, row); err != nil {
			return err
		}
		return registerLink(ctx, s, run, h.spec.entityType, h.spec.externalKind, extID, localID, nil)
	}

	localID, err = h.spec.create(ctx, s, run, row)
	if err != nil {
		return err
	}
	return registerLink(ctx, s, run, h.spec.entityType, h.spec.externalKind, extID, localID, nil)
}
