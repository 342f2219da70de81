package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// statusGroupNames are the display names of the synthetic per-kind groups.
var statusGroupNames = map[models.StatusKind]string{
	models.StatusKindComponent: "Component statuses",
	models.StatusKindOrder:     "Order statuses",
	models.StatusKindRequest:   "Request statuses",
}

// statusHandler syncs workflow statuses. Source rows carry a numeric kind;
// each kind maps to one local status group which is created on first sight,
// then child statuses are reconciled under it, adopted by name within the
// group. Groups are never deleted by overwrite reconciliation, only their
// statuses are.
type statusHandler struct {
	stores  Stores
	gateway legacy.DeltaReader
}

func NewStatusHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	return &statusHandler{stores: stores, gateway: gateway}
}

func (h *statusHandler) Scope() string { return ScopeStatuses }

func (h *statusHandler) Sync(ctx context.Context, run *Run) (int, error) {
	lastKey, err := loadCursor(ctx, h.stores.Cursors(), run, models.KindStatus)
	if err != nil {
		return 0, fmt.Errorf("failed to load cursor for %s: %w", models.KindStatus, err)
	}

	rows, err := h.gateway.ReadStatusesDelta(ctx, run.ConnectionID, lastKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s rows: %w", models.KindStatus, err)
	}

	if len(rows) == 0 {
		if run.Mode == ModeOverwrite && !run.DryRun {
			run.AddError(models.EntityTypeStatus, models.KindStatus, nil, errEmptyOverwrite)
		}
		return 0, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	links, err := prefetchLinks(ctx, h.stores.Links(), models.EntityTypeStatus, models.KindStatus, ids)
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
		groups, err := h.ensureGroups(ctx, s, run, rows)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			seen[row.ID] = struct{}{}
			if err := h.syncRow(ctx, s, run, links, groups, row); err != nil {
				key := row.ID
				run.AddError(models.EntityTypeStatus, models.KindStatus, &key, err)
			} else {
				processed++
			}
			if row.ID > newCursor {
				newCursor = row.ID
			}
		}
		if !run.DryRun && processed > 0 {
			return saveCursor(ctx, s.Cursors(), run.ConnectionID, models.KindStatus, newCursor)
		}
		return nil
	}

	if run.DryRun {
		err = pass(h.stores)
	} else {
		err = h.stores.InTx(ctx, pass)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to save %s pass: %w", models.KindStatus, err)
	}

	if run.Mode == ModeOverwrite && !run.DryRun {
		deleter := func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.Statuses().Delete(ctx, id)
			}}
		}
		if err := ReconcileDeletions(ctx, h.stores, run, models.EntityTypeStatus, models.KindStatus, seen, deleter, "Status"); err != nil {
			return processed, fmt.Errorf("failed to reconcile %s deletions: %w", models.KindStatus, err)
		}
	}

	run.Count("Status", processed)
	return processed, nil
}

// ensureGroups resolves (or creates) the status group for every kind present
// in this batch. Dry runs resolve existing groups and simulate the rest.
func (h *statusHandler) ensureGroups(ctx context.Context, s Stores, run *Run, rows []legacy.StatusRow) (map[models.StatusKind]string, error) {
	groups := make(map[models.StatusKind]string)
	for _, row := range rows {
		kind := models.StatusKindFromLegacy(row.Kind)
		if _, done := groups[kind]; done {
			continue
		}
		existing, err := s.Statuses().GroupByKind(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to load status group for kind %s: %w", kind, err)
		}
		if existing != nil {
			groups[kind] = existing.ID
			continue
		}
		g, err := models.NewStatusGroup(kind, statusGroupNames[kind])
		if err != nil {
			return nil, fmt.Errorf("failed to build status group for kind %s: %w", kind, err)
		}
		if !run.DryRun {
			if err := s.Statuses().CreateGroup(ctx, g); err != nil {
				return nil, fmt.Errorf("failed to create status group for kind %s: %w", kind, err)
			}
		}
		groups[kind] = g.ID
	}
	return groups, nil
}

func (h *statusHandler) syncRow(ctx context.Context, s Stores, run *Run, links *linkSet, groups map[models.StatusKind]string, row legacy.StatusRow) error {
	groupID := groups[models.StatusKindFromLegacy(row.Kind)]

	apply := func(localID string) error {
		list, err := s.Statuses().ByIDs(ctx, []string{localID})
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("linked status %s not found", localID)
		}
		st := list[0]
		if err := st.Update(row.Name, row.SortOrder); err != nil {
			return err
		}
		st.GroupID = groupID
		if run.DryRun {
			return nil
		}
		return s.Statuses().Update(ctx, &st)
	}

	if link := links.get(row.ID); link != nil {
		if err := apply(link.LocalEntityID); err != nil {
			return err
		}
		return touchLink(ctx, s, run, link, nil)
	}

	if name := strings.TrimSpace(row.Name); name != "" {
		existing, err := s.Statuses().ByName(ctx, groupID, name)
		if err != nil {
			return fmt.Errorf("natural key lookup (status-by-name) failed: %w", err)
		}
		if existing != nil {
			if err := apply(existing.ID); err != nil {
				return err
			}
			return registerLink(ctx, s, run, models.EntityTypeStatus, models.KindStatus, row.ID, existing.ID, nil)
		}
	}

	st, err := models.NewStatus(groupID, row.Name, row.SortOrder)
	if err != nil {
		return err
	}
	if !run.DryRun {
		if err := s.Statuses().Create(ctx, st); err != nil {
			return err
		}
	}
	return registerLink(ctx, s, run, models.EntityTypeStatus, models.KindStatus, row.ID, st.ID, nil)
}
