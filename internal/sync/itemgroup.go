package sync

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// itemGroupHandler syncs the group hierarchy from a full snapshot; the
// source has no usable delta key for groups, so every mode reads everything.
// Rows are processed parents-first so a child can point at the parent synced
// moments earlier in the same pass. The handler also publishes the resolved
// hierarchy into the shared GroupIndex for the item and product passes.
type itemGroupHandler struct {
	stores  Stores
	gateway legacy.SnapshotReader
	index   *GroupIndex
}

func NewItemGroupHandler(stores Stores, gateway legacy.SnapshotReader, index *GroupIndex) Handler {
	return &itemGroupHandler{stores: stores, gateway: gateway, index: index}
}

func (h *itemGroupHandler) Scope() string { return ScopeItemGroups }

func (h *itemGroupHandler) Sync(ctx context.Context, run *Run) (int, error) {
	rows, err := h.gateway.ReadItemGroups(ctx, run.ConnectionID)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s rows: %w", models.KindGroup, err)
	}

	if len(rows) == 0 {
		if run.Mode == ModeOverwrite && !run.DryRun {
			run.AddError(models.EntityTypeItemGroup, models.KindGroup, nil, errEmptyOverwrite)
		}
		return 0, nil
	}

	hierarchy := ResolveHierarchy(rows)
	ordered := orderParentsFirst(rows)

	ids := make([]int64, 0, len(ordered))
	for _, row := range ordered {
		ids = append(ids, row.ID)
	}
	links, err := prefetchLinks(ctx, h.stores.Links(), models.EntityTypeItemGroup, models.KindGroup, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to load identity links: %w", err)
	}

	processed := 0
	seen := make(map[int64]struct{}, len(ordered))
	localByExternal := make(map[int64]string, len(ordered))

	pass := func(s Stores) error {
		for _, row := range ordered {
			if err := ctx.Err(); err != nil {
				return err
			}
			seen[row.ID] = struct{}{}
			localID, err := h.syncRow(ctx, s, run, links, hierarchy, localByExternal, row)
			if err != nil {
				key := row.ID
				run.AddError(models.EntityTypeItemGroup, models.KindGroup, &key, err)
				continue
			}
			localByExternal[row.ID] = localID
			processed++
		}
		return nil
	}

	if run.DryRun {
		err = pass(h.stores)
	} else {
		err = h.stores.InTx(ctx, pass)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to save %s pass: %w", models.KindGroup, err)
	}

	h.index.set(hierarchy, localByExternal)

	if run.Mode == ModeOverwrite && !run.DryRun {
		deleter := func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.ItemGroups().Delete(ctx, id)
			}}
		}
		if err := ReconcileDeletions(ctx, h.stores, run, models.EntityTypeItemGroup, models.KindGroup, seen, deleter, "ItemGroup"); err != nil {
			return processed, fmt.Errorf("failed to reconcile %s deletions: %w", models.KindGroup, err)
		}
	}

	run.Count("ItemGroup", processed)
	return processed, nil
}

func (h *itemGroupHandler) syncRow(ctx context.Context, s Stores, run *Run, links *linkSet, hierarchy *Hierarchy, localByExternal map[int64]string, row legacy.ItemGroupRow) (string, error) {
	var parentID *string
	if row.ParentID != 0 {
		if local, ok := localByExternal[row.ParentID]; ok {
			parentID = &local
		} else {
			log.Printf("Warning: parent group %d of group %d is not in this snapshot; importing without a parent", row.ParentID, row.ID)
		}
	}

	// Abbreviation is only carried by root groups.
	var abbreviation *string
	if root, ok := hierarchy.Root[row.ID]; ok && root == row.ID {
		if abbr, ok := hierarchy.Abbr[root]; ok {
			abbreviation = &abbr
		}
	}

	apply := func(localID string) error {
		list, err := s.ItemGroups().ByIDs(ctx, []string{localID})
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("linked item group %s not found", localID)
		}
		g := list[0]
		if err := g.Update(row.Name, parentID, abbreviation); err != nil {
			return err
		}
		if run.DryRun {
			return nil
		}
		return s.ItemGroups().Update(ctx, &g)
	}

	if link := links.get(row.ID); link != nil {
		if err := apply(link.LocalEntityID); err != nil {
			return "", err
		}
		return link.LocalEntityID, touchLink(ctx, s, run, link, nil)
	}

	if name := strings.TrimSpace(row.Name); name != "" {
		existing, err := s.ItemGroups().ByName(ctx, name)
		if err != nil {
			return "", fmt.Errorf("natural key lookup (item-group-by-name) failed: %w", err)
		}
		if existing != nil {
			if err := apply(existing.ID); err != nil {
				return "", err
			}
			return existing.ID, registerLink(ctx, s, run, models.EntityTypeItemGroup, models.KindGroup, row.ID, existing.ID, nil)
		}
	}

	g, err := models.NewItemGroup(row.Name, parentID, abbreviation)
	if err != nil {
		return "", err
	}
	if !run.DryRun {
		if err := s.ItemGroups().Create(ctx, g); err != nil {
			return "", err
		}
	}
	return g.ID, registerLink(ctx, s, run, models.EntityTypeItemGroup, models.KindGroup, row.ID, g.ID, nil)
}

// orderParentsFirst sorts a group snapshot by hierarchy depth so parents are
// synced before their children. Nodes on cycles keep their computed depth at
// the cut-off point, which is still a stable order.
func orderParentsFirst(rows []legacy.ItemGroupRow) []legacy.ItemGroupRow {
	parent := make(map[int64]int64, len(rows))
	for _, row := range rows {
		parent[row.ID] = row.ParentID
	}

	depth := make(map[int64]int, len(rows))
	for _, row := range rows {
		d := 0
		visited := map[int64]bool{row.ID: true}
		for cur := row.ParentID; cur != 0; cur = parent[cur] {
			if _, known := parent[cur]; !known || visited[cur] || d > maxGroupDepth {
				break
			}
			visited[cur] = true
			d++
		}
		depth[row.ID] = d
	}

	ordered := make([]legacy.ItemGroupRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return depth[ordered[i].ID] < depth[ordered[j].ID]
	})
	return ordered
}
