package sync

import (
	"context"
	"fmt"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// bomHandler syncs bills of materials from a full snapshot. Each header plus
// its line set commits in its own transaction, so one broken BOM never takes
// down its neighbors; inside one BOM an unresolvable line is recorded and
// dropped while its siblings survive. Headers resolve their product through
// the identity ledger and are adopted by (product, version) when unlinked.
type bomHandler struct {
	stores  Stores
	gateway legacy.SnapshotReader
}

func NewBomHandler(stores Stores, gateway legacy.SnapshotReader) Handler {
	return &bomHandler{stores: stores, gateway: gateway}
}

func (h *bomHandler) Scope() string { return ScopeBoms }

func (h *bomHandler) Sync(ctx context.Context, run *Run) (int, error) {
	rows, err := h.gateway.ReadBoms(ctx, run.ConnectionID)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s rows: %w", models.KindSpc, err)
	}

	if len(rows) == 0 {
		if run.Mode == ModeOverwrite && !run.DryRun {
			run.AddError(models.EntityTypeBomVersion, models.KindSpc, nil, errEmptyOverwrite)
		}
		return 0, nil
	}

	refs, err := h.prefetch(ctx, rows)
	if err != nil {
		return 0, err
	}

	processed := 0
	seen := make(map[int64]struct{}, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		seen[row.ID] = struct{}{}

		syncOne := func(s Stores) error { return h.syncBom(ctx, s, run, refs, row) }
		if run.DryRun {
			err = syncOne(h.stores)
		} else {
			err = h.stores.InTx(ctx, syncOne)
		}
		if err != nil {
			key := row.ID
			run.AddError(models.EntityTypeBomVersion, models.KindSpc, &key, err)
			continue
		}
		processed++
	}

	if run.Mode == ModeOverwrite && !run.DryRun {
		deleter := func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.Boms().Delete(ctx, id)
			}}
		}
		if err := ReconcileDeletions(ctx, h.stores, run, models.EntityTypeBomVersion, models.KindSpc, seen, deleter, "Bom"); err != nil {
			return processed, fmt.Errorf("failed to reconcile %s deletions: %w", models.KindSpc, err)
		}
	}

	run.Count("Bom", processed)
	return processed, nil
}

// bomRefs are the ledger lookups one snapshot pass needs: header links,
// product links for the complect references and item links for every line.
type bomRefs struct {
	headers  *linkSet
	products map[int64]string
	items    map[int64]string
}

func (h *bomHandler) prefetch(ctx context.Context, rows []legacy.BomRow) (*bomRefs, error) {
	headerIDs := make([]int64, 0, len(rows))
	complectIDs := make([]int64, 0, len(rows))
	var detailIDs []int64
	seenComplect := make(map[int64]bool)
	seenDetail := make(map[int64]bool)

	for _, row := range rows {
		headerIDs = append(headerIDs, row.ID)
		if !seenComplect[row.ComplectID] {
			seenComplect[row.ComplectID] = true
			complectIDs = append(complectIDs, row.ComplectID)
		}
		for _, line := range row.Lines {
			if !seenDetail[line.DetailID] {
				seenDetail[line.DetailID] = true
				detailIDs = append(detailIDs, line.DetailID)
			}
		}
	}

	headers, err := prefetchLinks(ctx, h.stores.Links(), models.EntityTypeBomVersion, models.KindSpc, headerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity links: %w", err)
	}
	productLinks, err := h.stores.Links().ByExternalIDs(ctx, models.EntityTypeProduct, models.ExternalSystemComponent2020, models.KindComplect, complectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load product links: %w", err)
	}
	itemLinks, err := h.stores.Links().ByExternalIDs(ctx, models.EntityTypeItem, models.ExternalSystemComponent2020, models.KindDetail, detailIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load item links: %w", err)
	}

	refs := &bomRefs{
		headers:  headers,
		products: make(map[int64]string, len(productLinks)),
		items:    make(map[int64]string, len(itemLinks)),
	}
	for _, link := range productLinks {
		refs.products[link.ExternalID] = link.LocalEntityID
	}
	for _, link := range itemLinks {
		refs.items[link.ExternalID] = link.LocalEntityID
	}
	return refs, nil
}

// syncBom reconciles one header and its full line set. A returned error
// fails the whole BOM; line-level problems are recorded per line and the
// line is dropped instead.
func (h *bomHandler) syncBom(ctx context.Context, s Stores, run *Run, refs *bomRefs, row legacy.BomRow) error {
	productID, ok := refs.products[row.ComplectID]
	if !ok {
		return fmt.Errorf("product with external id %d is not linked", row.ComplectID)
	}
	status := models.BomStatusFromLegacy(row.Status)

	version, err := h.resolveVersion(ctx, s, run, refs, row, productID, status)
	if err != nil {
		return err
	}

	lines := make([]models.BomLine, 0, len(row.Lines))
	for _, lr := range row.Lines {
		itemID, ok := refs.items[lr.DetailID]
		if !ok {
			key := lr.ID
			run.AddError(models.EntityTypeBomLine, models.KindSpcItem, &key,
				fmt.Errorf("component with external id %d is not linked", lr.DetailID))
			continue
		}
		line, err := models.NewBomLine(version.ID, itemID, lr.Quantity, lr.Position)
		if err != nil {
			key := lr.ID
			run.AddError(models.EntityTypeBomLine, models.KindSpcItem, &key, err)
			continue
		}
		lines = append(lines, *line)
	}

	if run.DryRun {
		return nil
	}
	return s.Boms().ReplaceLines(ctx, version.ID, lines)
}

func (h *bomHandler) resolveVersion(ctx context.Context, s Stores, run *Run, refs *bomRefs, row legacy.BomRow, productID string, status models.BomStatus) (*models.BomVersion, error) {
	if link := refs.headers.get(row.ID); link != nil {
		list, err := s.Boms().ByIDs(ctx, []string{link.LocalEntityID})
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("linked bom version %s not found", link.LocalEntityID)
		}
		v := list[0]
		v.SetStatus(status)
		if !run.DryRun {
			if err := s.Boms().Update(ctx, &v); err != nil {
				return nil, err
			}
		}
		return &v, touchLink(ctx, s, run, link, nil)
	}

	existing, err := s.Boms().ByProductVersion(ctx, productID, row.Version)
	if err != nil {
		return nil, fmt.Errorf("natural key lookup (bom-by-product-version) failed: %w", err)
	}
	if existing != nil {
		existing.SetStatus(status)
		if !run.DryRun {
			if err := s.Boms().Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, registerLink(ctx, s, run, models.EntityTypeBomVersion, models.KindSpc, row.ID, existing.ID, nil)
	}

	v, err := models.NewBomVersion(productID, row.Version, status)
	if err != nil {
		return nil, err
	}
	if !run.DryRun {
		if err := s.Boms().Create(ctx, v); err != nil {
			return nil, err
		}
	}
	return v, registerLink(ctx, s, run, models.EntityTypeBomVersion, models.KindSpc, row.ID, v.ID, nil)
}
