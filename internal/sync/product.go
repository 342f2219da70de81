package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// NewProductHandler syncs sellable complects. The legacy complect table has
// no usable delta key, so every mode reads the full snapshot; the cursor
// recorded for the family is informational only. Numbers follow the same
// keep-or-allocate rule as items, with the product prefix as the fallback.
func NewProductHandler(stores Stores, gateway legacy.Gateway, index *GroupIndex) Handler {
	var alloc *Allocator

	resolveGroup := func(row legacy.ComplectRow) (prefix string, groupID *string) {
		prefix = index.PrefixFor(row.GroupID, models.ItemKindProduct)
		if row.GroupID != 0 {
			if local, ok := index.LocalID(row.GroupID); ok {
				groupID = &local
			}
		}
		return prefix, groupID
	}

	number := func(ctx context.Context, s Stores, row legacy.ComplectRow, prefix string) (string, error) {
		if n := strings.TrimSpace(row.Number); models.ValidNomenclatureNumber(n) {
			return n, nil
		}
		return alloc.Allocate(ctx, s, models.ItemKindProduct, prefix)
	}

	return newFlatHandler(stores, flatSpec[legacy.ComplectRow]{
		scope:        ScopeProducts,
		entityType:   models.EntityTypeProduct,
		externalKind: models.KindComplect,
		sourceEntity: models.KindComplect,
		counterKey:   "Product",
		read: func(ctx context.Context, connectionID string, _ *int64) ([]legacy.ComplectRow, error) {
			return gateway.ReadComplects(ctx, connectionID)
		},
		externalID: func(r legacy.ComplectRow) int64 { return r.ID },
		prepare: func(ctx context.Context, s Stores, run *Run, rows []legacy.ComplectRow) error {
			if err := index.Ensure(ctx, s, gateway, run.ConnectionID); err != nil {
				return err
			}
			alloc = NewAllocator(run.DryRun, func(ctx context.Context, prefix string) (int, error) {
				return s.Products().MaxNumber(ctx, prefix)
			})
			return nil
		},
		adopt: NaturalKeyStrategy[legacy.ComplectRow]{
			Name: "product-by-number",
			Find: func(ctx context.Context, s Stores, row legacy.ComplectRow) (string, bool, error) {
				n := strings.TrimSpace(row.Number)
				if !models.ValidNomenclatureNumber(n) {
					return "", false, nil
				}
				existing, err := s.Products().ByNumber(ctx, n)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.ComplectRow) (string, error) {
			prefix, groupID := resolveGroup(row)
			n, err := number(ctx, s, row, prefix)
			if err != nil {
				return "", err
			}
			p, err := models.NewProduct(n, row.Name, groupID)
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return p.ID, nil
			}
			return p.ID, s.Products().Create(ctx, p)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.ComplectRow) error {
			_, groupID := resolveGroup(row)
			list, err := s.Products().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked product %s not found", localID)
			}
			p := list[0]
			if err := p.Update(row.Name, groupID); err != nil {
				return err
			}
			if run.DryRun {
				return nil
			}
			return s.Products().Update(ctx, &p)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{
				del: func(ctx context.Context, id string) error {
					return s.Products().Delete(ctx, id)
				},
				deact: func(ctx context.Context, id string) error {
					return s.Products().Deactivate(ctx, id)
				},
			}
		},
	})
}
