package sync

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// NewItemHandler syncs components. Each row is classified by its group's
// root, resolved through the shared GroupIndex, and gets a nomenclature
// number: a valid upstream number is kept as-is, otherwise one is allocated
// under the group's prefix. A valid number already on the local item is
// never overwritten.
func NewItemHandler(stores Stores, gateway legacy.Gateway, index *GroupIndex) Handler {
	var alloc *Allocator

	resolveGroup := func(row legacy.ItemRow) (kind models.ItemKind, prefix string, groupID *string) {
		kind = index.KindFor(row.GroupID)
		prefix = index.PrefixFor(row.GroupID, kind)
		if row.GroupID != 0 {
			if local, ok := index.LocalID(row.GroupID); ok {
				groupID = &local
			}
		}
		return kind, prefix, groupID
	}

	resolveUnit := func(ctx context.Context, s Stores, row legacy.ItemRow) (*string, error) {
		code := strings.TrimSpace(row.UnitCode)
		if code == "" {
			return nil, nil
		}
		unit, err := s.Units().ByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("unit lookup for code %q failed: %w", code, err)
		}
		if unit == nil {
			log.Printf("Warning: unit code %q of item %d is unknown; importing without a unit", code, row.ID)
			return nil, nil
		}
		return &unit.ID, nil
	}

	number := func(ctx context.Context, s Stores, row legacy.ItemRow, kind models.ItemKind, prefix string) (string, error) {
		if models.ValidNomenclatureNumber(strings.TrimSpace(row.Number)) {
			return strings.TrimSpace(row.Number), nil
		}
		return alloc.Allocate(ctx, s, kind, prefix)
	}

	return newFlatHandler(stores, flatSpec[legacy.ItemRow]{
		scope:        ScopeItems,
		entityType:   models.EntityTypeItem,
		externalKind: models.KindDetail,
		sourceEntity: models.KindDetail,
		counterKey:   "Item",
		read:         gateway.ReadItemsDelta,
		externalID:   func(r legacy.ItemRow) int64 { return r.ID },
		prepare: func(ctx context.Context, s Stores, run *Run, rows []legacy.ItemRow) error {
			if err := index.Ensure(ctx, s, gateway, run.ConnectionID); err != nil {
				return err
			}
			alloc = NewAllocator(run.DryRun, func(ctx context.Context, prefix string) (int, error) {
				return s.Items().MaxNumber(ctx, prefix)
			})
			return nil
		},
		adopt: NaturalKeyStrategy[legacy.ItemRow]{
			Name: "item-by-number",
			Find: func(ctx context.Context, s Stores, row legacy.ItemRow) (string, bool, error) {
				n := strings.TrimSpace(row.Number)
				if !models.ValidNomenclatureNumber(n) {
					return "", false, nil
				}
				existing, err := s.Items().ByNumber(ctx, n)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.ItemRow) (string, error) {
			kind, prefix, groupID := resolveGroup(row)
			unitID, err := resolveUnit(ctx, s, row)
			if err != nil {
				return "", err
			}
			n, err := number(ctx, s, row, kind, prefix)
			if err != nil {
				return "", err
			}
			i, err := models.NewItem(n, row.Name, kind, groupID, unitID)
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return i.ID, nil
			}
			return i.ID, s.Items().Create(ctx, i)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.ItemRow) error {
			kind, prefix, groupID := resolveGroup(row)
			unitID, err := resolveUnit(ctx, s, row)
			if err != nil {
				return err
			}
			list, err := s.Items().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked item %s not found", localID)
			}
			i := list[0]
			if err := i.Update(row.Name, kind, groupID, unitID); err != nil {
				return err
			}
			if !models.ValidNomenclatureNumber(i.Number) {
				n, err := number(ctx, s, row, kind, prefix)
				if err != nil {
					return err
				}
				if err := i.SetNumber(n); err != nil {
					return err
				}
			}
			if run.DryRun {
				return nil
			}
			return s.Items().Update(ctx, &i)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{
				del: func(ctx context.Context, id string) error {
					return s.Items().Delete(ctx, id)
				},
				deact: func(ctx context.Context, id string) error {
					return s.Items().Deactivate(ctx, id)
				},
			}
		},
	})
}
