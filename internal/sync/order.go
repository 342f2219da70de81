package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// NewOrderHandler syncs customer order headers. The referenced firm must
// already be linked in the ledger; a row whose firm cannot be resolved is a
// resolution failure, recorded and skipped.
func NewOrderHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	// external firm id -> local counterparty id, rebuilt every pass.
	firms := map[int64]string{}

	resolveFirm := func(row legacy.OrderRow) (*string, error) {
		if row.FirmID == 0 {
			return nil, nil
		}
		localID, ok := firms[row.FirmID]
		if !ok {
			return nil, fmt.Errorf("counterparty with external id %d is not linked", row.FirmID)
		}
		return &localID, nil
	}

	return newFlatHandler(stores, flatSpec[legacy.OrderRow]{
		scope:        ScopeOrders,
		entityType:   models.EntityTypeOrder,
		externalKind: models.KindOrder,
		sourceEntity: models.KindOrder,
		counterKey:   "Order",
		read:         gateway.ReadOrdersDelta,
		externalID:   func(r legacy.OrderRow) int64 { return r.ID },
		prepare: func(ctx context.Context, s Stores, run *Run, rows []legacy.OrderRow) error {
			firms = make(map[int64]string)
			ids := make([]int64, 0, len(rows))
			seen := make(map[int64]bool)
			for _, row := range rows {
				if row.FirmID != 0 && !seen[row.FirmID] {
					seen[row.FirmID] = true
					ids = append(ids, row.FirmID)
				}
			}
			if len(ids) == 0 {
				return nil
			}
			links, err := s.Links().ByExternalIDs(ctx, models.EntityTypeCounterparty, models.ExternalSystemComponent2020, models.KindFirm, ids)
			if err != nil {
				return err
			}
			for _, link := range links {
				firms[link.ExternalID] = link.LocalEntityID
			}
			return nil
		},
		adopt: NaturalKeyStrategy[legacy.OrderRow]{
			Name: "order-by-number",
			Find: func(ctx context.Context, s Stores, row legacy.OrderRow) (string, bool, error) {
				number := strings.TrimSpace(row.Number)
				if number == "" {
					return "", false, nil
				}
				existing, err := s.Orders().ByNumber(ctx, number)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.OrderRow) (string, error) {
			counterpartyID, err := resolveFirm(row)
			if err != nil {
				return "", err
			}
			o, err := models.NewCustomerOrder(row.Number, counterpartyID, row.Date, optional(row.Comment))
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return o.ID, nil
			}
			return o.ID, s.Orders().Create(ctx, o)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.OrderRow) error {
			counterpartyID, err := resolveFirm(row)
			if err != nil {
				return err
			}
			list, err := s.Orders().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked order %s not found", localID)
			}
			o := list[0]
			o.Update(counterpartyID, row.Date, optional(row.Comment))
			if run.DryRun {
				return nil
			}
			return s.Orders().Update(ctx, &o)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.Orders().Delete(ctx, id)
			}}
		},
	})
}
