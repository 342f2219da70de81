package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// NewCounterpartyHandler syncs customer/provider firms, adopting
// pre-existing local rows by name. Firms referenced by orders are
// deactivated instead of deleted under overwrite.
func NewCounterpartyHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	return newFlatHandler(stores, flatSpec[legacy.CounterpartyRow]{
		scope:        ScopeCounterparties,
		entityType:   models.EntityTypeCounterparty,
		externalKind: models.KindFirm,
		sourceEntity: models.KindFirm,
		counterKey:   "Counterparty",
		read:         gateway.ReadCounterpartiesDelta,
		externalID:   func(r legacy.CounterpartyRow) int64 { return r.ID },
		adopt: NaturalKeyStrategy[legacy.CounterpartyRow]{
			Name: "counterparty-by-name",
			Find: func(ctx context.Context, s Stores, row legacy.CounterpartyRow) (string, bool, error) {
				name := strings.TrimSpace(row.Name)
				if name == "" {
					return "", false, nil
				}
				existing, err := s.Counterparties().ByName(ctx, name)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.CounterpartyRow) (string, error) {
			c, err := models.NewCounterparty(row.Name, optional(row.TIN), row.IsProvider)
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return c.ID, nil
			}
			return c.ID, s.Counterparties().Create(ctx, c)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.CounterpartyRow) error {
			list, err := s.Counterparties().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked counterparty %s not found", localID)
			}
			c := list[0]
			if err := c.Update(row.Name, optional(row.TIN), row.IsProvider); err != nil {
				return err
			}
			if run.DryRun {
				return nil
			}
			return s.Counterparties().Update(ctx, &c)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{
				del: func(ctx context.Context, id string) error {
					return s.Counterparties().Delete(ctx, id)
				},
				deact: func(ctx context.Context, id string) error {
					return s.Counterparties().Deactivate(ctx, id)
				},
			}
		},
	})
}

// NewPersonHandler syncs employee records, adopting by full name.
func NewPersonHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	return newFlatHandler(stores, flatSpec[legacy.PersonRow]{
		scope:        ScopePersons,
		entityType:   models.EntityTypePerson,
		externalKind: models.KindPerson,
		sourceEntity: models.KindPerson,
		counterKey:   "Person",
		read:         gateway.ReadPersonsDelta,
		externalID:   func(r legacy.PersonRow) int64 { return r.ID },
		adopt: NaturalKeyStrategy[legacy.PersonRow]{
			Name: "person-by-full-name",
			Find: func(ctx context.Context, s Stores, row legacy.PersonRow) (string, bool, error) {
				fullName := personFullName(row)
				if fullName == "" {
					return "", false, nil
				}
				existing, err := s.Persons().ByFullName(ctx, fullName)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.PersonRow) (string, error) {
			p, err := models.NewPerson(row.LastName, row.FirstName, optional(row.MiddleName), optional(row.Position))
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return p.ID, nil
			}
			return p.ID, s.Persons().Create(ctx, p)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.PersonRow) error {
			list, err := s.Persons().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked person %s not found", localID)
			}
			p := list[0]
			if err := p.Update(row.LastName, row.FirstName, optional(row.MiddleName), optional(row.Position)); err != nil {
				return err
			}
			if run.DryRun {
				return nil
			}
			return s.Persons().Update(ctx, &p)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.Persons().Delete(ctx, id)
			}}
		},
	})
}

func personFullName(row legacy.PersonRow) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{row.LastName, row.FirstName, row.MiddleName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// optional maps an empty string to a nil pointer.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
