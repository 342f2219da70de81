package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// The simple dictionary families share the flat pass wholesale; each file
// section below only wires reads, natural keys and aggregate mutations.

// NewBodyTypeHandler syncs body type dictionary entries, adopting
// pre-existing local rows by name.
func NewBodyTypeHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	return newFlatHandler(stores, flatSpec[legacy.BodyTypeRow]{
		scope:        ScopeBodyTypes,
		entityType:   models.EntityTypeBodyType,
		externalKind: models.KindBody,
		sourceEntity: models.KindBody,
		counterKey:   "BodyType",
		read:         gateway.ReadBodyTypesDelta,
		externalID:   func(r legacy.BodyTypeRow) int64 { return r.ID },
		adopt: NaturalKeyStrategy[legacy.BodyTypeRow]{
			Name: "body-type-by-name",
			Find: func(ctx context.Context, s Stores, row legacy.BodyTypeRow) (string, bool, error) {
				name := strings.TrimSpace(row.Name)
				if name == "" {
					return "", false, nil
				}
				existing, err := s.BodyTypes().ByName(ctx, name)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.BodyTypeRow) (string, error) {
			b, err := models.NewBodyType(row.Name)
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return b.ID, nil
			}
			return b.ID, s.BodyTypes().Create(ctx, b)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.BodyTypeRow) error {
			list, err := s.BodyTypes().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked body type %s not found", localID)
			}
			b := list[0]
			if err := b.Rename(row.Name); err != nil {
				return err
			}
			if run.DryRun {
				return nil
			}
			return s.BodyTypes().Update(ctx, &b)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.BodyTypes().Delete(ctx, id)
			}}
		},
	})
}

// NewCurrencyHandler syncs the currency dictionary, adopting pre-existing
// local rows by ISO code.
func NewCurrencyHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	return newFlatHandler(stores, flatSpec[legacy.CurrencyRow]{
		scope:        ScopeCurrencies,
		entityType:   models.EntityTypeCurrency,
		externalKind: models.KindCurr,
		sourceEntity: models.KindCurr,
		counterKey:   "Currency",
		read:         gateway.ReadCurrenciesDelta,
		externalID:   func(r legacy.CurrencyRow) int64 { return r.ID },
		adopt: NaturalKeyStrategy[legacy.CurrencyRow]{
			Name: "currency-by-code",
			Find: func(ctx context.Context, s Stores, row legacy.CurrencyRow) (string, bool, error) {
				code := strings.TrimSpace(row.Code)
				if code == "" {
					return "", false, nil
				}
				existing, err := s.Currencies().ByCode(ctx, code)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.CurrencyRow) (string, error) {
			c, err := models.NewCurrency(row.Code, row.Name)
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return c.ID, nil
			}
			return c.ID, s.Currencies().Create(ctx, c)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.CurrencyRow) error {
			list, err := s.Currencies().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked currency %s not found", localID)
			}
			c := list[0]
			if err := c.Update(row.Code, row.Name); err != nil {
				return err
			}
			if run.DryRun {
				return nil
			}
			return s.Currencies().Update(ctx, &c)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.Currencies().Delete(ctx, id)
			}}
		},
	})
}

// NewUnitHandler syncs units of measure, adopting by code. Units are the
// family the empty-overwrite guardrail was originally written for; the
// shared pass enforces it for everyone.
func NewUnitHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	return newFlatHandler(stores, flatSpec[legacy.UnitRow]{
		scope:        ScopeUnits,
		entityType:   models.EntityTypeUnit,
		externalKind: models.KindUnit,
		sourceEntity: models.KindUnit,
		counterKey:   "Unit",
		read:         gateway.ReadUnitsDelta,
		externalID:   func(r legacy.UnitRow) int64 { return r.ID },
		adopt: NaturalKeyStrategy[legacy.UnitRow]{
			Name: "unit-by-code",
			Find: func(ctx context.Context, s Stores, row legacy.UnitRow) (string, bool, error) {
				code := strings.TrimSpace(row.Code)
				if code == "" {
					return "", false, nil
				}
				existing, err := s.Units().ByCode(ctx, code)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.UnitRow) (string, error) {
			u, err := models.NewUnit(row.Code, row.Name)
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return u.ID, nil
			}
			return u.ID, s.Units().Create(ctx, u)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.UnitRow) error {
			list, err := s.Units().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked unit %s not found", localID)
			}
			u := list[0]
			if err := u.Update(row.Code, row.Name); err != nil {
				return err
			}
			if run.DryRun {
				return nil
			}
			return s.Units().Update(ctx, &u)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{
				del: func(ctx context.Context, id string) error {
					return s.Units().Delete(ctx, id)
				},
				deact: func(ctx context.Context, id string) error {
					return s.Units().Deactivate(ctx, id)
				},
			}
		},
	})
}

// NewParameterSetHandler syncs parameter set definitions, adopting by name.
func NewParameterSetHandler(stores Stores, gateway legacy.DeltaReader) Handler {
	return newFlatHandler(stores, flatSpec[legacy.ParameterSetRow]{
		scope:        ScopeParameterSets,
		entityType:   models.EntityTypeParameterSet,
		externalKind: models.KindParamSet,
		sourceEntity: models.KindParamSet,
		counterKey:   "ParameterSet",
		read:         gateway.ReadParameterSetsDelta,
		externalID:   func(r legacy.ParameterSetRow) int64 { return r.ID },
		adopt: NaturalKeyStrategy[legacy.ParameterSetRow]{
			Name: "parameter-set-by-name",
			Find: func(ctx context.Context, s Stores, row legacy.ParameterSetRow) (string, bool, error) {
				name := strings.TrimSpace(row.Name)
				if name == "" {
					return "", false, nil
				}
				existing, err := s.ParameterSets().ByName(ctx, name)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.ParameterSetRow) (string, error) {
			p, err := models.NewParameterSet(row.Name)
			if err != nil {
				return "", err
			}
			if run.DryRun {
				return p.ID, nil
			}
			return p.ID, s.ParameterSets().Create(ctx, p)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.ParameterSetRow) error {
			list, err := s.ParameterSets().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked parameter set %s not found", localID)
			}
			p := list[0]
			if err := p.Rename(row.Name); err != nil {
				return err
			}
			if run.DryRun {
				return nil
			}
			return s.ParameterSets().Update(ctx, &p)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{del: func(ctx context.Context, id string) error {
				return s.ParameterSets().Delete(ctx, id)
			}}
		},
	})
}
