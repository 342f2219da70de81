package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/Paashik/MyIS-sub000/internal/models"
)

func unitDeleter(s Stores) EntityDeleter {
	return deleterFuncs{
		del: func(ctx context.Context, id string) error {
			return s.Units().Delete(ctx, id)
		},
		deact: func(ctx context.Context, id string) error {
			return s.Units().Deactivate(ctx, id)
		},
	}
}

func bodyTypeDeleter(s Stores) EntityDeleter {
	return deleterFuncs{del: func(ctx context.Context, id string) error {
		return s.BodyTypes().Delete(ctx, id)
	}}
}

func addUnitLink(stores *fakeStores, linkID, localID string, externalID int64) {
	stores.links = append(stores.links, models.ExternalLink{
		ID: linkID, LocalEntityType: models.EntityTypeUnit, LocalEntityID: localID,
		ExternalSystem: models.ExternalSystemComponent2020, ExternalEntityKind: models.KindUnit, ExternalID: externalID,
	})
}

func TestReconcileDeletions_DeletesFullyUnseenEntities(t *testing.T) {
	stores := newFakeStores()
	u, _ := models.NewUnit("pc", "Piece")
	stores.units[u.ID] = *u
	addUnitLink(stores, "l1", u.ID, 10)

	run := NewRun("", "conn-1", ModeOverwrite, false)
	seen := map[int64]struct{}{11: {}}
	if err := ReconcileDeletions(context.Background(), stores, run, models.EntityTypeUnit, models.KindUnit, seen, unitDeleter, "Unit"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := stores.units[u.ID]; ok {
		t.Error("expected unseen unit deleted")
	}
	if len(stores.links) != 0 {
		t.Error("expected link deleted")
	}
	if got := run.Counter("UnitDeleted"); got != 1 {
		t.Errorf("expected UnitDeleted counter 1, got %d", got)
	}
}

func TestReconcileDeletions_PartiallySeenEntitySurvives(t *testing.T) {
	stores := newFakeStores()
	u, _ := models.NewUnit("kg", "Kilogram")
	stores.units[u.ID] = *u
	addUnitLink(stores, "l1", u.ID, 10)
	addUnitLink(stores, "l2", u.ID, 11)

	run := NewRun("", "conn-1", ModeOverwrite, false)
	seen := map[int64]struct{}{10: {}}
	if err := ReconcileDeletions(context.Background(), stores, run, models.EntityTypeUnit, models.KindUnit, seen, unitDeleter, "Unit"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := stores.units[u.ID]; !ok {
		t.Fatal("expected partially seen unit to survive")
	}
	if stores.units[u.ID].IsActive != true {
		t.Error("expected surviving unit to stay active")
	}
	// Only the stale link goes.
	if len(stores.links) != 1 || stores.links[0].ID != "l1" {
		t.Errorf("expected only link l1 to remain, got %v", stores.links)
	}
}

func TestReconcileDeletions_ReferencedEntityIsDeactivated(t *testing.T) {
	stores := newFakeStores()
	u, _ := models.NewUnit("pc", "Piece")
	stores.units[u.ID] = *u
	addUnitLink(stores, "l1", u.ID, 10)
	stores.deleteErr[u.ID] = errors.New("violates foreign key constraint")

	run := NewRun("", "conn-1", ModeOverwrite, false)
	seen := map[int64]struct{}{11: {}}
	if err := ReconcileDeletions(context.Background(), stores, run, models.EntityTypeUnit, models.KindUnit, seen, unitDeleter, "Unit"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, ok := stores.units[u.ID]
	if !ok {
		t.Fatal("expected referenced unit to survive")
	}
	if got.IsActive {
		t.Error("expected referenced unit deactivated")
	}
	if len(stores.links) != 0 {
		t.Error("expected its links deleted anyway")
	}
	if len(run.Errors()) != 1 {
		t.Fatalf("expected 1 substitution error, got %d", len(run.Errors()))
	}
	if got := run.Counter("UnitDeleted"); got != 0 {
		t.Errorf("expected no deletions counted, got %d", got)
	}
}

func TestReconcileDeletions_DeactivationUnsupportedIsReported(t *testing.T) {
	stores := newFakeStores()
	b, _ := models.NewBodyType("Sedan")
	stores.bodyTypes[b.ID] = *b
	stores.links = append(stores.links, models.ExternalLink{
		ID: "l1", LocalEntityType: models.EntityTypeBodyType, LocalEntityID: b.ID,
		ExternalSystem: models.ExternalSystemComponent2020, ExternalEntityKind: models.KindBody, ExternalID: 10,
	})
	stores.deleteErr[b.ID] = errors.New("violates foreign key constraint")

	run := NewRun("", "conn-1", ModeOverwrite, false)
	seen := map[int64]struct{}{11: {}}
	if err := ReconcileDeletions(context.Background(), stores, run, models.EntityTypeBodyType, models.KindBody, seen, bodyTypeDeleter, "BodyType"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := stores.bodyTypes[b.ID]; !ok {
		t.Error("expected undeletable body type to remain")
	}
	if len(run.Errors()) != 1 {
		t.Fatalf("expected 1 run error, got %d", len(run.Errors()))
	}
}

func TestReconcileDeletions_EmptySeenIsGuarded(t *testing.T) {
	stores := newFakeStores()
	u, _ := models.NewUnit("pc", "Piece")
	stores.units[u.ID] = *u
	addUnitLink(stores, "l1", u.ID, 10)

	run := NewRun("", "conn-1", ModeOverwrite, false)
	if err := ReconcileDeletions(context.Background(), stores, run, models.EntityTypeUnit, models.KindUnit, map[int64]struct{}{}, unitDeleter, "Unit"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := stores.units[u.ID]; !ok {
		t.Error("expected nothing deleted for an empty seen set")
	}
	if len(run.Errors()) != 1 {
		t.Errorf("expected guardrail error recorded, got %d", len(run.Errors()))
	}
}
