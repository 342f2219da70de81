package sync

import (
	"context"
	"testing"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

func TestItemGroupHandler_ParentsResolveWithinOnePass(t *testing.T) {
	stores := newFakeStores()
	index := NewGroupIndex()
	// Child listed before its parent; depth ordering must fix that.
	handler := NewItemGroupHandler(stores, &fakeGateway{groups: []legacy.ItemGroupRow{
		{ID: 10, Name: "Brackets", ParentID: 1},
		{ID: 1, Name: "Parts"},
	}}, index)

	run := NewRun("", "conn-1", ModeFull, false)
	processed, err := handler.Sync(context.Background(), run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if processed != 2 {
		t.Fatalf("expected 2 processed, got %d", processed)
	}

	rootLink := stores.linkFor(models.EntityTypeItemGroup, models.KindGroup, 1)
	childLink := stores.linkFor(models.EntityTypeItemGroup, models.KindGroup, 10)
	if rootLink == nil || childLink == nil {
		t.Fatal("expected both groups linked")
	}
	child := stores.itemGroups[childLink.LocalEntityID]
	if child.ParentID == nil || *child.ParentID != rootLink.LocalEntityID {
		t.Error("expected the child to point at the parent created in the same pass")
	}
}

func TestItemGroupHandler_AbbreviationOnlyOnRoots(t *testing.T) {
	stores := newFakeStores()
	handler := NewItemGroupHandler(stores, &fakeGateway{groups: []legacy.ItemGroupRow{
		{ID: 1, Name: "Parts"},
		{ID: 10, Name: "Brackets", ParentID: 1},
	}}, NewGroupIndex())

	run := NewRun("", "conn-1", ModeFull, false)
	if _, err := handler.Sync(context.Background(), run); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	root := stores.itemGroups[stores.linkFor(models.EntityTypeItemGroup, models.KindGroup, 1).LocalEntityID]
	child := stores.itemGroups[stores.linkFor(models.EntityTypeItemGroup, models.KindGroup, 10).LocalEntityID]
	if root.Abbreviation == nil || *root.Abbreviation != "DET" {
		t.Error("expected abbreviation DET on the root group")
	}
	if child.Abbreviation != nil {
		t.Error("expected no abbreviation on a child group")
	}
}

func TestItemGroupHandler_AdoptsByName(t *testing.T) {
	stores := newFakeStores()
	existing, err := models.NewItemGroup("Parts", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	stores.itemGroups[existing.ID] = *existing

	handler := NewItemGroupHandler(stores, &fakeGateway{groups: []legacy.ItemGroupRow{
		{ID: 1, Name: "Parts"},
	}}, NewGroupIndex())

	run := NewRun("", "conn-1", ModeFull, false)
	if _, err := handler.Sync(context.Background(), run); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(stores.itemGroups) != 1 {
		t.Fatalf("expected adoption, got %d groups", len(stores.itemGroups))
	}
	link := stores.linkFor(models.EntityTypeItemGroup, models.KindGroup, 1)
	if link == nil || link.LocalEntityID != existing.ID {
		t.Error("expected link registered to the adopted group")
	}
}

func TestItemGroupHandler_PublishesIndex(t *testing.T) {
	stores := newFakeStores()
	index := NewGroupIndex()
	handler := NewItemGroupHandler(stores, &fakeGateway{groups: []legacy.ItemGroupRow{
		{ID: 1, Name: "Parts"},
		{ID: 10, Name: "Brackets", ParentID: 1},
	}}, index)

	run := NewRun("", "conn-1", ModeFull, false)
	if _, err := handler.Sync(context.Background(), run); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if kind := index.KindFor(10); kind != models.ItemKindPart {
		t.Errorf("expected published index to classify via root, got %s", kind)
	}
	if _, ok := index.LocalID(10); !ok {
		t.Error("expected published index to resolve local ids")
	}
}
