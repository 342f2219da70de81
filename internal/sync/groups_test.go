package sync

import (
	"testing"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

func TestResolveHierarchy_RootsAndAbbreviations(t *testing.T) {
	rows := []legacy.ItemGroupRow{
		{ID: 1, Name: "Parts"},
		{ID: 10, Name: "Brackets", ParentID: 1},
		{ID: 11, Name: "Small brackets", ParentID: 10},
		{ID: 4, Name: "Materials"},
		{ID: 40, Name: "Steel", ParentID: 4},
	}

	h := ResolveHierarchy(rows)

	tests := []struct {
		id   int64
		root int64
	}{
		{1, 1},
		{10, 1},
		{11, 1},
		{4, 4},
		{40, 4},
	}
	for _, tt := range tests {
		if got := h.Root[tt.id]; got != tt.root {
			t.Errorf("root of %d: expected %d, got %d", tt.id, tt.root, got)
		}
	}

	if h.Abbr[1] != "DET" {
		t.Errorf("expected abbreviation DET for root 1, got %q", h.Abbr[1])
	}
	if h.Kind[4] != models.ItemKindMaterial {
		t.Errorf("expected material kind for root 4, got %s", h.Kind[4])
	}
}

func TestResolveHierarchy_CycleBecomesSelfRoot(t *testing.T) {
	rows := []legacy.ItemGroupRow{
		{ID: 20, Name: "A", ParentID: 21},
		{ID: 21, Name: "B", ParentID: 20},
	}

	h := ResolveHierarchy(rows)

	if h.Root[20] != 20 {
		t.Errorf("expected node on a cycle to be its own root, got %d", h.Root[20])
	}
	if h.Root[21] != 21 {
		t.Errorf("expected node on a cycle to be its own root, got %d", h.Root[21])
	}
}

func TestResolveHierarchy_UnknownParentStopsWalk(t *testing.T) {
	rows := []legacy.ItemGroupRow{
		{ID: 30, Name: "Orphan", ParentID: 999},
	}
	h := ResolveHierarchy(rows)
	if h.Root[30] != 30 {
		t.Errorf("expected orphan to root at itself, got %d", h.Root[30])
	}
}

func TestResolveHierarchy_NoAbbreviationFlag(t *testing.T) {
	rows := []legacy.ItemGroupRow{
		{ID: 2, Name: "Assemblies", NoAbbreviation: true},
	}
	h := ResolveHierarchy(rows)
	if _, ok := h.Abbr[2]; ok {
		t.Error("expected no abbreviation for a root marked no-abbreviation")
	}
	if h.Kind[2] != models.ItemKindAssembly {
		t.Errorf("expected assembly kind preserved, got %s", h.Kind[2])
	}
}

func TestGroupIndex_PrefixFallsBackToKindDefault(t *testing.T) {
	ix := NewGroupIndex()
	ix.set(ResolveHierarchy([]legacy.ItemGroupRow{
		{ID: 2, Name: "Assemblies", NoAbbreviation: true},
	}), map[int64]string{2: "local-2"})

	if got := ix.PrefixFor(2, models.ItemKindAssembly); got != "SBE" {
		t.Errorf("expected default prefix SBE, got %s", got)
	}
	if got := ix.PrefixFor(777, models.ItemKindProduct); got != "IZD" {
		t.Errorf("expected product fallback IZD for unknown group, got %s", got)
	}
	if kind := ix.KindFor(777); kind != models.ItemKindOther {
		t.Errorf("expected unknown group to classify as other, got %s", kind)
	}
	if _, ok := ix.LocalID(2); !ok {
		t.Error("expected local id for known group")
	}
}
