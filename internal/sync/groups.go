package sync

import (
	"context"
	"fmt"
	"log"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// maxGroupDepth caps the parent-chain walk; legacy hierarchies deeper than
// this are treated as malformed.
const maxGroupDepth = 64

// Well-known root groups of the legacy source and the abbreviation /
// classification they imply. Roots not listed here, or marked
// "no abbreviation", fall back to the kind's default prefix.
var (
	rootAbbreviations = map[int64]string{
		1: "DET",
		2: "SBE",
		3: "STD",
		4: "MAT",
		5: "PKI",
	}
	rootKinds = map[int64]models.ItemKind{
		1: models.ItemKindPart,
		2: models.ItemKindAssembly,
		3: models.ItemKindStandard,
		4: models.ItemKindMaterial,
		5: models.ItemKindOther,
	}
)

// Hierarchy is the resolved view of one group snapshot: every node's root
// ancestor and the abbreviation implied by that root.
type Hierarchy struct {
	// Root maps each external group id to its root ancestor's id.
	Root map[int64]int64
	// Abbr maps root ids to their abbreviation, where one applies.
	Abbr map[int64]string
	// Kind maps root ids to the item classification they imply.
	Kind map[int64]models.ItemKind
}

// ResolveHierarchy walks the possibly-cyclic parent graph iteratively with
// a visited set and a depth cap. A node on a cycle, or beyond the cap, is
// treated as its own root; that is logged, not fatal.
func ResolveHierarchy(rows []legacy.ItemGroupRow) *Hierarchy {
	parent := make(map[int64]int64, len(rows))
	noAbbr := make(map[int64]bool, len(rows))
	for _, row := range rows {
		parent[row.ID] = row.ParentID
		noAbbr[row.ID] = row.NoAbbreviation
	}

	h := &Hierarchy{
		Root: make(map[int64]int64, len(rows)),
		Abbr: make(map[int64]string),
		Kind: make(map[int64]models.ItemKind),
	}

	for _, row := range rows {
		root := row.ID
		visited := map[int64]bool{row.ID: true}
		depth := 0
		for {
			p := parent[root]
			if p == 0 {
				break
			}
			if _, known := parent[p]; !known {
				// Parent not in this snapshot; current node is the
				// best root we can determine.
				break
			}
			if visited[p] {
				log.Printf("Warning: group hierarchy cycle at external group %d; treating %d as its own root", p, row.ID)
				root = row.ID
				break
			}
			depth++
			if depth > maxGroupDepth {
				log.Printf("Warning: group hierarchy deeper than %d at external group %d; treating it as its own root", maxGroupDepth, row.ID)
				root = row.ID
				break
			}
			visited[p] = true
			root = p
		}
		h.Root[row.ID] = root

		if _, done := h.Kind[root]; !done {
			if kind, ok := rootKinds[root]; ok {
				h.Kind[root] = kind
			} else {
				h.Kind[root] = models.ItemKindOther
			}
			if abbr, ok := rootAbbreviations[root]; ok && !noAbbr[root] {
				h.Abbr[root] = abbr
			}
		}
	}
	return h
}

// GroupIndex is the shared lookup item and product handlers resolve groups
// through. The item-group handler populates it when it runs; otherwise it
// is rebuilt lazily from a group snapshot and the identity ledger. Runs are
// single-threaded, so no locking.
type GroupIndex struct {
	built     bool
	hierarchy *Hierarchy
	// localByExternal maps external group ids to local item-group ids.
	localByExternal map[int64]string
}

func NewGroupIndex() *GroupIndex {
	return &GroupIndex{}
}

// set installs a freshly computed index; called by the item-group handler.
func (ix *GroupIndex) set(h *Hierarchy, localByExternal map[int64]string) {
	ix.hierarchy = h
	ix.localByExternal = localByExternal
	ix.built = true
}

// Ensure builds the index from a snapshot read and existing ledger links
// when the item-group handler has not run in this pass.
func (ix *GroupIndex) Ensure(ctx context.Context, stores Stores, gateway legacy.SnapshotReader, connectionID string) error {
	if ix.built {
		return nil
	}
	rows, err := gateway.ReadItemGroups(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("failed to read item groups: %w", err)
	}
	links, err := stores.Links().ByKind(ctx, models.EntityTypeItemGroup, models.ExternalSystemComponent2020, models.KindGroup)
	if err != nil {
		return fmt.Errorf("failed to load item group links: %w", err)
	}
	local := make(map[int64]string, len(links))
	for _, link := range links {
		local[link.ExternalID] = link.LocalEntityID
	}
	ix.set(ResolveHierarchy(rows), local)
	return nil
}

// LocalID resolves an external group id to the local item-group id.
func (ix *GroupIndex) LocalID(externalID int64) (string, bool) {
	id, ok := ix.localByExternal[externalID]
	return id, ok
}

// KindFor classifies an item by its group's root; ungrouped rows and
// unknown groups are ItemKindOther.
func (ix *GroupIndex) KindFor(externalGroupID int64) models.ItemKind {
	if ix.hierarchy != nil {
		if root, ok := ix.hierarchy.Root[externalGroupID]; ok {
			return ix.hierarchy.Kind[root]
		}
	}
	return models.ItemKindOther
}

// PrefixFor returns the nomenclature prefix implied by the group's root,
// falling back to the kind's default.
func (ix *GroupIndex) PrefixFor(externalGroupID int64, kind models.ItemKind) string {
	if ix.hierarchy != nil {
		if root, ok := ix.hierarchy.Root[externalGroupID]; ok {
			if abbr, ok := ix.hierarchy.Abbr[root]; ok {
				return abbr
			}
		}
	}
	return kind.DefaultPrefix()
}
