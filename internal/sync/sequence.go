package sync

import (
	"context"
	"fmt"

	"github.com/Paashik/MyIS-sub000/internal/models"
)

// Allocator hands out nomenclature numbers: strictly increasing, one
// independent counter per item kind, scoped to the prefix the counter was
// seeded under. A fresh counter is seeded at max(existing numbers under the
// prefix)+1, never at 1, so manually created or previously imported codes
// are not collided with. A kind whose resolved prefix changed is reseeded
// under the new prefix.
//
// In dry-run mode allocation is simulated on in-memory counters seeded from
// the same max-used computation; nothing is persisted and simulated numbers
// are not reserved.
type Allocator struct {
	dryRun bool
	// maxUsed computes the highest sequence number already present in the
	// domain store under a prefix.
	maxUsed func(ctx context.Context, prefix string) (int, error)
	// mem holds dry-run counters, keyed by item kind.
	mem map[models.ItemKind]*models.ItemSequence
}

// NewAllocator builds an allocator over the given max-used lookup.
func NewAllocator(dryRun bool, maxUsed func(ctx context.Context, prefix string) (int, error)) *Allocator {
	return &Allocator{
		dryRun:  dryRun,
		maxUsed: maxUsed,
		mem:     make(map[models.ItemKind]*models.ItemSequence),
	}
}

// Allocate returns the next code for (kind, prefix). The store passed in is
// the caller's transaction-scoped store set, so the counter increment
// commits together with the entities that consumed the numbers. When the
// backend supports row locking the counter row is locked for the
// transaction; otherwise the read-then-write is best effort, acceptable
// because runs are single-writer.
func (a *Allocator) Allocate(ctx context.Context, s Stores, kind models.ItemKind, prefix string) (string, error) {
	if !models.ValidNomenclaturePrefix(prefix) {
		return "", fmt.Errorf("invalid nomenclature prefix %q for kind %s", prefix, kind)
	}

	if a.dryRun {
		return a.allocateSimulated(ctx, kind, prefix)
	}

	seq, err := s.Sequences().Get(ctx, string(kind), s.SupportsRowLocking())
	if err != nil {
		return "", fmt.Errorf("failed to load sequence for kind %s: %w", kind, err)
	}
	if seq == nil || seq.Prefix != prefix {
		next, err := a.seed(ctx, prefix)
		if err != nil {
			return "", err
		}
		seq = &models.ItemSequence{ItemKind: string(kind), Prefix: prefix, NextNumber: next}
	}

	code, err := models.FormatNomenclatureNumber(seq.Prefix, seq.NextNumber)
	if err != nil {
		return "", err
	}
	seq.NextNumber++
	if err := s.Sequences().Save(ctx, seq); err != nil {
		return "", fmt.Errorf("failed to save sequence for kind %s: %w", kind, err)
	}
	return code, nil
}

func (a *Allocator) allocateSimulated(ctx context.Context, kind models.ItemKind, prefix string) (string, error) {
	seq := a.mem[kind]
	if seq == nil || seq.Prefix != prefix {
		next, err := a.seed(ctx, prefix)
		if err != nil {
			return "", err
		}
		seq = &models.ItemSequence{ItemKind: string(kind), Prefix: prefix, NextNumber: next}
		a.mem[kind] = seq
	}
	code, err := models.FormatNomenclatureNumber(seq.Prefix, seq.NextNumber)
	if err != nil {
		return "", err
	}
	seq.NextNumber++
	return code, nil
}

func (a *Allocator) seed(ctx context.Context, prefix string) (int, error) {
	max, err := a.maxUsed(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to compute max used number under %s: %w", prefix, err)
	}
	return max + 1, nil
}
