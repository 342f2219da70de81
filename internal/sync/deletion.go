package sync

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Paashik/MyIS-sub000/internal/models"
)

// ReconcileDeletions implements overwrite semantics after a full read:
// local entities whose every link of this (system, kind) space is absent
// from the just-seen external id set are deleted, unless referential
// constraints forbid it. Entities with at least one surviving link only
// lose their stale link rows.
//
// The bulk path deletes all candidates in one transaction; when that fails
// (most commonly a foreign key from another aggregate) each candidate is
// retried individually, falling back to deactivation where the family
// supports it.
func ReconcileDeletions(ctx context.Context, stores Stores, run *Run, entityType, kind string, seen map[int64]struct{}, makeDeleter func(Stores) EntityDeleter, counterKey string) error {
	if len(seen) == 0 {
		run.AddError(entityType, kind, nil, errEmptyOverwrite)
		return nil
	}

	links, err := stores.Links().ByKind(ctx, entityType, models.ExternalSystemComponent2020, kind)
	if err != nil {
		return fmt.Errorf("failed to load links for deletion reconciliation: %w", err)
	}

	byLocal := make(map[string][]models.ExternalLink)
	for _, link := range links {
		byLocal[link.LocalEntityID] = append(byLocal[link.LocalEntityID], link)
	}

	var candidates []string
	var candidateLinkIDs []string
	var staleLinkIDs []string
	for localID, entityLinks := range byLocal {
		missing := 0
		var missingIDs []string
		for _, link := range entityLinks {
			if _, ok := seen[link.ExternalID]; !ok {
				missing++
				missingIDs = append(missingIDs, link.ID)
			}
		}
		if missing == 0 {
			continue
		}
		if missing == len(entityLinks) {
			candidates = append(candidates, localID)
			candidateLinkIDs = append(candidateLinkIDs, missingIDs...)
		} else {
			// Partially still present: the entity survives, only the
			// stale links go.
			staleLinkIDs = append(staleLinkIDs, missingIDs...)
		}
	}

	if len(staleLinkIDs) > 0 {
		if err := stores.InTx(ctx, func(s Stores) error {
			return s.Links().Delete(ctx, staleLinkIDs)
		}); err != nil {
			return fmt.Errorf("failed to delete stale links: %w", err)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	deleted := 0
	bulkErr := stores.InTx(ctx, func(s Stores) error {
		if err := s.Links().Delete(ctx, candidateLinkIDs); err != nil {
			return err
		}
		del := makeDeleter(s)
		for _, localID := range candidates {
			if err := del.Delete(ctx, localID); err != nil {
				return err
			}
		}
		return nil
	})
	if bulkErr == nil {
		run.Count(counterKey+"Deleted", len(candidates))
		return nil
	}

	log.Printf("Bulk delete of %d %s entities failed, retrying per entity: %v", len(candidates), entityType, bulkErr)

	linkIDsByLocal := make(map[string][]string)
	for localID, entityLinks := range byLocal {
		for _, link := range entityLinks {
			linkIDsByLocal[localID] = append(linkIDsByLocal[localID], link.ID)
		}
	}

	for _, localID := range candidates {
		localID := localID
		err := stores.InTx(ctx, func(s Stores) error {
			if err := s.Links().Delete(ctx, linkIDsByLocal[localID]); err != nil {
				return err
			}
			return makeDeleter(s).Delete(ctx, localID)
		})
		if err == nil {
			deleted++
			continue
		}

		// Most likely another aggregate still references the entity.
		// Drop its links, deactivate when the family supports it, and
		// report the substitution as a non-fatal error.
		if linkErr := stores.InTx(ctx, func(s Stores) error {
			return s.Links().Delete(ctx, linkIDsByLocal[localID])
		}); linkErr != nil {
			run.AddError(entityType, kind, nil, fmt.Errorf("failed to delete links of %s: %w", localID, linkErr))
			continue
		}

		deactErr := makeDeleter(stores).Deactivate(ctx, localID)
		switch {
		case deactErr == nil:
			run.AddError(entityType, kind, nil, fmt.Errorf("entity %s is still referenced and was deactivated instead of deleted: %w", localID, err))
		case errors.Is(deactErr, ErrDeactivateUnsupported):
			run.AddError(entityType, kind, nil, fmt.Errorf("failed to delete entity %s: %w", localID, err))
		default:
			run.AddError(entityType, kind, nil, fmt.Errorf("failed to delete or deactivate entity %s: %w", localID, deactErr))
		}
	}

	run.Count(counterKey+"Deleted", deleted)
	return nil
}
