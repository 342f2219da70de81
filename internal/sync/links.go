package sync

import (
	"context"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"github.com/google/uuid"
)

// NaturalKeyStrategy is the secondary resolution strategy used to adopt
// pre-existing local rows into the identity ledger when no link exists yet.
// Each entity family declares exactly one (by code, by name, ...); the name
// is for logs and tests.
type NaturalKeyStrategy[R any] struct {
	Name string
	Find func(ctx context.Context, s Stores, row R) (localID string, ok bool, err error)
}

// linkSet is the batch-prefetched slice of ledger links for one pass,
// indexed by external id.
type linkSet struct {
	byExternal map[int64]*models.ExternalLink
}

func prefetchLinks(ctx context.Context, ls LinkStore, entityType, kind string, ids []int64) (*linkSet, error) {
	set := &linkSet{byExternal: make(map[int64]*models.ExternalLink, len(ids))}
	if len(ids) == 0 {
		return set, nil
	}
	links, err := ls.ByExternalIDs(ctx, entityType, models.ExternalSystemComponent2020, kind, ids)
	if err != nil {
		return nil, err
	}
	for i := range links {
		set.byExternal[links[i].ExternalID] = &links[i]
	}
	return set, nil
}

func (s *linkSet) get(externalID int64) *models.ExternalLink {
	return s.byExternal[externalID]
}

// registerLink creates a ledger entry for a newly seen external id. Dry
// runs register nothing.
func registerLink(ctx context.Context, s Stores, run *Run, entityType, kind string, externalID int64, localID string, sourceType *string) error {
	if run.DryRun {
		return nil
	}
	now := time.Now()
	return s.Links().Create(ctx, &models.ExternalLink{
		ID:                 uuid.New().String(),
		LocalEntityType:    entityType,
		LocalEntityID:      localID,
		ExternalSystem:     models.ExternalSystemComponent2020,
		ExternalEntityKind: kind,
		ExternalID:         externalID,
		SourceType:         sourceType,
		SyncedAt:           now,
	})
}

// touchLink refreshes synced_at on re-sighting of a known external id.
func touchLink(ctx context.Context, s Stores, run *Run, link *models.ExternalLink, sourceType *string) error {
	if run.DryRun {
		return nil
	}
	return s.Links().Touch(ctx, link.ID, time.Now(), sourceType)
}
