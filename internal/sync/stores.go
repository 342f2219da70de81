package sync

import (
	"context"
	"errors"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
)

// Sentinel errors surfaced by stores and shared helpers.
var (
	// ErrLinkConflict means an external id is already linked to a
	// different local entity. Links are never silently repointed; the
	// affected row fails hard.
	ErrLinkConflict = errors.New("external id already linked to a different local entity")
	// ErrDeactivateUnsupported is returned by deleters for families
	// without an active flag.
	ErrDeactivateUnsupported = errors.New("entity does not support deactivation")
)

// LinkStore is the external identity ledger.
type LinkStore interface {
	// ByExternalIDs batch-loads links for the given external ids.
	ByExternalIDs(ctx context.Context, entityType, system, kind string, ids []int64) ([]models.ExternalLink, error)
	// ByKind loads every link of one (entity type, system, kind) space.
	ByKind(ctx context.Context, entityType, system, kind string) ([]models.ExternalLink, error)
	// Create registers a new link; ErrLinkConflict if the identity tuple
	// is already taken.
	Create(ctx context.Context, link *models.ExternalLink) error
	// Touch refreshes synced_at and the source type tag.
	Touch(ctx context.Context, id string, syncedAt time.Time, sourceType *string) error
	// Delete removes link rows by id.
	Delete(ctx context.Context, ids []string) error
}

// CursorStore persists per (connection, source entity) delta cursors.
type CursorStore interface {
	// Get returns nil when no cursor exists yet.
	Get(ctx context.Context, connectionID, sourceEntity string) (*models.SyncCursor, error)
	Upsert(ctx context.Context, cursor *models.SyncCursor) error
}

// RunErrorStore persists structured run errors.
type RunErrorStore interface {
	CreateBatch(ctx context.Context, errs []models.SyncRunError) error
}

// SequenceStore persists nomenclature counters. When lock is true and the
// backing store supports row locking, the row is locked for the enclosing
// transaction.
type SequenceStore interface {
	Get(ctx context.Context, itemKind string, lock bool) (*models.ItemSequence, error)
	Save(ctx context.Context, seq *models.ItemSequence) error
}

type BodyTypeStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.BodyType, error)
	ByName(ctx context.Context, name string) (*models.BodyType, error)
	Create(ctx context.Context, b *models.BodyType) error
	Update(ctx context.Context, b *models.BodyType) error
	Delete(ctx context.Context, id string) error
}

type CurrencyStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Currency, error)
	ByCode(ctx context.Context, code string) (*models.Currency, error)
	Create(ctx context.Context, c *models.Currency) error
	Update(ctx context.Context, c *models.Currency) error
	Delete(ctx context.Context, id string) error
}

type UnitStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Unit, error)
	ByCode(ctx context.Context, code string) (*models.Unit, error)
	Create(ctx context.Context, u *models.Unit) error
	Update(ctx context.Context, u *models.Unit) error
	Delete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type ParameterSetStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.ParameterSet, error)
	ByName(ctx context.Context, name string) (*models.ParameterSet, error)
	Create(ctx context.Context, p *models.ParameterSet) error
	Update(ctx context.Context, p *models.ParameterSet) error
	Delete(ctx context.Context, id string) error
}

type StatusStore interface {
	GroupByKind(ctx context.Context, kind models.StatusKind) (*models.StatusGroup, error)
	CreateGroup(ctx context.Context, g *models.StatusGroup) error
	ByIDs(ctx context.Context, ids []string) ([]models.Status, error)
	ByName(ctx context.Context, groupID, name string) (*models.Status, error)
	Create(ctx context.Context, s *models.Status) error
	Update(ctx context.Context, s *models.Status) error
	Delete(ctx context.Context, id string) error
}

type CounterpartyStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Counterparty, error)
	ByName(ctx context.Context, name string) (*models.Counterparty, error)
	Create(ctx context.Context, c *models.Counterparty) error
	Update(ctx context.Context, c *models.Counterparty) error
	Delete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type PersonStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Person, error)
	ByFullName(ctx context.Context, fullName string) (*models.Person, error)
	Create(ctx context.Context, p *models.Person) error
	Update(ctx context.Context, p *models.Person) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.User, error)
	ByLogin(ctx context.Context, login string) (*models.User, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type ItemGroupStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.ItemGroup, error)
	ByName(ctx context.Context, name string) (*models.ItemGroup, error)
	Create(ctx context.Context, g *models.ItemGroup) error
	Update(ctx context.Context, g *models.ItemGroup) error
	Delete(ctx context.Context, id string) error
}

type ItemStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Item, error)
	ByNumber(ctx context.Context, number string) (*models.Item, error)
	// MaxNumber returns the highest sequence number used under the prefix,
	// 0 when none. Seeds freshly created counters.
	MaxNumber(ctx context.Context, prefix string) (int, error)
	Create(ctx context.Context, i *models.Item) error
	Update(ctx context.Context, i *models.Item) error
	Delete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type ProductStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	ByNumber(ctx context.Context, number string) (*models.Product, error)
	MaxNumber(ctx context.Context, prefix string) (int, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type OrderStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.CustomerOrder, error)
	ByNumber(ctx context.Context, number string) (*models.CustomerOrder, error)
	Create(ctx context.Context, o *models.CustomerOrder) error
	Update(ctx context.Context, o *models.CustomerOrder) error
	Delete(ctx context.Context, id string) error
}

type BomStore interface {
	ByIDs(ctx context.Context, ids []string) ([]models.BomVersion, error)
	ByProductVersion(ctx context.Context, productID string, version int) (*models.BomVersion, error)
	Create(ctx context.Context, v *models.BomVersion) error
	Update(ctx context.Context, v *models.BomVersion) error
	// ReplaceLines swaps the full line set of one version.
	ReplaceLines(ctx context.Context, bomVersionID string, lines []models.BomLine) error
	Delete(ctx context.Context, id string) error
}

// Stores is the store surface handlers consume. InTx runs fn against a
// transaction-scoped Stores; one call per handler pass gives the
// one-save-per-pass semantics. SupportsRowLocking is an explicit backend
// trait, not inferred from driver names.
type Stores interface {
	Links() LinkStore
	Cursors() CursorStore
	RunErrors() RunErrorStore
	Sequences() SequenceStore
	BodyTypes() BodyTypeStore
	Currencies() CurrencyStore
	Units() UnitStore
	ParameterSets() ParameterSetStore
	Statuses() StatusStore
	Counterparties() CounterpartyStore
	Persons() PersonStore
	Users() UserStore
	ItemGroups() ItemGroupStore
	Items() ItemStore
	Products() ProductStore
	Orders() OrderStore
	Boms() BomStore

	InTx(ctx context.Context, fn func(Stores) error) error
	SupportsRowLocking() bool
}

// EntityDeleter is the deletion surface the overwrite reconciler works
// through. Deactivate returns ErrDeactivateUnsupported for families without
// an active flag.
type EntityDeleter interface {
	Delete(ctx context.Context, localID string) error
	Deactivate(ctx context.Context, localID string) error
}

// deleterFuncs adapts two closures into an EntityDeleter.
type deleterFuncs struct {
	del   func(ctx context.Context, id string) error
	deact func(ctx context.Context, id string) error
}

func (d deleterFuncs) Delete(ctx context.Context, id string) error {
	return d.del(ctx, id)
}

func (d deleterFuncs) Deactivate(ctx context.Context, id string) error {
	if d.deact == nil {
		return ErrDeactivateUnsupported
	}
	return d.deact(ctx, id)
}
