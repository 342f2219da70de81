package repository

import (
	"context"

	"github.com/Paashik/MyIS-sub000/internal/sync"
	"gorm.io/gorm"
)

// Store is the gorm-backed implementation of the store surface sync handlers
// consume. A Store is cheap; transaction-scoped stores are built per InTx
// call around the transaction handle.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Links() sync.LinkStore             { return NewLinkRepository(s.db) }
func (s *Store) Cursors() sync.CursorStore         { return NewCursorRepository(s.db) }
func (s *Store) RunErrors() sync.RunErrorStore     { return NewRunErrorRepository(s.db) }
func (s *Store) Sequences() sync.SequenceStore     { return NewSequenceRepository(s.db) }
func (s *Store) BodyTypes() sync.BodyTypeStore     { return NewBodyTypeRepository(s.db) }
func (s *Store) Currencies() sync.CurrencyStore    { return NewCurrencyRepository(s.db) }
func (s *Store) Units() sync.UnitStore             { return NewUnitRepository(s.db) }
func (s *Store) ParameterSets() sync.ParameterSetStore {
	return NewParameterSetRepository(s.db)
}
func (s *Store) Statuses() sync.StatusStore            { return NewStatusRepository(s.db) }
func (s *Store) Counterparties() sync.CounterpartyStore {
	return NewCounterpartyRepository(s.db)
}
func (s *Store) Persons() sync.PersonStore       { return NewPersonRepository(s.db) }
func (s *Store) Users() sync.UserStore           { return NewUserRepository(s.db) }
func (s *Store) ItemGroups() sync.ItemGroupStore { return NewItemGroupRepository(s.db) }
func (s *Store) Items() sync.ItemStore           { return NewItemRepository(s.db) }
func (s *Store) Products() sync.ProductStore     { return NewProductRepository(s.db) }
func (s *Store) Orders() sync.OrderStore         { return NewOrderRepository(s.db) }
func (s *Store) Boms() sync.BomStore             { return NewBomRepository(s.db) }

// InTx runs fn against a transaction-scoped store set; a returned error
// rolls the whole transaction back.
func (s *Store) InTx(ctx context.Context, fn func(sync.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// SupportsRowLocking is true for the postgres backend; sequence reads lock
// their counter row for the enclosing transaction.
func (s *Store) SupportsRowLocking() bool { return true }
