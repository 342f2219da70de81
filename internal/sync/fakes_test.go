package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// fakeStores is an in-memory implementation of Stores. Transactions are not
// simulated; InTx runs the function against the same state, which is enough
// because the tests only inject failures that happen before any mutation.
type fakeStores struct {
	links        []models.ExternalLink
	cursors      map[string]models.SyncCursor
	runErrors    []models.SyncRunError
	sequences    map[string]models.ItemSequence
	bodyTypes    map[string]models.BodyType
	currencies   map[string]models.Currency
	units        map[string]models.Unit
	paramSets    map[string]models.ParameterSet
	statusGroups map[string]models.StatusGroup
	statuses     map[string]models.Status
	firms        map[string]models.Counterparty
	persons      map[string]models.Person
	users        map[string]models.User
	roles        []models.Role
	itemGroups   map[string]models.ItemGroup
	items        map[string]models.Item
	products     map[string]models.Product
	orders       map[string]models.CustomerOrder
	bomVersions  map[string]models.BomVersion
	bomLines     map[string][]models.BomLine

	// deleteErr fails Delete for the given local id, for exercising the
	// deactivation fallback.
	deleteErr map[string]error
	rowLock   bool
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		cursors:      make(map[string]models.SyncCursor),
		sequences:    make(map[string]models.ItemSequence),
		bodyTypes:    make(map[string]models.BodyType),
		currencies:   make(map[string]models.Currency),
		units:        make(map[string]models.Unit),
		paramSets:    make(map[string]models.ParameterSet),
		statusGroups: make(map[string]models.StatusGroup),
		statuses:     make(map[string]models.Status),
		firms:        make(map[string]models.Counterparty),
		persons:      make(map[string]models.Person),
		users:        make(map[string]models.User),
		itemGroups:   make(map[string]models.ItemGroup),
		items:        make(map[string]models.Item),
		products:     make(map[string]models.Product),
		orders:       make(map[string]models.CustomerOrder),
		bomVersions:  make(map[string]models.BomVersion),
		bomLines:     make(map[string][]models.BomLine),
		deleteErr:    make(map[string]error),
	}
}

func (f *fakeStores) InTx(ctx context.Context, fn func(Stores) error) error { return fn(f) }
func (f *fakeStores) SupportsRowLocking() bool                              { return f.rowLock }

func (f *fakeStores) Links() LinkStore                  { return &fakeLinkStore{f} }
func (f *fakeStores) Cursors() CursorStore              { return &fakeCursorStore{f} }
func (f *fakeStores) RunErrors() RunErrorStore          { return &fakeRunErrorStore{f} }
func (f *fakeStores) Sequences() SequenceStore          { return &fakeSequenceStore{f} }
func (f *fakeStores) BodyTypes() BodyTypeStore          { return &fakeBodyTypeStore{f} }
func (f *fakeStores) Currencies() CurrencyStore         { return &fakeCurrencyStore{f} }
func (f *fakeStores) Units() UnitStore                  { return &fakeUnitStore{f} }
func (f *fakeStores) ParameterSets() ParameterSetStore  { return &fakeParameterSetStore{f} }
func (f *fakeStores) Statuses() StatusStore             { return &fakeStatusStore{f} }
func (f *fakeStores) Counterparties() CounterpartyStore { return &fakeCounterpartyStore{f} }
func (f *fakeStores) Persons() PersonStore              { return &fakePersonStore{f} }
func (f *fakeStores) Users() UserStore                  { return &fakeUserStore{f} }
func (f *fakeStores) ItemGroups() ItemGroupStore        { return &fakeItemGroupStore{f} }
func (f *fakeStores) Items() ItemStore                  { return &fakeItemStore{f} }
func (f *fakeStores) Products() ProductStore            { return &fakeProductStore{f} }
func (f *fakeStores) Orders() OrderStore                { return &fakeOrderStore{f} }
func (f *fakeStores) Boms() BomStore                    { return &fakeBomStore{f} }

func (f *fakeStores) cursorKey(connectionID, sourceEntity string) string {
	return connectionID + "|" + sourceEntity
}

func (f *fakeStores) linkFor(entityType, kind string, externalID int64) *models.ExternalLink {
	for i := range f.links {
		l := &f.links[i]
		if l.LocalEntityType == entityType && l.ExternalEntityKind == kind && l.ExternalID == externalID {
			return l
		}
	}
	return nil
}

type fakeLinkStore struct{ f *fakeStores }

func (s *fakeLinkStore) ByExternalIDs(ctx context.Context, entityType, system, kind string, ids []int64) ([]models.ExternalLink, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.ExternalLink
	for _, l := range s.f.links {
		if l.LocalEntityType == entityType && l.ExternalSystem == system && l.ExternalEntityKind == kind && wanted[l.ExternalID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeLinkStore) ByKind(ctx context.Context, entityType, system, kind string) ([]models.ExternalLink, error) {
	var out []models.ExternalLink
	for _, l := range s.f.links {
		if l.LocalEntityType == entityType && l.ExternalSystem == system && l.ExternalEntityKind == kind {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeLinkStore) Create(ctx context.Context, link *models.ExternalLink) error {
	if existing := s.f.linkFor(link.LocalEntityType, link.ExternalEntityKind, link.ExternalID); existing != nil {
		if existing.LocalEntityID == link.LocalEntityID {
			return nil
		}
		return ErrLinkConflict
	}
	s.f.links = append(s.f.links, *link)
	return nil
}

func (s *fakeLinkStore) Touch(ctx context.Context, id string, syncedAt time.Time, sourceType *string) error {
	for i := range s.f.links {
		if s.f.links[i].ID == id {
			s.f.links[i].SyncedAt = syncedAt
			if sourceType != nil {
				s.f.links[i].SourceType = sourceType
			}
			return nil
		}
	}
	return fmt.Errorf("link %s not found", id)
}

func (s *fakeLinkStore) Delete(ctx context.Context, ids []string) error {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	kept := s.f.links[:0]
	for _, l := range s.f.links {
		if !doomed[l.ID] {
			kept = append(kept, l)
		}
	}
	s.f.links = kept
	return nil
}

type fakeCursorStore struct{ f *fakeStores }

func (s *fakeCursorStore) Get(ctx context.Context, connectionID, sourceEntity string) (*models.SyncCursor, error) {
	c, ok := s.f.cursors[s.f.cursorKey(connectionID, sourceEntity)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *fakeCursorStore) Upsert(ctx context.Context, cursor *models.SyncCursor) error {
	s.f.cursors[s.f.cursorKey(cursor.ConnectionID, cursor.SourceEntity)] = *cursor
	return nil
}

type fakeRunErrorStore struct{ f *fakeStores }

func (s *fakeRunErrorStore) CreateBatch(ctx context.Context, errs []models.SyncRunError) error {
	s.f.runErrors = append(s.f.runErrors, errs...)
	return nil
}

type fakeSequenceStore struct{ f *fakeStores }

func (s *fakeSequenceStore) Get(ctx context.Context, itemKind string, lock bool) (*models.ItemSequence, error) {
	seq, ok := s.f.sequences[itemKind]
	if !ok {
		return nil, nil
	}
	return &seq, nil
}

func (s *fakeSequenceStore) Save(ctx context.Context, seq *models.ItemSequence) error {
	s.f.sequences[seq.ItemKind] = *seq
	return nil
}

type fakeBodyTypeStore struct{ f *fakeStores }

func (s *fakeBodyTypeStore) ByIDs(ctx context.Context, ids []string) ([]models.BodyType, error) {
	var out []models.BodyType
	for _, id := range ids {
		if b, ok := s.f.bodyTypes[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBodyTypeStore) ByName(ctx context.Context, name string) (*models.BodyType, error) {
	for _, b := range s.f.bodyTypes {
		if b.Name == name {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (s *fakeBodyTypeStore) Create(ctx context.Context, b *models.BodyType) error {
	s.f.bodyTypes[b.ID] = *b
	return nil
}

func (s *fakeBodyTypeStore) Update(ctx context.Context, b *models.BodyType) error {
	s.f.bodyTypes[b.ID] = *b
	return nil
}

func (s *fakeBodyTypeStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.bodyTypes, id)
	return nil
}

type fakeCurrencyStore struct{ f *fakeStores }

func (s *fakeCurrencyStore) ByIDs(ctx context.Context, ids []string) ([]models.Currency, error) {
	var out []models.Currency
	for _, id := range ids {
		if c, ok := s.f.currencies[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCurrencyStore) ByCode(ctx context.Context, code string) (*models.Currency, error) {
	for _, c := range s.f.currencies {
		if c.Code == code {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeCurrencyStore) Create(ctx context.Context, c *models.Currency) error {
	s.f.currencies[c.ID] = *c
	return nil
}

func (s *fakeCurrencyStore) Update(ctx context.Context, c *models.Currency) error {
	s.f.currencies[c.ID] = *c
	return nil
}

func (s *fakeCurrencyStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.currencies, id)
	return nil
}

type fakeUnitStore struct{ f *fakeStores }

func (s *fakeUnitStore) ByIDs(ctx context.Context, ids []string) ([]models.Unit, error) {
	var out []models.Unit
	for _, id := range ids {
		if u, ok := s.f.units[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUnitStore) ByCode(ctx context.Context, code string) (*models.Unit, error) {
	for _, u := range s.f.units {
		if u.Code == code {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeUnitStore) Create(ctx context.Context, u *models.Unit) error {
	s.f.units[u.ID] = *u
	return nil
}

func (s *fakeUnitStore) Update(ctx context.Context, u *models.Unit) error {
	s.f.units[u.ID] = *u
	return nil
}

func (s *fakeUnitStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.units, id)
	return nil
}

func (s *fakeUnitStore) Deactivate(ctx context.Context, id string) error {
	u, ok := s.f.units[id]
	if !ok {
		return fmt.Errorf("unit %s not found", id)
	}
	u.IsActive = false
	s.f.units[id] = u
	return nil
}

type fakeParameterSetStore struct{ f *fakeStores }

func (s *fakeParameterSetStore) ByIDs(ctx context.Context, ids []string) ([]models.ParameterSet, error) {
	var out []models.ParameterSet
	for _, id := range ids {
		if p, ok := s.f.paramSets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeParameterSetStore) ByName(ctx context.Context, name string) (*models.ParameterSet, error) {
	for _, p := range s.f.paramSets {
		if p.Name == name {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakeParameterSetStore) Create(ctx context.Context, p *models.ParameterSet) error {
	s.f.paramSets[p.ID] = *p
	return nil
}

func (s *fakeParameterSetStore) Update(ctx context.Context, p *models.ParameterSet) error {
	s.f.paramSets[p.ID] = *p
	return nil
}

func (s *fakeParameterSetStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.paramSets, id)
	return nil
}

type fakeStatusStore struct{ f *fakeStores }

func (s *fakeStatusStore) GroupByKind(ctx context.Context, kind models.StatusKind) (*models.StatusGroup, error) {
	for _, g := range s.f.statusGroups {
		if g.Kind == kind {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (s *fakeStatusStore) CreateGroup(ctx context.Context, g *models.StatusGroup) error {
	s.f.statusGroups[g.ID] = *g
	return nil
}

func (s *fakeStatusStore) ByIDs(ctx context.Context, ids []string) ([]models.Status, error) {
	var out []models.Status
	for _, id := range ids {
		if st, ok := s.f.statuses[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *fakeStatusStore) ByName(ctx context.Context, groupID, name string) (*models.Status, error) {
	for _, st := range s.f.statuses {
		if st.GroupID == groupID && st.Name == name {
			st := st
			return &st, nil
		}
	}
	return nil, nil
}

func (s *fakeStatusStore) Create(ctx context.Context, st *models.Status) error {
	s.f.statuses[st.ID] = *st
	return nil
}

func (s *fakeStatusStore) Update(ctx context.Context, st *models.Status) error {
	s.f.statuses[st.ID] = *st
	return nil
}

func (s *fakeStatusStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.statuses, id)
	return nil
}

type fakeCounterpartyStore struct{ f *fakeStores }

func (s *fakeCounterpartyStore) ByIDs(ctx context.Context, ids []string) ([]models.Counterparty, error) {
	var out []models.Counterparty
	for _, id := range ids {
		if c, ok := s.f.firms[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCounterpartyStore) ByName(ctx context.Context, name string) (*models.Counterparty, error) {
	for _, c := range s.f.firms {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeCounterpartyStore) Create(ctx context.Context, c *models.Counterparty) error {
	s.f.firms[c.ID] = *c
	return nil
}

func (s *fakeCounterpartyStore) Update(ctx context.Context, c *models.Counterparty) error {
	s.f.firms[c.ID] = *c
	return nil
}

func (s *fakeCounterpartyStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.firms, id)
	return nil
}

func (s *fakeCounterpartyStore) Deactivate(ctx context.Context, id string) error {
	c, ok := s.f.firms[id]
	if !ok {
		return fmt.Errorf("counterparty %s not found", id)
	}
	c.IsActive = false
	s.f.firms[id] = c
	return nil
}

type fakePersonStore struct{ f *fakeStores }

func (s *fakePersonStore) ByIDs(ctx context.Context, ids []string) ([]models.Person, error) {
	var out []models.Person
	for _, id := range ids {
		if p, ok := s.f.persons[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePersonStore) ByFullName(ctx context.Context, fullName string) (*models.Person, error) {
	for _, p := range s.f.persons {
		if p.FullName() == fullName {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakePersonStore) Create(ctx context.Context, p *models.Person) error {
	s.f.persons[p.ID] = *p
	return nil
}

func (s *fakePersonStore) Update(ctx context.Context, p *models.Person) error {
	s.f.persons[p.ID] = *p
	return nil
}

func (s *fakePersonStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.persons, id)
	return nil
}

type fakeUserStore struct{ f *fakeStores }

func (s *fakeUserStore) ByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := s.f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) ByLogin(ctx context.Context, login string) (*models.User, error) {
	for _, u := range s.f.users {
		if u.Login == login {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.f.roles, nil
}

func (s *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	s.f.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Update(ctx context.Context, u *models.User) error {
	s.f.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.users, id)
	return nil
}

func (s *fakeUserStore) Deactivate(ctx context.Context, id string) error {
	u, ok := s.f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.IsActive = false
	s.f.users[id] = u
	return nil
}

type fakeItemGroupStore struct{ f *fakeStores }

func (s *fakeItemGroupStore) ByIDs(ctx context.Context, ids []string) ([]models.ItemGroup, error) {
	var out []models.ItemGroup
	for _, id := range ids {
		if g, ok := s.f.itemGroups[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeItemGroupStore) ByName(ctx context.Context, name string) (*models.ItemGroup, error) {
	for _, g := range s.f.itemGroups {
		if g.Name == name {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (s *fakeItemGroupStore) Create(ctx context.Context, g *models.ItemGroup) error {
	s.f.itemGroups[g.ID] = *g
	return nil
}

func (s *fakeItemGroupStore) Update(ctx context.Context, g *models.ItemGroup) error {
	s.f.itemGroups[g.ID] = *g
	return nil
}

func (s *fakeItemGroupStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.itemGroups, id)
	return nil
}

type fakeItemStore struct{ f *fakeStores }

func (s *fakeItemStore) ByIDs(ctx context.Context, ids []string) ([]models.Item, error) {
	var out []models.Item
	for _, id := range ids {
		if i, ok := s.f.items[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *fakeItemStore) ByNumber(ctx context.Context, number string) (*models.Item, error) {
	for _, i := range s.f.items {
		if i.Number == number {
			i := i
			return &i, nil
		}
	}
	return nil, nil
}

func (s *fakeItemStore) MaxNumber(ctx context.Context, prefix string) (int, error) {
	max := 0
	for _, i := range s.f.items {
		if p, n, ok := models.ParseNomenclatureNumber(i.Number); ok && p == prefix && n > max {
			max = n
		}
	}
	return max, nil
}

func (s *fakeItemStore) Create(ctx context.Context, i *models.Item) error {
	s.f.items[i.ID] = *i
	return nil
}

func (s *fakeItemStore) Update(ctx context.Context, i *models.Item) error {
	s.f.items[i.ID] = *i
	return nil
}

func (s *fakeItemStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.items, id)
	return nil
}

func (s *fakeItemStore) Deactivate(ctx context.Context, id string) error {
	i, ok := s.f.items[id]
	if !ok {
		return fmt.Errorf("item %s not found", id)
	}
	i.IsActive = false
	s.f.items[id] = i
	return nil
}

type fakeProductStore struct{ f *fakeStores }

func (s *fakeProductStore) ByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := s.f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) ByNumber(ctx context.Context, number string) (*models.Product, error) {
	for _, p := range s.f.products {
		if p.Number == number {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakeProductStore) MaxNumber(ctx context.Context, prefix string) (int, error) {
	max := 0
	for _, p := range s.f.products {
		if pre, n, ok := models.ParseNomenclatureNumber(p.Number); ok && pre == prefix && n > max {
			max = n
		}
	}
	return max, nil
}

func (s *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	s.f.products[p.ID] = *p
	return nil
}

func (s *fakeProductStore) Update(ctx context.Context, p *models.Product) error {
	s.f.products[p.ID] = *p
	return nil
}

func (s *fakeProductStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.products, id)
	return nil
}

func (s *fakeProductStore) Deactivate(ctx context.Context, id string) error {
	p, ok := s.f.products[id]
	if !ok {
		return fmt.Errorf("product %s not found", id)
	}
	p.IsActive = false
	s.f.products[id] = p
	return nil
}

type fakeOrderStore struct{ f *fakeStores }

func (s *fakeOrderStore) ByIDs(ctx context.Context, ids []string) ([]models.CustomerOrder, error) {
	var out []models.CustomerOrder
	for _, id := range ids {
		if o, ok := s.f.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ByNumber(ctx context.Context, number string) (*models.CustomerOrder, error) {
	for _, o := range s.f.orders {
		if o.Number == number {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

func (s *fakeOrderStore) Create(ctx context.Context, o *models.CustomerOrder) error {
	s.f.orders[o.ID] = *o
	return nil
}

func (s *fakeOrderStore) Update(ctx context.Context, o *models.CustomerOrder) error {
	s.f.orders[o.ID] = *o
	return nil
}

func (s *fakeOrderStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.orders, id)
	return nil
}

type fakeBomStore struct{ f *fakeStores }

func (s *fakeBomStore) ByIDs(ctx context.Context, ids []string) ([]models.BomVersion, error) {
	var out []models.BomVersion
	for _, id := range ids {
		if v, ok := s.f.bomVersions[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *fakeBomStore) ByProductVersion(ctx context.Context, productID string, version int) (*models.BomVersion, error) {
	for _, v := range s.f.bomVersions {
		if v.ProductID == productID && v.Version == version {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (s *fakeBomStore) Create(ctx context.Context, v *models.BomVersion) error {
	s.f.bomVersions[v.ID] = *v
	return nil
}

func (s *fakeBomStore) Update(ctx context.Context, v *models.BomVersion) error {
	s.f.bomVersions[v.ID] = *v
	return nil
}

func (s *fakeBomStore) ReplaceLines(ctx context.Context, bomVersionID string, lines []models.BomLine) error {
	s.f.bomLines[bomVersionID] = lines
	return nil
}

func (s *fakeBomStore) Delete(ctx context.Context, id string) error {
	if err := s.f.deleteErr[id]; err != nil {
		return err
	}
	delete(s.f.bomLines, id)
	delete(s.f.bomVersions, id)
	return nil
}

// fakeGateway serves canned rows. Delta reads filter by the cursor the same
// way the bridge does: strictly greater external ids.
type fakeGateway struct {
	bodyTypes  []legacy.BodyTypeRow
	currencies []legacy.CurrencyRow
	units      []legacy.UnitRow
	paramSets  []legacy.ParameterSetRow
	statuses   []legacy.StatusRow
	firms      []legacy.CounterpartyRow
	persons    []legacy.PersonRow
	users      []legacy.UserRow
	items      []legacy.ItemRow
	orders     []legacy.OrderRow
	groups     []legacy.ItemGroupRow
	boms       []legacy.BomRow
	complects  []legacy.ComplectRow
	roles      []legacy.RoleRow
}

func after[R any](rows []R, id func(R) int64, lastKey *int64) []R {
	if lastKey == nil {
		return rows
	}
	var out []R
	for _, r := range rows {
		if id(r) > *lastKey {
			out = append(out, r)
		}
	}
	return out
}

func (g *fakeGateway) ReadBodyTypesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.BodyTypeRow, error) {
	return after(g.bodyTypes, func(r legacy.BodyTypeRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadCurrenciesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.CurrencyRow, error) {
	return after(g.currencies, func(r legacy.CurrencyRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadUnitsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.UnitRow, error) {
	return after(g.units, func(r legacy.UnitRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadParameterSetsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.ParameterSetRow, error) {
	return after(g.paramSets, func(r legacy.ParameterSetRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadStatusesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.StatusRow, error) {
	return after(g.statuses, func(r legacy.StatusRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadCounterpartiesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.CounterpartyRow, error) {
	return after(g.firms, func(r legacy.CounterpartyRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadPersonsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.PersonRow, error) {
	return after(g.persons, func(r legacy.PersonRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadUsersDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.UserRow, error) {
	return after(g.users, func(r legacy.UserRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadItemsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.ItemRow, error) {
	return after(g.items, func(r legacy.ItemRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadOrdersDelta(ctx context.Context, connectionID string, lastKey *int64) ([]legacy.OrderRow, error) {
	return after(g.orders, func(r legacy.OrderRow) int64 { return r.ID }, lastKey), nil
}

func (g *fakeGateway) ReadItemGroups(ctx context.Context, connectionID string) ([]legacy.ItemGroupRow, error) {
	return g.groups, nil
}

func (g *fakeGateway) ReadBoms(ctx context.Context, connectionID string) ([]legacy.BomRow, error) {
	return g.boms, nil
}

func (g *fakeGateway) ReadComplects(ctx context.Context, connectionID string) ([]legacy.ComplectRow, error) {
	return g.complects, nil
}

func (g *fakeGateway) ReadRoles(ctx context.Context, connectionID string) ([]legacy.RoleRow, error) {
	return g.roles, nil
}
