package legacy

import (
	"context"
	"time"
)

// Source row types as the Component2020 bridge returns them. Row ids are the
// legacy source's numeric primary keys and double as the delta cursor keys.

type BodyTypeRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CurrencyRow struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type UnitRow struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type ParameterSetRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type StatusRow struct {
	ID        int64  `json:"id"`
	Kind      int    `json:"kind"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type CounterpartyRow struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TIN        string `json:"tin"`
	IsProvider bool   `json:"is_provider"`
}

type PersonRow struct {
	ID         int64  `json:"id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	Position   string `json:"position"`
}

// UserRow carries role assignment as free text; tokens are matched against
// the local role dictionary, unresolved ones are dropped.
type UserRow struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Roles    string `json:"roles"`
}

type ItemRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	GroupID  int64  `json:"group_id"`
	UnitCode string `json:"unit_code"`
}

type OrderRow struct {
	ID      int64      `json:"id"`
	Number  string     `json:"number"`
	FirmID  int64      `json:"firm_id"`
	Date    *time.Time `json:"date"`
	Comment string     `json:"comment"`
}

type ItemGroupRow struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ParentID       int64  `json:"parent_id"`
	NoAbbreviation bool   `json:"no_abbreviation"`
}

type ComplectRow struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Number  string `json:"number"`
	GroupID int64  `json:"group_id"`
}

type BomLineRow struct {
	ID       int64   `json:"id"`
	DetailID int64   `json:"detail_id"`
	Quantity float64 `json:"quantity"`
	Position int     `json:"position"`
}

type BomRow struct {
	ID         int64        `json:"id"`
	ComplectID int64        `json:"complect_id"`
	Version    int          `json:"version"`
	Status     int          `json:"status"`
	Lines      []BomLineRow `json:"lines"`
}

type RoleRow struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// DeltaReader reads rows changed since a cursor key, in source order.
// lastKey == nil means "from the beginning".
type DeltaReader interface {
	ReadBodyTypesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]BodyTypeRow, error)
	ReadCurrenciesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]CurrencyRow, error)
	ReadUnitsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]UnitRow, error)
	ReadParameterSetsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]ParameterSetRow, error)
	ReadStatusesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]StatusRow, error)
	ReadCounterpartiesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]CounterpartyRow, error)
	ReadPersonsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]PersonRow, error)
	ReadUsersDelta(ctx context.Context, connectionID string, lastKey *int64) ([]UserRow, error)
	ReadItemsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]ItemRow, error)
	ReadOrdersDelta(ctx context.Context, connectionID string, lastKey *int64) ([]OrderRow, error)
}

// SnapshotReader performs full hierarchical reads; these sources have no
// usable delta key.
type SnapshotReader interface {
	ReadItemGroups(ctx context.Context, connectionID string) ([]ItemGroupRow, error)
	ReadBoms(ctx context.Context, connectionID string) ([]BomRow, error)
	ReadComplects(ctx context.Context, connectionID string) ([]ComplectRow, error)
	ReadRoles(ctx context.Context, connectionID string) ([]RoleRow, error)
}

// Gateway is the full read surface of one legacy connection.
type Gateway interface {
	DeltaReader
	SnapshotReader
}
