package sync

import "context"

// Handler is the contract every entity family implements. Scope names the
// entity family for partial-run selection; Sync performs one reconciliation
// pass and returns the number of successfully processed rows. Row-level
// problems are recorded on the run and never abort the pass; only
// save-level or precondition failures come back as the error.
type Handler interface {
	Scope() string
	Sync(ctx context.Context, run *Run) (int, error)
}

// Handler scope names, in the order the runner invokes them. Item groups
// run before items and products, which consume the group index.
const (
	ScopeBodyTypes      = "bodytypes"
	ScopeCurrencies     = "currencies"
	ScopeUnits          = "units"
	ScopeParameterSets  = "parametersets"
	ScopeStatuses       = "statuses"
	ScopeCounterparties = "counterparties"
	ScopePersons        = "persons"
	ScopeUsers          = "users"
	ScopeItemGroups     = "itemgroups"
	ScopeItems          = "items"
	ScopeProducts       = "products"
	ScopeOrders         = "orders"
	ScopeBoms           = "boms"
)
