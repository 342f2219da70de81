package runner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/sync"
)

// Runner owns the handler pipeline of one legacy connection and drives full
// or partial sync runs over it. Handlers run strictly in registration order:
// dictionaries first, then parties and users, then the group hierarchy ahead
// of the items and products that consume its index, orders and BOMs last so
// their references resolve.
type Runner struct {
	connectionID string
	stores       sync.Stores
	handlers     []sync.Handler
}

func New(connectionID string, stores sync.Stores, gateway legacy.Gateway) *Runner {
	groups := sync.NewGroupIndex()
	return &Runner{
		connectionID: connectionID,
		stores:       stores,
		handlers: []sync.Handler{
			sync.NewBodyTypeHandler(stores, gateway),
			sync.NewCurrencyHandler(stores, gateway),
			sync.NewUnitHandler(stores, gateway),
			sync.NewParameterSetHandler(stores, gateway),
			sync.NewStatusHandler(stores, gateway),
			sync.NewCounterpartyHandler(stores, gateway),
			sync.NewPersonHandler(stores, gateway),
			sync.NewUserHandler(stores, gateway),
			sync.NewItemGroupHandler(stores, gateway, groups),
			sync.NewItemHandler(stores, gateway, groups),
			sync.NewProductHandler(stores, gateway, groups),
			sync.NewOrderHandler(stores, gateway),
			sync.NewBomHandler(stores, gateway),
		},
	}
}

// Scopes lists the handler scopes in execution order.
func (r *Runner) Scopes() []string {
	scopes := make([]string, 0, len(r.handlers))
	for _, h := range r.handlers {
		scopes = append(scopes, h.Scope())
	}
	return scopes
}

// Summary is the outcome of one run.
type Summary struct {
	RunID     string
	Mode      sync.Mode
	DryRun    bool
	Processed int
	Counters  map[string]int
	Errors    int
	Duration  time.Duration
}

// RunOnce executes one sync run over the selected scopes (nil or empty means
// all), in pipeline order. Handler-level failures are recorded and the
// remaining handlers still run; only an unknown scope or a failure to
// persist the error log aborts.
func (r *Runner) RunOnce(ctx context.Context, mode sync.Mode, scopes []string, dryRun bool) (*Summary, error) {
	selected, err := r.selectHandlers(scopes)
	if err != nil {
		return nil, err
	}

	run := sync.NewRun("", r.connectionID, mode, dryRun)
	start := time.Now()
	log.Printf("Starting sync run %s (mode: %s, dry-run: %v, scopes: %d)", run.ID, mode, dryRun, len(selected))

	processed := 0
	for _, h := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := h.Sync(ctx, run)
		if err != nil {
			log.Printf("Handler %s failed: %v", h.Scope(), err)
			run.AddError(h.Scope(), "", nil, err)
			continue
		}
		processed += n
	}

	if !dryRun {
		if errs := run.Errors(); len(errs) > 0 {
			if err := r.stores.RunErrors().CreateBatch(ctx, errs); err != nil {
				return nil, fmt.Errorf("failed to persist run errors: %w", err)
			}
		}
	}

	summary := &Summary{
		RunID:     run.ID,
		Mode:      mode,
		DryRun:    dryRun,
		Processed: processed,
		Counters:  run.Counters(),
		Errors:    len(run.Errors()),
		Duration:  time.Since(start),
	}
	log.Printf("Sync run %s finished: %d processed, %d error(s) in %s", run.ID, summary.Processed, summary.Errors, summary.Duration.Round(time.Millisecond))
	return summary, nil
}

// Watch runs one pass immediately, then repeats on the interval until the
// context is cancelled. A failed pass is logged and the next tick retried.
func (r *Runner) Watch(ctx context.Context, mode sync.Mode, scopes []string, dryRun bool, interval time.Duration) error {
	log.Printf("Starting sync watcher (interval: %s)...", interval)

	if _, err := r.RunOnce(ctx, mode, scopes, dryRun); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("Warning: initial sync run failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Sync watcher shutting down...")
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RunOnce(ctx, mode, scopes, dryRun); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("Error running sync: %v", err)
			}
		}
	}
}

// selectHandlers filters handlers by scope name, preserving pipeline order.
func (r *Runner) selectHandlers(scopes []string) ([]sync.Handler, error) {
	if len(scopes) == 0 {
		return r.handlers, nil
	}
	wanted := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		wanted[s] = true
	}
	var selected []sync.Handler
	for _, h := range r.handlers {
		if wanted[h.Scope()] {
			selected = append(selected, h)
			delete(wanted, h.Scope())
		}
	}
	if len(wanted) > 0 {
		for s := range wanted {
			return nil, fmt.Errorf("unknown sync scope %q", s)
		}
	}
	return selected, nil
}
