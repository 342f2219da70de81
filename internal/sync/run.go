package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"github.com/google/uuid"
)

// Mode selects how a handler reads and reconciles.
type Mode string

const (
	// ModeFull re-reads everything and upserts.
	ModeFull Mode = "full"
	// ModeDelta reads only rows with external key above the stored cursor.
	ModeDelta Mode = "delta"
	// ModeOverwrite is a full read plus deletion of local entities the
	// source no longer returns.
	ModeOverwrite Mode = "overwrite"
)

// ParseMode parses a mode name; the empty string means full.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ModeFull, nil
	case "delta":
		return ModeDelta, nil
	case "overwrite":
		return ModeOverwrite, nil
	default:
		return "", fmt.Errorf("unknown sync mode %q", s)
	}
}

// Run is the shared context of one sync run: identity, mode, and the
// counter/error accumulators every handler reports into. It is owned by the
// orchestrator and passed by pointer; handlers never keep private copies.
// A run is processed by a single goroutine.
type Run struct {
	ID           string
	ConnectionID string
	Mode         Mode
	DryRun       bool

	counters map[string]int
	errors   []models.SyncRunError
}

// NewRun creates a run context. An empty id gets a fresh uuid.
func NewRun(id, connectionID string, mode Mode, dryRun bool) *Run {
	if id == "" {
		id = uuid.New().String()
	}
	return &Run{
		ID:           id,
		ConnectionID: connectionID,
		Mode:         mode,
		DryRun:       dryRun,
		counters:     make(map[string]int),
	}
}

// Count increments the named counter.
func (r *Run) Count(key string, n int) {
	if n != 0 {
		r.counters[key] += n
	}
}

// AddError appends one structured run error. kind and externalKey scope the
// error to a source row; both may be empty/nil for handler-level problems.
func (r *Run) AddError(entityType, kind string, externalKey *int64, err error) {
	e := models.SyncRunError{
		ID:          uuid.New().String(),
		RunID:       r.ID,
		EntityType:  entityType,
		ExternalKey: externalKey,
		Message:     err.Error(),
		CreatedAt:   time.Now(),
	}
	if kind != "" {
		e.ExternalEntityKind = &kind
	}
	r.errors = append(r.errors, e)
}

// Counters returns a copy of the counter map.
func (r *Run) Counters() map[string]int {
	out := make(map[string]int, len(r.counters))
	for k, v := range r.counters {
		out[k] = v
	}
	return out
}

// Counter returns one counter value.
func (r *Run) Counter(key string) int {
	return r.counters[key]
}

// Errors returns the errors recorded so far, in order.
func (r *Run) Errors() []models.SyncRunError {
	out := make([]models.SyncRunError, len(r.errors))
	copy(out, r.errors)
	return out
}
