// Package store is the persistence boundary: it translates the three
// in-memory collections to and from JSON documents held in a key-value
// substrate.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spendlog/internal/core"
)

// Fixed keys of the persisted collections.
const (
	KeyExpenses  = "expenses"
	KeyBudgets   = "budgets"
	KeyRecurring = "recurring"
)

// ErrMalformed is returned when a stored collection cannot be parsed. There is
// no recovery: the caller is expected to halt.
var ErrMalformed = errors.New("malformed stored collection")

// Substrate is the key-value storage capability. Load reports ok=false for a
// key that was never written.
type Substrate interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}

// Timestamped is implemented by substrates that record when each key was
// last written. ok is false for a key that was never written.
type Timestamped interface {
	UpdatedAt(ctx context.Context, key string) (at time.Time, ok bool, err error)
}

// Adapter reads and writes whole collections. It does not validate records
// and keeps no version marker.
type Adapter struct {
	substrate Substrate
}

func NewAdapter(substrate Substrate) *Adapter {
	return &Adapter{substrate: substrate}
}

func (a *Adapter) LoadExpenses(ctx context.Context) ([]core.Expense, error) {
	return load[core.Expense](ctx, a.substrate, KeyExpenses)
}

func (a *Adapter) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	return save(ctx, a.substrate, KeyExpenses, expenses)
}

func (a *Adapter) LoadBudgets(ctx context.Context) ([]core.Budget, error) {
	return load[core.Budget](ctx, a.substrate, KeyBudgets)
}

func (a *Adapter) SaveBudgets(ctx context.Context, budgets []core.Budget) error {
	return save(ctx, a.substrate, KeyBudgets, budgets)
}

func (a *Adapter) LoadRecurring(ctx context.Context) ([]core.RecurringTemplate, error) {
	return load[core.RecurringTemplate](ctx, a.substrate, KeyRecurring)
}

func (a *Adapter) SaveRecurring(ctx context.Context, templates []core.RecurringTemplate) error {
	return save(ctx, a.substrate, KeyRecurring, templates)
}

// load returns an empty collection for an absent or empty value.
func load[T any](ctx context.Context, s Substrate, key string) ([]T, error) {
	data, ok, err := s.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](ctx context.Context, s Substrate, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
