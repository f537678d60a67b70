// Package app holds the application state: the three in-memory collections
// and the save operations that are their only mutation path.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/services"
	"spendlog/internal/store"
)

var ErrTemplateNotFound = errors.New("recurring template not found")

// State owns the loaded collections. Every Save* call writes the full
// collection through the store adapter before replacing the in-memory copy.
// State is not safe for concurrent use.
type State struct {
	store     *store.Adapter
	processor *services.RecurringProcessor

	expenses  []core.Expense
	budgets   []core.Budget
	recurring []core.RecurringTemplate
}

// New creates an empty State over adapter. Options are passed to the
// recurring processor run by Init.
func New(adapter *store.Adapter, opts ...services.Option) *State {
	s := &State{
		store:     adapter,
		expenses:  []core.Expense{},
		budgets:   []core.Budget{},
		recurring: []core.RecurringTemplate{},
	}
	s.processor = services.NewRecurringProcessor(adapter, s, opts...)
	return s
}

// Load reads all three collections. Absent collections load as empty; a
// malformed one fails the whole load and leaves the state untouched.
func (s *State) Load(ctx context.Context) error {
	expenses, err := s.store.LoadExpenses(ctx)
	if err != nil {
		return err
	}
	budgets, err := s.store.LoadBudgets(ctx)
	if err != nil {
		return err
	}
	recurring, err := s.store.LoadRecurring(ctx)
	if err != nil {
		return err
	}

	s.expenses, s.budgets, s.recurring = expenses, budgets, recurring
	slog.DebugContext(ctx, "State loaded",
		"expenses", len(expenses),
		"budgets", len(budgets),
		"recurring", len(recurring))
	return nil
}

// Init loads the state and runs the recurring processor once. It returns the
// number of expenses generated.
func (s *State) Init(ctx context.Context, now time.Time) (int, error) {
	if err := s.Load(ctx); err != nil {
		return 0, fmt.Errorf("load state: %w", err)
	}
	fired, err := s.processor.ProcessDueExpenses(ctx, now)
	if err != nil {
		return fired, fmt.Errorf("process recurring expenses: %w", err)
	}
	return fired, nil
}

func (s *State) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	if err := s.store.SaveExpenses(ctx, expenses); err != nil {
		return err
	}
	s.expenses = clone(expenses)
	return nil
}

func (s *State) SaveBudgets(ctx context.Context, budgets []core.Budget) error {
	if err := s.store.SaveBudgets(ctx, budgets); err != nil {
		return err
	}
	s.budgets = clone(budgets)
	return nil
}

func (s *State) SaveRecurring(ctx context.Context, templates []core.RecurringTemplate) error {
	if err := s.store.SaveRecurring(ctx, templates); err != nil {
		return err
	}
	s.recurring = clone(templates)
	return nil
}

func (s *State) Expenses() []core.Expense            { return clone(s.expenses) }
func (s *State) Budgets() []core.Budget              { return clone(s.budgets) }
func (s *State) Recurring() []core.RecurringTemplate { return clone(s.recurring) }

// AppendExpense validates e and saves the expense list with e appended.
func (s *State) AppendExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.SaveExpenses(ctx, append(s.Expenses(), e))
}

// AppendTemplate validates t and saves the template list with t appended.
func (s *State) AppendTemplate(ctx context.Context, t core.RecurringTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.SaveRecurring(ctx, append(s.Recurring(), t))
}

// SetTemplateActive pauses or resumes the template with the given id.
// lastProcessed is left as is, so a resumed template does not backfill the
// occurrences it missed while paused.
func (s *State) SetTemplateActive(ctx context.Context, id string, active bool) error {
	templates := s.Recurring()
	for i := range templates {
		if templates[i].ID != "" && templates[i].ID == id {
			if templates[i].IsActive == active {
				return nil
			}
			templates[i].IsActive = active
			return s.SaveRecurring(ctx, templates)
		}
	}
	return fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
