package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"spendlog/internal/core"
)

// AutoLoggedSuffix is appended to the description of generated expenses.
const AutoLoggedSuffix = " (Auto-logged)"

type (
	// CollectionSource reads the persisted collections the processor needs.
	CollectionSource interface {
		LoadExpenses(ctx context.Context) ([]core.Expense, error)
		LoadRecurring(ctx context.Context) ([]core.RecurringTemplate, error)
	}

	// CollectionSaver replaces whole collections.
	CollectionSaver interface {
		SaveExpenses(ctx context.Context, expenses []core.Expense) error
		SaveRecurring(ctx context.Context, templates []core.RecurringTemplate) error
	}

	// IDFunc returns a fresh unique expense id.
	IDFunc func() string

	Option func(*RecurringProcessor)
)

// Result is the outcome of one processing pass.
type Result struct {
	Expenses  []core.Expense
	Templates []core.RecurringTemplate
	// Fired counts templates that produced an expense.
	Fired int
}

// RecurringProcessor materializes expenses from due recurring templates.
type RecurringProcessor struct {
	source CollectionSource
	saver  CollectionSaver
	newID  IDFunc
}

// WithIDFunc overrides expense id generation.
func WithIDFunc(f IDFunc) Option {
	return func(p *RecurringProcessor) {
		p.newID = f
	}
}

// NewRecurringProcessor creates a processor that reads through source and
// writes through saver.
func NewRecurringProcessor(source CollectionSource, saver CollectionSaver, opts ...Option) *RecurringProcessor {
	p := &RecurringProcessor{
		source: source,
		saver:  saver,
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewID returns a UUIDv7: a millisecond timestamp followed by random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ProcessDueExpenses runs one pass over the stored templates. Both collections
// are written only when at least one expense was generated; the two writes
// are not atomic.
func (p *RecurringProcessor) ProcessDueExpenses(ctx context.Context, now time.Time) (int, error) {
	if p.source == nil || p.saver == nil {
		return 0, errors.New("processor not properly initialized")
	}

	templates, err := p.source.LoadRecurring(ctx)
	if err != nil {
		return 0, fmt.Errorf("load recurring templates: %w", err)
	}
	if len(templates) == 0 {
		return 0, nil
	}

	expenses, err := p.source.LoadExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("load expenses: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring expenses",
		"templates", len(templates),
		"processing_time", now.Format(time.RFC3339))

	result := p.Process(ctx, templates, expenses, now)

	if len(result.Expenses) != len(expenses) {
		if err := p.saver.SaveExpenses(ctx, result.Expenses); err != nil {
			return 0, fmt.Errorf("save expenses: %w", err)
		}
		if err := p.saver.SaveRecurring(ctx, result.Templates); err != nil {
			return result.Fired, fmt.Errorf("save recurring templates: %w", err)
		}
	}

	slog.InfoContext(ctx, "Recurring expense processing complete",
		"processed", result.Fired,
		"total_checked", len(templates))

	return result.Fired, nil
}

// Process applies one pass to in-memory collections without touching
// storage. The input slices are not modified.
func (p *RecurringProcessor) Process(ctx context.Context, templates []core.RecurringTemplate, expenses []core.Expense, now time.Time) Result {
	result := Result{
		Expenses:  append(make([]core.Expense, 0, len(expenses)+len(templates)), expenses...),
		Templates: make([]core.RecurringTemplate, 0, len(templates)),
	}

	for _, tpl := range templates {
		if !tpl.IsActive || !isDue(tpl, now) {
			result.Templates = append(result.Templates, tpl)
			continue
		}

		result.Expenses = append(result.Expenses, core.Expense{
			ID:          p.newID(),
			Amount:      tpl.Amount,
			Category:    tpl.Category,
			Description: tpl.Description + AutoLoggedSuffix,
			Date:        now,
			CreatedAt:   now,
			IsRecurring: true,
		})

		processed := now
		tpl.LastProcessed = &processed
		result.Templates = append(result.Templates, tpl)
		result.Fired++

		slog.InfoContext(ctx, "Created expense from recurring template",
			"template_id", tpl.ID,
			"description", tpl.Description,
			"amount", tpl.Amount.String(),
			"frequency", tpl.Frequency)
	}

	return result
}

func isDue(tpl core.RecurringTemplate, now time.Time) bool {
	checker, err := GetDuenessChecker(tpl.Frequency)
	if err != nil {
		return false
	}
	return checker.IsDue(tpl.ReferenceTime(), now)
}
