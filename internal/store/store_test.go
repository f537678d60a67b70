package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/store"
	"spendlog/internal/store/memory"
)

type failingSubstrate struct{ err error }

func (f failingSubstrate) Load(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingSubstrate) Save(context.Context, string, []byte) error         { return f.err }

func TestAbsentKeysLoadAsEmptyCollections(t *testing.T) {
	a := store.NewAdapter(memory.New())
	ctx := context.Background()

	expenses, err := a.LoadExpenses(ctx)
	if err != nil || expenses == nil || len(expenses) != 0 {
		t.Fatalf("expected empty expenses, got %v err=%v", expenses, err)
	}
	budgets, err := a.LoadBudgets(ctx)
	if err != nil || len(budgets) != 0 {
		t.Fatalf("expected empty budgets, got %v err=%v", budgets, err)
	}
	recurring, err := a.LoadRecurring(ctx)
	if err != nil || len(recurring) != 0 {
		t.Fatalf("expected empty recurring, got %v err=%v", recurring, err)
	}
}

func TestMalformedCollectionFailsLoad(t *testing.T) {
	m := memory.New()
	m.Seed(store.KeyExpenses, []byte("{not json"))
	a := store.NewAdapter(m)

	_, err := a.LoadExpenses(context.Background())
	if !errors.Is(err, store.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestRecordsWithMissingFieldsAreAccepted(t *testing.T) {
	m := memory.New()
	m.Seed(store.KeyRecurring, []byte(`[{"category":"rent"}]`))
	a := store.NewAdapter(m)

	templates, err := a.LoadRecurring(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(templates) != 1 || templates[0].Category != "rent" || !templates[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected templates: %+v", templates)
	}
}

func TestDateOnlyTimestampsLoad(t *testing.T) {
	m := memory.New()
	m.Seed(store.KeyExpenses, []byte(`[{"id":"1","amount":3,"category":"food","date":"2025-05-02","createdAt":"whenever"}]`))
	a := store.NewAdapter(m)
	ctx := context.Background()

	expenses, err := a.LoadExpenses(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(expenses) != 1 || !expenses[0].Date.Equal(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected expenses: %+v", expenses)
	}
	if !expenses[0].CreatedAt.IsZero() {
		t.Fatalf("unreadable createdAt should load as zero, got %v", expenses[0].CreatedAt)
	}

	if err := a.SaveExpenses(ctx, expenses); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _, _ := m.Load(ctx, store.KeyExpenses)
	for _, want := range []string{`"date":"2025-05-02"`, `"createdAt":"whenever"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("stored %s missing %s", raw, want)
		}
	}
}

func TestSaveWritesWholeCollectionUnderFixedKey(t *testing.T) {
	m := memory.New()
	a := store.NewAdapter(m)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	expenses := []core.Expense{
		{ID: "1", Amount: core.NewMoney(5), Category: "food", Date: now, CreatedAt: now},
		{ID: "2", Amount: core.NewMoney(7), Category: "fun", Date: now, CreatedAt: now, IsRecurring: true},
	}
	if err := a.SaveExpenses(ctx, expenses); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := a.LoadExpenses(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[1].ID != "2" || !got[1].IsRecurring || !got[0].Date.Equal(now) {
		t.Fatalf("unexpected round trip: %+v", got)
	}

	if err := a.SaveRecurring(ctx, nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	raw, _, _ := m.Load(ctx, store.KeyRecurring)
	if string(raw) != "[]" {
		t.Fatalf("expected nil collection stored as [], got %q", raw)
	}
	if m.Writes() != 2 {
		t.Fatalf("expected 2 writes, got %d", m.Writes())
	}
}

func TestSubstrateErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk full")
	a := store.NewAdapter(failingSubstrate{err: boom})

	if _, err := a.LoadBudgets(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
	if err := a.SaveBudgets(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
}
