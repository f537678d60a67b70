package core

import (
	"testing"
	"time"
)

func TestNewMonthOverview(t *testing.T) {
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 12, 0, 0, 0, time.UTC) }
	expenses := []Expense{
		{Amount: NewMoney(10), Category: "food", Date: day(3, 1)},
		{Amount: NewMoney(40), Category: "Rent", Date: day(3, 2)},
		{Amount: NewMoney(5), Category: "Food", Date: day(3, 20)},
		{Amount: NewMoney(15), Category: "fun", Date: day(3, 31)},
		{Amount: NewMoney(99), Category: "food", Date: day(4, 1)},
		{Amount: NewMoney(7), Category: "food"},
	}

	ov := NewMonthOverview(expenses, 2025, 3)

	if ov.Year != 2025 || ov.Month != 3 {
		t.Fatalf("unexpected period %d-%d", ov.Year, ov.Month)
	}
	if !ov.Total.Equal(NewMoney(70)) {
		t.Fatalf("expected total 70, got %s", ov.Total)
	}
	want := []CategoryAmount{
		{Name: "Rent", Amount: NewMoney(40)},
		{Name: "food", Amount: NewMoney(15)},
		{Name: "fun", Amount: NewMoney(15)},
	}
	if len(ov.ByCategory) != len(want) {
		t.Fatalf("expected %d categories, got %+v", len(want), ov.ByCategory)
	}
	for i, w := range want {
		got := ov.ByCategory[i]
		if got.Name != w.Name || !got.Amount.Equal(w.Amount) {
			t.Errorf("category %d: got %s %s, want %s %s", i, got.Name, got.Amount, w.Name, w.Amount)
		}
	}
}

func TestNewMonthOverviewEmptyMonth(t *testing.T) {
	ov := NewMonthOverview(nil, 2024, 1)
	if !ov.Total.IsZero() || len(ov.ByCategory) != 0 {
		t.Fatalf("expected empty overview, got %+v", ov)
	}
}
