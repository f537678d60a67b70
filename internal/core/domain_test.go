package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFrequencyThresholdDays(t *testing.T) {
	cases := []struct {
		f    Frequency
		days int
		ok   bool
	}{
		{Daily, 1, true},
		{Weekly, 7, true},
		{Monthly, 30, true},
		{Frequency("yearly"), 0, false},
		{Frequency(""), 0, false},
	}
	for _, tc := range cases {
		days, ok := tc.f.ThresholdDays()
		if days != tc.days || ok != tc.ok {
			t.Fatalf("%q: expected (%d, %v), got (%d, %v)", tc.f, tc.days, tc.ok, days, ok)
		}
	}
}

func TestReferenceTime(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	last := created.Add(48 * time.Hour)

	tpl := RecurringTemplate{CreatedAt: created}
	if !tpl.ReferenceTime().Equal(created) {
		t.Fatalf("expected createdAt when never processed")
	}
	tpl.LastProcessed = &last
	if !tpl.ReferenceTime().Equal(last) {
		t.Fatalf("expected lastProcessed once set")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Amount: NewMoney(10), Category: "food", Description: "lunch"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e    Expense
		want error
	}{
		{Expense{Amount: Money{}, Category: "food"}, ErrInvalidAmount},
		{Expense{Amount: NewMoney(1), Category: "  "}, ErrEmptyCategory},
		{Expense{Amount: NewMoney(1), Category: "c", Description: strings.Repeat("x", 201)}, ErrDescriptionLength},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestRecurringTemplateValidate(t *testing.T) {
	good := RecurringTemplate{Amount: NewMoney(50), Category: "rent", Description: "Rent", Frequency: Monthly}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Frequency = "yearly"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}

	bad = good
	bad.Description = ""
	if err := bad.Validate(); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
}

func TestTemplateKeepsUnknownFrequencyAndOptionalFields(t *testing.T) {
	in := `{"amount":9.99,"category":"x","description":"y","frequency":"yearly","isActive":true,"createdAt":"2025-01-01T00:00:00.000Z"}`
	var tpl RecurringTemplate
	if err := json.Unmarshal([]byte(in), &tpl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tpl.Frequency != "yearly" || tpl.LastProcessed != nil {
		t.Fatalf("unexpected template: %+v", tpl)
	}
	out, err := json.Marshal(tpl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"frequency":"yearly"`) || strings.Contains(string(out), "lastProcessed") {
		t.Fatalf("unexpected encoding: %s", out)
	}
}

func TestBudgetIsStoredVerbatim(t *testing.T) {
	in := `[{"category":"food","limit":300,"extra":{"color":"red"}}]`
	var budgets []Budget
	if err := json.Unmarshal([]byte(in), &budgets); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(budgets)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Fatalf("budget not preserved:\n got %s\nwant %s", out, in)
	}
}
