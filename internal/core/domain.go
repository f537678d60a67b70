package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

type (
	// Frequency is how often a recurring template fires. Values outside the
	// closed set below are kept verbatim but are never due.
	Frequency string

	Expense struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		CreatedAt   time.Time `json:"createdAt"`
		IsRecurring bool      `json:"isRecurring,omitempty"`

		// Extra holds stored members this type does not model.
		Extra  map[string]json.RawMessage `json:"-"`
		stamps rawStamps
	}

	RecurringTemplate struct {
		ID            string     `json:"id,omitempty"`
		Amount        Money      `json:"amount"`
		Category      string     `json:"category"`
		Description   string     `json:"description"`
		Frequency     Frequency  `json:"frequency"`
		IsActive      bool       `json:"isActive"`
		CreatedAt     time.Time  `json:"createdAt"`
		LastProcessed *time.Time `json:"lastProcessed,omitempty"`

		Extra  map[string]json.RawMessage `json:"-"`
		stamps rawStamps
	}

	// Budget is owned by the budgeting surface. The core stores it verbatim.
	Budget struct {
		Raw json.RawMessage
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidFrequency  = errors.New("invalid frequency")
	ErrDescriptionLength = errors.New("description too long (max 200 characters)")
)

// Frequencies lists the supported frequencies in ascending period order.
func Frequencies() []Frequency {
	return []Frequency{Daily, Weekly, Monthly}
}

// ThresholdDays returns how many whole elapsed days make a template with this
// frequency due. ok is false for unrecognized frequencies.
func (f Frequency) ThresholdDays() (days int, ok bool) {
	switch f {
	case Daily:
		return 1, true
	case Weekly:
		return 7, true
	case Monthly:
		return 30, true
	default:
		return 0, false
	}
}

func (f Frequency) IsValid() bool {
	_, ok := f.ThresholdDays()
	return ok
}

func (f Frequency) String() string {
	return string(f)
}

// ReferenceTime is the instant elapsed time is measured from: the last time
// the template fired, or its creation time if it never did. It is zero when
// the stored lastProcessed is set but unreadable.
func (t RecurringTemplate) ReferenceTime() time.Time {
	if t.LastProcessed != nil && !t.LastProcessed.IsZero() {
		return *t.LastProcessed
	}
	if t.LastProcessed == nil && t.stamps.invalid("lastProcessed") {
		return time.Time{}
	}
	return t.CreatedAt
}

// Validate checks a user-entered expense. Records loaded from storage are
// never validated.
func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Description) > 200 {
		return ErrDescriptionLength
	}
	return nil
}

func (t RecurringTemplate) Validate() error {
	if !t.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, t.Frequency)
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionLength
	}
	return nil
}

// NewBudget encodes v as an opaque budget record.
func NewBudget(v any) (Budget, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Budget{}, fmt.Errorf("encode budget: %w", err)
	}
	return Budget{Raw: raw}, nil
}

// Decode unmarshals the budget record into v.
func (b Budget) Decode(v any) error {
	if len(b.Raw) == 0 {
		return errors.New("empty budget record")
	}
	return json.Unmarshal(b.Raw, v)
}

func (b Budget) MarshalJSON() ([]byte, error) {
	if len(b.Raw) == 0 {
		return []byte("null"), nil
	}
	return b.Raw, nil
}

func (b *Budget) UnmarshalJSON(data []byte) error {
	b.Raw = append(b.Raw[:0], data...)
	return nil
}
