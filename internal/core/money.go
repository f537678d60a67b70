// Package core provides money parsing and handling utilities.
//
// Amounts are persisted as bare JSON numbers. Internally they are held as
// decimals so that sums of user-entered values do not drift.
package core

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a currency-less amount in major units.
type Money struct {
	value decimal.Decimal
}

// NewMoney returns a Money holding v major units.
func NewMoney(v int64) Money {
	return Money{value: decimal.NewFromInt(v)}
}

// NewMoneyFromFloat returns a Money holding v major units.
func NewMoneyFromFloat(v float64) Money {
	return Money{value: decimal.NewFromFloat(v)}
}

// ParseMoney parses a user-entered amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Negative, zero and malformed values return ErrInvalidAmount.
//
// Examples:
//
//	ParseMoney("12.34") -> 12.34, nil
//	ParseMoney("12,34") -> 12.34, nil
//	ParseMoney("-1")    -> 0, ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	return Money{value: d}, nil
}

func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) Decimal() decimal.Decimal { return m.value }

// String returns the plain decimal representation, e.g. "12.5".
func (m Money) String() string {
	return m.value.String()
}

// Format renders the amount with the symbol and fraction digits of the given
// ISO currency code. Unknown codes fall back to two decimals and the code.
func (m Money) Format(currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return m.value.StringFixed(2) + " " + currency
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts a JSON number, a quoted number or null.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
