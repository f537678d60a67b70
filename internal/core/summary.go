package core

import (
	"sort"
	"strings"
	"time"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthOverview is a compact summary for a specific year+month.
type MonthOverview struct {
	Year       int
	Month      int // 1-12
	Total      Money
	ByCategory []CategoryAmount
}

// NewMonthOverview totals the expenses dated in the given month. Categories
// are grouped case-insensitively under the first spelling seen and ordered
// by amount, largest first.
func NewMonthOverview(expenses []Expense, year, month int) MonthOverview {
	ov := MonthOverview{Year: year, Month: month}
	index := map[string]int{}
	for _, e := range expenses {
		if e.Date.IsZero() || e.Date.Year() != year || e.Date.Month() != time.Month(month) {
			continue
		}
		ov.Total = ov.Total.Add(e.Amount)

		key := strings.ToLower(strings.TrimSpace(e.Category))
		i, seen := index[key]
		if !seen {
			i = len(ov.ByCategory)
			index[key] = i
			ov.ByCategory = append(ov.ByCategory, CategoryAmount{Name: strings.TrimSpace(e.Category)})
		}
		ov.ByCategory[i].Amount = ov.ByCategory[i].Amount.Add(e.Amount)
	}

	sort.SliceStable(ov.ByCategory, func(i, j int) bool {
		a, b := ov.ByCategory[i], ov.ByCategory[j]
		if c := a.Amount.Decimal().Cmp(b.Amount.Decimal()); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	return ov
}
