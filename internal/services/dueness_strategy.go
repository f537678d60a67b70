// Package services provides business logic and orchestration services.
//
// This file implements the strategy used to decide whether a recurring
// template is due. Every supported frequency maps to a ThresholdChecker that
// compares whole elapsed days against the frequency's threshold.

package services

import (
	"errors"
	"fmt"
	"time"

	"spendlog/internal/core"
)

const msPerDay = int64(24 * time.Hour / time.Millisecond)

var ErrUnknownFrequency = errors.New("unknown frequency")

// DuenessChecker is the strategy interface for checking if a recurring
// template is due.
type DuenessChecker interface {
	// IsDue reports whether enough time passed between reference and now.
	IsDue(reference, now time.Time) bool
}

// ThresholdChecker is due once at least Days whole days have elapsed.
type ThresholdChecker struct {
	Days int
}

// IsDue never fires for a zero reference: a template without any timestamp
// has no defined elapsed time.
func (c ThresholdChecker) IsDue(reference, now time.Time) bool {
	if reference.IsZero() {
		return false
	}
	return DaysSince(reference, now) >= c.Days
}

// DaysSince returns floor((now - reference) / 24h) at millisecond precision.
// It does not look at calendar boundaries: 23 hours across midnight is 0.
func DaysSince(reference, now time.Time) int {
	elapsed := now.UnixMilli() - reference.UnixMilli()
	days := elapsed / msPerDay
	if elapsed%msPerDay != 0 && elapsed < 0 {
		days--
	}
	return int(days)
}

// GetDuenessChecker returns the checker for a frequency. Unrecognized
// frequencies return ErrUnknownFrequency.
func GetDuenessChecker(frequency core.Frequency) (DuenessChecker, error) {
	days, ok := frequency.ThresholdDays()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrequency, frequency)
	}
	return ThresholdChecker{Days: days}, nil
}

// NextDue returns the first instant at which the template becomes due. ok is
// false for unknown frequencies and templates without a reference time.
func NextDue(tpl core.RecurringTemplate) (next time.Time, ok bool) {
	days, ok := tpl.Frequency.ThresholdDays()
	reference := tpl.ReferenceTime()
	if !ok || reference.IsZero() {
		return time.Time{}, false
	}
	return reference.Add(time.Duration(days) * 24 * time.Hour), true
}
