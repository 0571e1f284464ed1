package dashboard

import (
	"testing"
	"time"
)

func TestNewFilterState_NormalizesToMonday(t *testing.T) {
	state := NewFilterState(testNow)

	if state.WeekStart.Weekday() != time.Monday {
		t.Errorf("week start weekday = %v, want Monday", state.WeekStart.Weekday())
	}
	if state.WeekStart.After(testNow) {
		t.Error("week start must be on or before now")
	}
	if want := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.Local); !state.WeekStart.Equal(want) {
		t.Errorf("week start = %v, want %v", state.WeekStart, want)
	}
	if state.Month != (YearMonth{Year: 2026, Month: time.August}) {
		t.Errorf("month = %v, want 2026-08", state.Month)
	}
}

func TestReduce_CannotNavigateIntoFuture(t *testing.T) {
	state := NewFilterState(testNow)

	if state.CanGoNext(testNow) {
		t.Error("CanGoNext must be false when the selected week contains now")
	}
	next := Reduce(state, NextPeriod{}, testNow)
	if !next.WeekStart.Equal(state.WeekStart) {
		t.Error("NextPeriod must be a no-op at the current week")
	}

	state = Reduce(state, SetFilterMode{Mode: FilterMonth}, testNow)
	if state.CanGoNext(testNow) {
		t.Error("CanGoNext must be false for the current month")
	}
	next = Reduce(state, NextPeriod{}, testNow)
	if next.Month != state.Month {
		t.Error("NextPeriod must be a no-op at the current month")
	}
}

func TestReduce_PrevThenNextRoundTrips(t *testing.T) {
	state := NewFilterState(testNow)
	original := state

	for i := 0; i < 3; i++ {
		state = Reduce(state, PreviousPeriod{}, testNow)
	}
	for i := 0; i < 3; i++ {
		state = Reduce(state, NextPeriod{}, testNow)
	}
	if !state.WeekStart.Equal(original.WeekStart) {
		t.Errorf("week start after 3 prev + 3 next = %v, want %v", state.WeekStart, original.WeekStart)
	}

	state = Reduce(state, SetFilterMode{Mode: FilterMonth}, testNow)
	monthOriginal := state.Month
	for i := 0; i < 5; i++ {
		state = Reduce(state, PreviousPeriod{}, testNow)
	}
	for i := 0; i < 5; i++ {
		state = Reduce(state, NextPeriod{}, testNow)
	}
	if state.Month != monthOriginal {
		t.Errorf("month after 5 prev + 5 next = %v, want %v", state.Month, monthOriginal)
	}
}

func TestReduce_BackAlwaysAllowed(t *testing.T) {
	state := NewFilterState(testNow)
	for i := 0; i < 60; i++ {
		state = Reduce(state, PreviousPeriod{}, testNow)
	}
	if !state.CanGoNext(testNow) {
		t.Error("CanGoNext must be true for a past week")
	}
	if state.WeekStart.Weekday() != time.Monday {
		t.Error("week start must stay a Monday after navigation")
	}
}

func TestYearMonth_PrevNextAcrossYearBoundary(t *testing.T) {
	jan := YearMonth{Year: 2026, Month: time.January}
	if got := jan.Prev(); got != (YearMonth{Year: 2025, Month: time.December}) {
		t.Errorf("Prev(2026-01) = %v", got)
	}
	dec := YearMonth{Year: 2025, Month: time.December}
	if got := dec.Next(); got != (YearMonth{Year: 2026, Month: time.January}) {
		t.Errorf("Next(2025-12) = %v", got)
	}
}

func TestPeriodLabel(t *testing.T) {
	state := NewFilterState(testNow)
	if got := state.PeriodLabel(); got != "Sem 35 (24-30 ago)" {
		t.Errorf("week label = %q", got)
	}

	state = Reduce(state, SetFilterMode{Mode: FilterMonth}, testNow)
	if got := state.PeriodLabel(); got != "Agosto 2026" {
		t.Errorf("month label = %q", got)
	}
}
