// Package dashboard turns the raw notification log plus the current filter
// state into the aggregates the UI renders. Everything here is pure: same
// logs, filter state and clock always produce the same output.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/jolucode/fin-guard/internal/model"
)

// FilterMode selects the period unit for the chart.
type FilterMode int

const (
	// FilterWeek buckets by the selected Monday-start week.
	FilterWeek FilterMode = iota
	// FilterMonth buckets by the selected calendar month.
	FilterMonth
)

// SearchFilter selects which fields a search query matches against.
type SearchFilter int

const (
	// SearchAll matches any of amount, date or sender.
	SearchAll SearchFilter = iota
	// SearchAmount matches the transaction amount.
	SearchAmount
	// SearchDate matches the dd/mm or dd/mm/yyyy date string.
	SearchDate
	// SearchSender matches the parsed sender name.
	SearchSender
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the YearMonth containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Prev returns the previous calendar month.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Contains reports whether t falls inside this month.
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// Before reports whether ym precedes other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Distribution is the split of captured amount across payment sources.
type Distribution struct {
	YapeAmount  float64
	PlinAmount  float64
	OtherAmount float64
}

// Total returns the summed amount across all buckets.
func (d Distribution) Total() float64 {
	return d.YapeAmount + d.PlinAmount + d.OtherAmount
}

// YapePercentage returns the Yape share of the total, 0 when the total is 0.
func (d Distribution) YapePercentage() float64 { return percentage(d.YapeAmount, d.Total()) }

// PlinPercentage returns the Plin share of the total, 0 when the total is 0.
func (d Distribution) PlinPercentage() float64 { return percentage(d.PlinAmount, d.Total()) }

// OtherPercentage returns the remaining share, 0 when the total is 0.
func (d Distribution) OtherPercentage() float64 { return percentage(d.OtherAmount, d.Total()) }

func percentage(amount, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return amount / total * 100
}

// DailyHistogram holds the summed amount per day of the selected week.
// Index 0 is Monday, index 6 is Sunday; every day exists even with no data.
type DailyHistogram struct {
	Amounts [7]float64
}

// Max returns the largest day amount.
func (h DailyHistogram) Max() float64 {
	max := 0.0
	for _, a := range h.Amounts {
		if a > max {
			max = a
		}
	}
	return max
}

// HeightFraction returns the bar height for a day, clamped to [0.05, 1.0] so
// empty days remain visually present.
func (h DailyHistogram) HeightFraction(day int) float64 {
	max := h.Max()
	if max <= 0 {
		return 0.05
	}
	f := h.Amounts[day] / max
	if f < 0.05 {
		return 0.05
	}
	if f > 1 {
		return 1
	}
	return f
}

// TodayMetrics summarizes today's captured activity.
type TodayMetrics struct {
	Count  int
	Amount float64
	Last   *model.NotificationLog
}

// Aggregates is the full derived view the dashboard renders.
type Aggregates struct {
	TotalTransactions int
	TotalAmount       float64
	Distribution      Distribution
	Daily             DailyHistogram
	Today             TodayMetrics
	Filtered          []model.NotificationLog
}

// Empty returns the zeroed aggregates shown after a fetch failure.
func Empty() Aggregates {
	return Aggregates{Filtered: []model.NotificationLog{}}
}

// FilterState is the user-controlled filter configuration. It is mutated only
// through Reduce.
type FilterState struct {
	Mode      FilterMode
	WeekStart time.Time // always a Monday at local midnight
	Month     YearMonth
	Query     string
	Filter    SearchFilter
}

// NewFilterState returns the initial state for "now": the week containing
// now (normalized to its Monday) and the current month.
func NewFilterState(now time.Time) FilterState {
	return FilterState{
		Mode:      FilterWeek,
		WeekStart: mondayOnOrBefore(now),
		Month:     YearMonthOf(now),
	}
}

// WeekEnd returns the Sunday closing the selected week.
func (s FilterState) WeekEnd() time.Time {
	return s.WeekStart.AddDate(0, 0, 6)
}

// CanGoNext reports whether forward navigation is allowed: stepping into a
// period that would start after the one containing now is forbidden.
func (s FilterState) CanGoNext(now time.Time) bool {
	today := dateOf(now)
	switch s.Mode {
	case FilterMonth:
		return s.Month.Before(YearMonthOf(now))
	default:
		return dateOf(s.WeekEnd()).Before(today)
	}
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// PeriodLabel formats the selected period for display.
func (s FilterState) PeriodLabel() string {
	if s.Mode == FilterMonth {
		name := spanishMonths[s.Month.Month-1]
		return fmt.Sprintf("%s%s %d", strings.ToUpper(name[:1]), name[1:], s.Month.Year)
	}
	_, week := s.WeekStart.ISOWeek()
	shortMonth := spanishMonths[s.WeekStart.Month()-1][:3]
	return fmt.Sprintf("Sem %d (%d-%d %s)", week, s.WeekStart.Day(), s.WeekEnd().Day(), shortMonth)
}

// mondayOnOrBefore normalizes t to the Monday of its week at local midnight.
func mondayOnOrBefore(t time.Time) time.Time {
	d := dateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// dateOf truncates t to local midnight.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekdayIndex maps a time to its Monday-first day index.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
