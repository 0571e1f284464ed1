package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jolucode/fin-guard/internal/model"
)

// Compute derives the full dashboard aggregates from the fetched log and the
// current filter state. The log is expected sorted by recency (newest first),
// as the backend returns it.
func Compute(logs []model.NotificationLog, state FilterState, now time.Time) Aggregates {
	inPeriod := filterByPeriod(logs, state)

	total := 0.0
	count := 0
	for i := range inPeriod {
		if inPeriod[i].HasAmount() {
			total += inPeriod[i].Amount()
			count++
		}
	}

	return Aggregates{
		TotalTransactions: count,
		TotalAmount:       total,
		Distribution:      computeDistribution(inPeriod),
		Daily:             computeDaily(inPeriod, state.WeekStart),
		Today:             ComputeToday(logs, now),
		Filtered:          filterBySearch(logs, state.Query, state.Filter),
	}
}

// ComputeToday restricts metrics to records whose local date is today's.
// The last transaction is the first of today's records, relying on the
// fetched list arriving newest-first.
func ComputeToday(logs []model.NotificationLog, now time.Time) TodayMetrics {
	today := dateOf(now)

	var metrics TodayMetrics
	for i := range logs {
		ts, ok := logs[i].LocalTime()
		if !ok || !dateOf(ts).Equal(today) {
			continue
		}
		if metrics.Last == nil {
			metrics.Last = &logs[i]
		}
		if logs[i].HasAmount() {
			metrics.Count++
			metrics.Amount += logs[i].Amount()
		}
	}
	return metrics
}

// filterByPeriod keeps logs whose parsed local date falls in the selected
// week or month. Records with unparseable timestamps are excluded.
func filterByPeriod(logs []model.NotificationLog, state FilterState) []model.NotificationLog {
	weekStart := dateOf(state.WeekStart)
	weekEnd := dateOf(state.WeekEnd())

	filtered := make([]model.NotificationLog, 0, len(logs))
	for i := range logs {
		ts, ok := logs[i].LocalTime()
		if !ok {
			continue
		}
		date := dateOf(ts)

		switch state.Mode {
		case FilterMonth:
			if state.Month.Contains(date) {
				filtered = append(filtered, logs[i])
			}
		default:
			if !date.Before(weekStart) && !date.After(weekEnd) {
				filtered = append(filtered, logs[i])
			}
		}
	}
	return filtered
}

// computeDistribution buckets amounts by payment source using a
// case-insensitive substring match on the package name.
func computeDistribution(logs []model.NotificationLog) Distribution {
	var d Distribution
	for i := range logs {
		amount := logs[i].Amount()
		pkg := ""
		if logs[i].Parsed != nil {
			pkg = strings.ToLower(logs[i].Parsed.PackageName)
		}

		switch {
		case strings.Contains(pkg, "yape"):
			d.YapeAmount += amount
		case strings.Contains(pkg, "plin"):
			d.PlinAmount += amount
		default:
			d.OtherAmount += amount
		}
	}
	return d
}

// computeDaily sums amounts per day of the selected week. All 7 buckets
// exist even with no data.
func computeDaily(logs []model.NotificationLog, weekStart time.Time) DailyHistogram {
	start := dateOf(weekStart)
	end := start.AddDate(0, 0, 6)

	var h DailyHistogram
	for i := range logs {
		amount := logs[i].Amount()
		if amount <= 0 {
			continue
		}
		ts, ok := logs[i].LocalTime()
		if !ok {
			continue
		}
		date := dateOf(ts)
		if date.Before(start) || date.After(end) {
			continue
		}
		h.Amounts[weekdayIndex(date)] += amount
	}
	return h
}

// filterBySearch applies the search query over the full unfiltered log.
// A blank query is the identity.
func filterBySearch(logs []model.NotificationLog, query string, filter SearchFilter) []model.NotificationLog {
	if strings.TrimSpace(query) == "" {
		return logs
	}
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]model.NotificationLog, 0, len(logs))
	for i := range logs {
		if matchesSearch(&logs[i], q, filter) {
			filtered = append(filtered, logs[i])
		}
	}
	return filtered
}

func matchesSearch(log *model.NotificationLog, query string, filter SearchFilter) bool {
	switch filter {
	case SearchAmount:
		return matchesAmount(log, query)
	case SearchDate:
		return matchesDate(log, query)
	case SearchSender:
		return matchesSender(log, query)
	default:
		return matchesAmount(log, query) || matchesDate(log, query) || matchesSender(log, query)
	}
}

// matchesAmount checks the query against both the raw and the 2-decimal
// formatted amount, so "50" matches 50.0 and 150.25 but not 32.0.
func matchesAmount(log *model.NotificationLog, query string) bool {
	if !log.HasAmount() {
		return false
	}
	amount := log.Amount()
	raw := strconv.FormatFloat(amount, 'f', -1, 64)
	formatted := fmt.Sprintf("%.2f", amount)
	return strings.Contains(raw, query) || strings.Contains(formatted, query)
}

func matchesDate(log *model.NotificationLog, query string) bool {
	ts, ok := log.LocalTime()
	if !ok {
		return false
	}
	full := fmt.Sprintf("%02d/%02d/%d", ts.Day(), int(ts.Month()), ts.Year())
	short := fmt.Sprintf("%02d/%02d", ts.Day(), int(ts.Month()))
	return strings.Contains(full, query) || strings.Contains(short, query)
}

func matchesSender(log *model.NotificationLog, query string) bool {
	sender := strings.ToLower(log.Sender())
	if sender == "" {
		return false
	}
	return strings.Contains(sender, query)
}
