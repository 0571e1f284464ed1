// Package model defines the core domain types shared across the application.
package model

import (
	"time"
)

// NotificationLog represents one backend-ingested notification record.
// Instances are immutable once constructed and live only for the current
// screen session; every load re-fetches the list.
type NotificationLog struct {
	ID          string
	PackageName string
	Title       string
	Text        string
	DeviceID    string
	CreatedAt   string
	Parsed      *ParsedTransaction
}

// ParsedTransaction holds the amount/sender pair extracted from the free-text
// body of a payment notification. Amount is nil when no currency pattern
// matched; Sender is nil when no "name te envió" pattern matched.
type ParsedTransaction struct {
	PackageName string
	Title       string
	Text        string
	Amount      *float64
	Sender      *string
}

// createdAtLayouts covers both timestamp shapes the backend emits: an
// ISO-8601 instant with a Z suffix, or a local date-time without offset.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseCreatedAt parses a backend timestamp string. Instants are converted to
// the local zone so date bucketing matches what the device's clock shows;
// naive date-times are taken as already-local.
func ParseCreatedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == time.RFC3339 || layout == time.RFC3339Nano {
				return t.Local(), true
			}
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local), true
		}
	}
	return time.Time{}, false
}

// LocalTime returns the record's creation time in the device's local zone,
// or false when the timestamp is missing or malformed.
func (n *NotificationLog) LocalTime() (time.Time, bool) {
	return ParseCreatedAt(n.CreatedAt)
}

// Amount returns the parsed amount or 0 when the record has no parsed data.
func (n *NotificationLog) Amount() float64 {
	if n.Parsed == nil || n.Parsed.Amount == nil {
		return 0
	}
	return *n.Parsed.Amount
}

// HasAmount reports whether the record carries a parsed amount.
func (n *NotificationLog) HasAmount() bool {
	return n.Parsed != nil && n.Parsed.Amount != nil
}

// Sender returns the parsed sender name, or the empty string.
func (n *NotificationLog) Sender() string {
	if n.Parsed == nil || n.Parsed.Sender == nil {
		return ""
	}
	return *n.Parsed.Sender
}
