// Package parser extracts structured transaction data from the free-text
// body of payment-app notifications.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jolucode/fin-guard/internal/model"
)

var (
	// Matches "S/ 50.00", "S/50" or "S/ 0,1". The first match wins.
	amountRe = regexp.MustCompile(`S/?\s*(\d+(?:[.,]\d+)?)`)
	// Matches the sender name preceding "te envió", e.g. "Juan Perez te envió".
	senderRe = regexp.MustCompile(`(?i)([A-Za-záéíóúñÁÉÍÓÚÑ.\s]+)\s+te\s+envió`)
)

// Parse derives a ParsedTransaction from a notification's package, title and
// text. It is a pure function: identical inputs always yield identical
// output, malformed input degrades to nil fields and never errors.
func Parse(packageName, title, text string) model.ParsedTransaction {
	return model.ParsedTransaction{
		PackageName: packageName,
		Title:       title,
		Text:        text,
		Amount:      extractAmount(text),
		Sender:      extractSender(text),
	}
}

func extractAmount(text string) *float64 {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	normalized := strings.ReplaceAll(m[1], ",", ".")
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return &amount
}

func extractSender(text string) *string {
	m := senderRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	sender := strings.TrimSpace(m[1])
	if sender == "" {
		return nil
	}
	return &sender
}
