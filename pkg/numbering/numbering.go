// Package numbering formats the human-readable sequence codes used across
// the engine (quote, sale and ticket numbers). It is pure string work; the
// sequence values themselves come from repository counts executed inside the
// transaction that creates the numbered row, so the read-then-increment
// sequence is serialized by the database.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultSalePrefix is used when no customer-derived prefix is available.
	DefaultSalePrefix = "SAT"

	quotePrefix  = "TEK"
	ticketPrefix = "KTNTS-"
)

// QuoteNumber formats a quote number, e.g. TEK-2024-007.
// seq is (count of quotes already created in year) + 1.
func QuoteNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", quotePrefix, year, seq)
}

// SalePrefix derives the customer prefix for sale numbers: the first three
// letters of the customer name, uppercased. An empty name falls back to
// DefaultSalePrefix; shorter names are used as-is.
func SalePrefix(customerName string) string {
	var letters []rune
	for _, r := range customerName {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return DefaultSalePrefix
	}
	return string(letters)
}

// SaleNumber formats a sale number, e.g. AHM-20240105-003.
// seq is (count of sales created on day, across all customers) + 1.
func SaleNumber(prefix string, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, day.Format("20060102"), seq)
}

// TicketNumber formats a service-ticket number, e.g. KTNTS-07.
func TicketNumber(seq int) string {
	return fmt.Sprintf("%s%02d", ticketPrefix, seq)
}

// NextTicketSeq derives the next ticket sequence from the existing ticket
// numbers: 1 + the maximum numeric suffix among KTNTS-prefixed codes. This is
// tolerant of gaps and deletions, and ignores non-numeric suffixes.
func NextTicketSeq(existing []string) int {
	max := 0
	for _, number := range existing {
		suffix, found := strings.CutPrefix(number, ticketPrefix)
		if !found {
			continue
		}
		v, err := strconv.Atoi(suffix)
		if err != nil || v <= 0 {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max + 1
}
