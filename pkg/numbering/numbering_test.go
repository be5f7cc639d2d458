package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteNumber(t *testing.T) {
	assert.Equal(t, "TEK-2024-001", QuoteNumber(2024, 1))
	assert.Equal(t, "TEK-2024-042", QuoteNumber(2024, 42))
	assert.Equal(t, "TEK-2025-123", QuoteNumber(2025, 123))
}

func TestSalePrefix(t *testing.T) {
	tests := []struct {
		name     string
		customer string
		want     string
	}{
		{"regular name", "Ahmet Yılmaz", "AHM"},
		{"lowercase", "demir ltd", "DEM"},
		{"two letters used as-is", "AB", "AB"},
		{"empty falls back", "", "SAT"},
		{"whitespace only falls back", "   ", "SAT"},
		{"digits skipped", "3M Sanayi", "MSA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SalePrefix(tt.customer))
		})
	}
}

func TestSaleNumber(t *testing.T) {
	day := time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)

	// two prior sales today for any customer -> seq 3
	assert.Equal(t, "AB-20240105-003", SaleNumber(SalePrefix("AB"), day, 3))
	assert.Equal(t, "SAT-20240105-001", SaleNumber(SalePrefix(""), day, 1))
}

func TestTicketNumber(t *testing.T) {
	assert.Equal(t, "KTNTS-01", TicketNumber(1))
	assert.Equal(t, "KTNTS-07", TicketNumber(7))
	assert.Equal(t, "KTNTS-123", TicketNumber(123))
}

func TestNextTicketSeq(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{"empty set starts at 1", nil, 1},
		{"sequential", []string{"KTNTS-01", "KTNTS-02", "KTNTS-03"}, 4},
		{"gaps are tolerated", []string{"KTNTS-01", "KTNTS-09"}, 10},
		{"non-numeric suffixes ignored", []string{"KTNTS-05", "KTNTS-abc", "KTNTS-"}, 6},
		{"foreign prefixes ignored", []string{"TEK-2024-001", "KTNTS-02"}, 3},
		{"max wins over count", []string{"KTNTS-44"}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextTicketSeq(tt.existing))
		})
	}
}
