package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayatek/servis-api/internal/domain/entity"
)

func TestFromQuoteDetailed(t *testing.T) {
	b := NewDocumentBuilder()

	quote := &entity.Quote{
		Number:       "TEK-2024-001",
		CustomerName: "Acme Bilişim",
		Currency:     "TRY",
		PaymentTerm:  "30 gün vade",
		CreatedAt:    time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Lines: []entity.QuoteLine{
			{ProductName: "Ekran Paneli", Quantity: 1, ListPrice: decimal.NewFromInt(100), DiscountPct: decimal.NewFromInt(10)},
			{ProductName: "Montaj", Quantity: 1, ListPrice: decimal.NewFromInt(90), DiscountPct: decimal.Zero},
		},
	}

	doc := b.FromQuote(quote)
	assert.Equal(t, "TEK-2024-001", doc.Number)
	assert.Equal(t, "05.01.2024", doc.Date)
	require.Len(t, doc.Groups, 1)
	assert.False(t, doc.Groups[0].Override)
	assert.Len(t, doc.Groups[0].Lines, 2)
	assert.Equal(t, "180.00", doc.Subtotal)
	assert.Equal(t, "36.00", doc.VAT)
	assert.Equal(t, "216.00", doc.GrandTotal)
}

func TestFromQuoteOverride(t *testing.T) {
	b := NewDocumentBuilder()

	total := decimal.NewFromInt(500)
	discount := decimal.NewFromInt(10)
	quote := &entity.Quote{
		Number:              "TEK-2024-002",
		CustomerName:        "Acme",
		Currency:            "USD",
		CreatedAt:           time.Now(),
		OverrideTotal:       &total,
		OverrideDiscountPct: &discount,
		Lines: []entity.QuoteLine{
			{ProductName: "Toplu Bakım", Quantity: 1, ListPrice: decimal.NewFromInt(9999), DiscountPct: decimal.Zero},
		},
	}

	doc := b.FromQuote(quote)
	require.Len(t, doc.Groups, 1)
	assert.True(t, doc.Groups[0].Override)
	// Line pricing is ignored in override mode: 500 less 10%, plus VAT.
	assert.Equal(t, "450.00", doc.Subtotal)
	assert.Equal(t, "90.00", doc.VAT)
	assert.Equal(t, "540.00", doc.GrandTotal)
}

func TestFromTicketGroups(t *testing.T) {
	b := NewDocumentBuilder()

	agreed := decimal.NewFromInt(450)
	itemized := &entity.ServiceTicket{Number: "KTNTS-01", Product: "Laptop X200"}
	override := &entity.ServiceTicket{Number: "KTNTS-02", AgreedTotal: &agreed}

	doc := b.FromTicketGroups("TEK-2024-003", "Acme", "TRY",
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		[]TicketGroup{
			{Ticket: itemized, EncodedLines: []string{
				"Parça: Ekran Paneli x1 : 90.00",
				"Hizmet: Montaj : 90.00",
			}},
			{Ticket: override, EncodedLines: []string{
				"Parça: Batarya x1 : 120.00",
			}},
		})

	require.Len(t, doc.Groups, 2)
	assert.Equal(t, "KTNTS-01 - Laptop X200", doc.Groups[0].Title)
	assert.False(t, doc.Groups[0].Override)
	assert.Equal(t, "180.00", doc.Groups[0].Subtotal)

	assert.Equal(t, "KTNTS-02", doc.Groups[1].Title)
	assert.True(t, doc.Groups[1].Override)
	assert.Equal(t, "450.00", doc.Groups[1].Subtotal)

	// 180 + 450 = 630 subtotal, 126 VAT, 756 total.
	assert.Equal(t, "630.00", doc.Subtotal)
	assert.Equal(t, "126.00", doc.VAT)
	assert.Equal(t, "756.00", doc.GrandTotal)
}

func TestFromTicketGroupsMalformedLineFallsBack(t *testing.T) {
	b := NewDocumentBuilder()

	ticket := &entity.ServiceTicket{Number: "KTNTS-03"}
	doc := b.FromTicketGroups("TEK-2024-004", "Acme", "TRY", time.Now(),
		[]TicketGroup{
			{Ticket: ticket, EncodedLines: []string{"tamamen bozuk satır"}},
		})

	// The fallback row keeps the original text at zero price.
	require.Len(t, doc.Groups, 1)
	require.Len(t, doc.Groups[0].Lines, 1)
	assert.Equal(t, "tamamen bozuk satır", doc.Groups[0].Lines[0].Name)
	assert.Equal(t, "0.00", doc.Groups[0].Subtotal)
	assert.Equal(t, "0.00", doc.GrandTotal)
}

func TestEncodeTicketItems(t *testing.T) {
	list := decimal.NewFromInt(100)
	discount := decimal.NewFromInt(10)
	items := []entity.TicketItem{
		{Kind: entity.TicketItemPart, Name: "Ekran Paneli", Quantity: 2, Price: decimal.NewFromInt(90), ListPrice: &list, DiscountPct: &discount},
		{Kind: entity.TicketItemService, Name: "Montaj", Price: decimal.NewFromInt(90)},
	}

	lines := EncodeTicketItems(items)
	require.Len(t, lines, 2)
	assert.Equal(t, "Parça: Ekran Paneli x2 : 90.00 (Liste: 100.00, İndirim: 10%)", lines[0])
	assert.Equal(t, "Hizmet: Montaj : 90.00", lines[1])
}
