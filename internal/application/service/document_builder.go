package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/pkg/lineitem"
	"github.com/kayatek/servis-api/pkg/pricing"
)

const documentDateLayout = "02.01.2006"

// DocumentBuilder assembles render-ready quote documents from persisted
// quote or ticket data. All money fields on the resulting document are
// formatted strings; computation happens here, display happens in the
// renderer.
type DocumentBuilder struct{}

// NewDocumentBuilder creates a new document builder
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

// FromQuote builds the document for a standalone quote. Detailed quotes get
// one group listing every line; override quotes get a single agreed-total
// group.
func (b *DocumentBuilder) FromQuote(quote *entity.Quote) *entity.QuoteDocument {
	lines := make([]lineitem.RenderLine, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, lineitem.PartDetailed(l.ProductName, l.Quantity, l.ListPrice, l.DiscountPct))
	}

	var subtotal decimal.Decimal
	override := quote.OverrideTotal != nil
	if override {
		discount := decimal.Zero
		if quote.OverrideDiscountPct != nil {
			discount = *quote.OverrideDiscountPct
		}
		subtotal = pricing.OverridePayable(*quote.OverrideTotal, discount)
	} else {
		totals := make([]decimal.Decimal, 0, len(quote.Lines))
		for _, l := range quote.Lines {
			totals = append(totals, pricing.LineTotal(l.Quantity, l.ListPrice, l.DiscountPct))
		}
		subtotal = pricing.Subtotal(totals)
	}

	totals := pricing.ComputeTotals(subtotal)

	doc := &entity.QuoteDocument{
		Number:       quote.Number,
		Date:         quote.CreatedAt.Format(documentDateLayout),
		CustomerName: quote.CustomerName,
		Currency:     quote.Currency,
		PaymentTerm:  quote.PaymentTerm,
		Groups: []entity.LineGroup{
			{
				Override: override,
				Lines:    lines,
				Subtotal: subtotal.StringFixed(2),
			},
		},
		Subtotal:   totals.Subtotal.StringFixed(2),
		VAT:        totals.VAT.StringFixed(2),
		GrandTotal: totals.GrandTotal.StringFixed(2),
	}
	if quote.Note != nil {
		doc.Notes = *quote.Note
	}
	return doc
}

// TicketGroup pairs a ticket with its items already encoded in the line
// format. The builder decodes the lines back into render rows, so the
// document is built from exactly what the text artifact will carry.
type TicketGroup struct {
	Ticket       *entity.ServiceTicket
	EncodedLines []string
}

// FromTicketGroups builds a grouped document for a bulk quote: one group per
// source ticket, titled with the ticket number. Tickets with an agreed total
// become override groups.
func (b *DocumentBuilder) FromTicketGroups(number, customerName, currency string, date time.Time, groups []TicketGroup) *entity.QuoteDocument {
	docGroups := make([]entity.LineGroup, 0, len(groups))
	grand := decimal.Zero

	for _, g := range groups {
		lines := make([]lineitem.RenderLine, 0, len(g.EncodedLines))
		lineTotals := make([]decimal.Decimal, 0, len(g.EncodedLines))
		for _, encoded := range g.EncodedLines {
			line := lineitem.Decode(encoded)
			lines = append(lines, line)
			total, err := decimal.NewFromString(line.Total)
			if err != nil {
				total = decimal.Zero
			}
			lineTotals = append(lineTotals, total)
		}

		override := g.Ticket.AgreedTotal != nil
		var subtotal decimal.Decimal
		if override {
			discount := decimal.Zero
			if g.Ticket.AgreedDiscountPct != nil {
				discount = *g.Ticket.AgreedDiscountPct
			}
			subtotal = pricing.OverridePayable(*g.Ticket.AgreedTotal, discount)
		} else {
			subtotal = pricing.Subtotal(lineTotals)
		}

		title := g.Ticket.Number
		if g.Ticket.Product != "" {
			title += " - " + g.Ticket.Product
		}

		docGroups = append(docGroups, entity.LineGroup{
			Title:    title,
			Override: override,
			Lines:    lines,
			Subtotal: subtotal.StringFixed(2),
		})
		grand = grand.Add(subtotal)
	}

	totals := pricing.ComputeTotals(grand)

	return &entity.QuoteDocument{
		Number:       number,
		Date:         date.Format(documentDateLayout),
		CustomerName: customerName,
		Currency:     currency,
		Groups:       docGroups,
		Subtotal:     totals.Subtotal.StringFixed(2),
		VAT:          totals.VAT.StringFixed(2),
		GrandTotal:   totals.GrandTotal.StringFixed(2),
	}
}

// EncodeTicketItems serializes a ticket's items into the line format handed
// to the document builder and embedded in outgoing quote emails.
func EncodeTicketItems(items []entity.TicketItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		var row lineitem.RenderLine
		switch {
		case item.Kind == entity.TicketItemService:
			row = lineitem.Service(item.Name, item.Price)
		case item.ListPrice != nil && item.DiscountPct != nil:
			row = lineitem.PartDetailed(item.Name, item.Quantity, *item.ListPrice, *item.DiscountPct)
		default:
			row = lineitem.Part(item.Name, item.Quantity, item.Price)
		}
		lines = append(lines, lineitem.Encode(row))
	}
	return lines
}
