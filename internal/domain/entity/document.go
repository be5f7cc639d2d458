package entity

import (
	"github.com/kayatek/servis-api/pkg/lineitem"
)

// LineGroup is one table of a quote document: a detailed group lists every
// line with list price/discount/net columns; an override group shows only
// the agreed amount.
type LineGroup struct {
	Title    string                `json:"title"`
	Override bool                  `json:"override"`
	Lines    []lineitem.RenderLine `json:"lines"`
	Subtotal string                `json:"subtotal"`
}

// QuoteDocument is a value object, NOT a database entity — the render model
// handed to the document renderer. It is composed from quote or ticket data
// at render time, with all amounts pre-formatted for display.
type QuoteDocument struct {
	Number       string      `json:"number"`
	Date         string      `json:"date"`
	CustomerName string      `json:"customer_name"`
	Currency     string      `json:"currency"`
	PaymentTerm  string      `json:"payment_term,omitempty"`
	Groups       []LineGroup `json:"groups"`
	Subtotal     string      `json:"subtotal"`
	VAT          string      `json:"vat"`
	GrandTotal   string      `json:"grand_total"`
	Notes        string      `json:"notes,omitempty"`
}
