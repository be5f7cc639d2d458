// Package renderer turns a QuoteDocument into the plain-text artifact that
// gets attached to outgoing quote emails and archived alongside the send
// record. Output is deterministic: the same document always renders to the
// same bytes.
package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/pkg/pricing"
)

// Default print width in characters.
const defaultWidth = 72

// Document builds a fixed-width plain-text page line by line.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a new text document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = defaultWidth
	}
	return &Document{width: charWidth}
}

// Text writes a line of text followed by a newline.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
	return d
}

// TextF writes a formatted line of text followed by a newline.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte('\n')
	return d
}

// Blank writes an empty line.
func (d *Document) Blank() *Document {
	d.buf.WriteByte('\n')
	return d
}

// Centered writes a line centered within the document width.
func (d *Document) Centered(s string) *Document {
	pad := (d.width - utf8.RuneCountInString(s)) / 2
	if pad < 0 {
		pad = 0
	}
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
	return d
}

// Separator writes a full-width separator line (e.g. "------------").
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte('\n')
	return d
}

// KeyValue writes a left-aligned key and right-aligned value on the same line.
// Example: "Ara Toplam                           180.00"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte('\n')
	return d
}

// ItemLine writes an item line: qty x name, then a right-aligned total.
// Example: "3 x Ekran Paneli                      135.00"
func (d *Document) ItemLine(qty, name, total string) *Document {
	prefix := qty + " x " + name
	spaces := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(prefix)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(total)
	d.buf.WriteByte('\n')
	return d
}

// Bytes returns the accumulated text.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Renderer renders quote documents to attachable plain-text bytes.
type Renderer struct {
	width int
}

// New creates a renderer with the default page width.
func New() *Renderer {
	return &Renderer{width: defaultWidth}
}

// Render produces the plain-text page for a quote document.
func (r *Renderer) Render(doc *entity.QuoteDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("renderer: nil document")
	}
	if doc.Number == "" {
		return nil, fmt.Errorf("renderer: document has no number")
	}

	symbol := pricing.CurrencySymbol(doc.Currency)

	d := NewDocument(r.width)
	d.Separator('=')
	d.Centered("FIYAT TEKLIFI / QUOTATION")
	d.Centered(doc.Number)
	d.Separator('=')
	d.KeyValue("Tarih", doc.Date)
	d.KeyValue("Müşteri", doc.CustomerName)
	if doc.PaymentTerm != "" {
		d.KeyValue("Ödeme", doc.PaymentTerm)
	}
	d.Separator('-')

	for _, group := range doc.Groups {
		if group.Title != "" {
			d.Blank()
			d.Text(group.Title)
			d.Separator('-')
		}
		if group.Override {
			// Agreed-total groups list names only; pricing is the
			// single group subtotal.
			for _, line := range group.Lines {
				d.ItemLine(line.Quantity, line.Name, "")
			}
		} else {
			for _, line := range group.Lines {
				d.ItemLine(line.Quantity, line.Name, symbol+line.Total)
				if line.Discount != "0" && line.Discount != "" {
					d.TextF("    Liste: %s%s  İndirim: %%%s  Net: %s%s",
						symbol, line.ListPrice, line.Discount, symbol, line.NetPrice)
				}
			}
		}
		d.KeyValue("Grup Toplamı", symbol+group.Subtotal)
	}

	d.Separator('-')
	d.KeyValue("Ara Toplam", symbol+doc.Subtotal)
	d.KeyValue("KDV (%20)", symbol+doc.VAT)
	d.KeyValue("Genel Toplam", symbol+doc.GrandTotal)
	d.Separator('=')

	if doc.Notes != "" {
		d.Blank()
		d.Text(doc.Notes)
	}

	return d.Bytes(), nil
}

// Filename returns the attachment filename for a document number,
// e.g. "TEK-2024-001.txt".
func Filename(number string) string {
	return number + ".txt"
}
