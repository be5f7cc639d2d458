// Package lineitem implements the text line format used to hand structured
// pricing rows to the document renderer, and the typed RenderLine model the
// rest of the engine passes around directly.
//
// The wire grammar (producer side):
//
//	Parça: {name} x{qty} : {price}
//	Hizmet: {name} : {price}
//
// with an optional detail suffix " (Liste: {listPrice}, İndirim: {discount}%)"
// when list price and discount are known. A bare line's trailing price is the
// line TOTAL; only detail lines carry a unit net price, from which the total
// is recomputed as quantity times price. Decode must round-trip every line
// Encode produces; on any parse failure it resolves to a safe fallback row
// instead of returning an error.
package lineitem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kayatek/servis-api/pkg/pricing"
)

// Kind tags a render line as a changed part or a performed service.
type Kind string

const (
	KindPart    Kind = "part"
	KindService Kind = "service"
)

const (
	partPrefix    = "Parça: "
	servicePrefix = "Hizmet: "
	listLabel     = "Liste:"
	discountLabel = "İndirim:"
)

// RenderLine is the flattened, display-ready record consumed by the document
// renderer. All fields are formatted strings.
type RenderLine struct {
	Kind      Kind   `json:"kind"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	ListPrice string `json:"list_price"`
	Discount  string `json:"discount"`
	NetPrice  string `json:"net_price"`
	Total     string `json:"total"`
}

// Part builds a part line priced at a bare unit price (no discount detail).
// Bare lines carry only the line total on the wire, so every money field of
// the row holds quantity times the unit price; the unit price itself is not
// preserved across a round trip.
func Part(name string, quantity int, unitPrice decimal.Decimal) RenderLine {
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2)
	return RenderLine{
		Kind:      KindPart,
		Name:      name,
		Quantity:  strconv.Itoa(quantity),
		ListPrice: total,
		Discount:  "0",
		NetPrice:  total,
		Total:     total,
	}
}

// PartDetailed builds a part line from a list price and a discount percent.
func PartDetailed(name string, quantity int, listPrice, discountPct decimal.Decimal) RenderLine {
	net := pricing.NetUnitPrice(listPrice, discountPct)
	return RenderLine{
		Kind:      KindPart,
		Name:      name,
		Quantity:  strconv.Itoa(quantity),
		ListPrice: listPrice.StringFixed(2),
		Discount:  discountPct.String(),
		NetPrice:  net.StringFixed(2),
		Total:     net.Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2),
	}
}

// Service builds a service line. Services carry no quantity on the wire.
func Service(name string, price decimal.Decimal) RenderLine {
	return RenderLine{
		Kind:      KindService,
		Name:      name,
		Quantity:  "1",
		ListPrice: price.StringFixed(2),
		Discount:  "0",
		NetPrice:  price.StringFixed(2),
		Total:     price.StringFixed(2),
	}
}

// Encode serializes a render line into its single-line wire form.
func Encode(l RenderLine) string {
	var b strings.Builder
	if l.Kind == KindService {
		b.WriteString(servicePrefix)
		b.WriteString(l.Name)
	} else {
		b.WriteString(partPrefix)
		b.WriteString(l.Name)
		b.WriteString(" x")
		b.WriteString(l.Quantity)
	}
	b.WriteString(" : ")
	b.WriteString(l.NetPrice)

	// Unit-priced rows (Total differs from the trailing net price) must keep
	// the detail suffix, or the decoder would read their unit price as a
	// line total.
	if l.Discount != "0" || l.ListPrice != l.NetPrice || l.Total != l.NetPrice {
		fmt.Fprintf(&b, " (%s %s, %s %s%%)", listLabel, l.ListPrice, discountLabel, l.Discount)
	}
	return b.String()
}

// Decode parses a wire line back into a RenderLine. It never fails: anything
// it cannot make sense of becomes a fallback row carrying the original text
// as the name with quantity 1 and zero prices.
func Decode(line string) RenderLine {
	if l, ok := decode(line); ok {
		return l
	}
	return RenderLine{
		Kind:      KindPart,
		Name:      line,
		Quantity:  "1",
		ListPrice: "0.00",
		Discount:  "0",
		NetPrice:  "0.00",
		Total:     "0.00",
	}
}

func decode(line string) (RenderLine, bool) {
	var kind Kind
	var rest string
	switch {
	case strings.HasPrefix(line, partPrefix):
		kind, rest = KindPart, strings.TrimPrefix(line, partPrefix)
	case strings.HasPrefix(line, servicePrefix):
		kind, rest = KindService, strings.TrimPrefix(line, servicePrefix)
	default:
		return RenderLine{}, false
	}

	// Split the main part from the parenthesized detail suffix, if present.
	main, detail := rest, ""
	if i := strings.LastIndex(rest, " ("); i >= 0 && strings.HasSuffix(rest, ")") {
		main, detail = rest[:i], rest[i+2:len(rest)-1]
	}

	ci := strings.LastIndex(main, " : ")
	if ci < 0 {
		return RenderLine{}, false
	}
	namePart := main[:ci]
	price, ok := parseAmount(main[ci+3:])
	if !ok {
		return RenderLine{}, false
	}

	name := strings.TrimSpace(namePart)
	qty := 1
	if kind == KindPart {
		name, qty = splitQuantity(namePart)
	}

	// A bare line's trailing price is the line total. Only a detail line
	// carries a unit net price, so only there is the total recomputed as
	// quantity times price.
	list := price
	discount := "0"
	total := price
	if detail != "" {
		listStr, discStr, ok := splitDetail(detail)
		if !ok {
			return RenderLine{}, false
		}
		if listStr != "" {
			if list, ok = parseAmount(listStr); !ok {
				return RenderLine{}, false
			}
		}
		if discStr != "" {
			if _, err := decimal.NewFromString(discStr); err != nil {
				return RenderLine{}, false
			}
			discount = discStr
		}
		total = price.Mul(decimal.NewFromInt(int64(qty)))
	}
	return RenderLine{
		Kind:      kind,
		Name:      name,
		Quantity:  strconv.Itoa(qty),
		ListPrice: list.StringFixed(2),
		Discount:  discount,
		NetPrice:  price.StringFixed(2),
		Total:     total.StringFixed(2),
	}, true
}

// splitQuantity extracts the quantity token from a part name segment.
// The token is the LAST " x" occurrence (names may themselves contain "x",
// e.g. "Contact xPad x3"), with a "(x{n})" form accepted as a variant.
// A part with no parsable token keeps the whole segment as its name.
func splitQuantity(namePart string) (string, int) {
	if xi := strings.LastIndex(namePart, " x"); xi >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(namePart[xi+2:])); err == nil && n > 0 {
			return strings.TrimSpace(namePart[:xi]), n
		}
	}
	trimmed := strings.TrimSpace(namePart)
	if strings.HasSuffix(trimmed, ")") {
		if pi := strings.LastIndex(trimmed, "(x"); pi >= 0 {
			if n, err := strconv.Atoi(trimmed[pi+2 : len(trimmed)-1]); err == nil && n > 0 {
				return strings.TrimSpace(trimmed[:pi]), n
			}
		}
	}
	return trimmed, 1
}

// splitDetail pulls the "Liste:" and "İndirim:" values out of the detail
// segment. Values are located by label so a comma-decimal list price does
// not break the split.
func splitDetail(detail string) (listStr, discStr string, ok bool) {
	seg := detail
	if di := strings.Index(detail, discountLabel); di >= 0 {
		seg = detail[:di]
		discStr = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(detail[di+len(discountLabel):]), "%"))
	}
	if li := strings.Index(seg, listLabel); li >= 0 {
		listStr = strings.TrimRight(strings.TrimSpace(seg[li+len(listLabel):]), ", ")
	}
	if listStr == "" && discStr == "" {
		return "", "", false
	}
	return listStr, discStr, true
}

// parseAmount parses a monetary token, preferring dot-decimal form and
// falling back to a comma-decimal (locale) interpretation.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if v, err := decimal.NewFromString(s); err == nil {
		return v, true
	}
	alt := strings.ReplaceAll(s, ".", "")
	alt = strings.Replace(alt, ",", ".", 1)
	if v, err := decimal.NewFromString(alt); err == nil {
		return v, true
	}
	return decimal.Zero, false
}
