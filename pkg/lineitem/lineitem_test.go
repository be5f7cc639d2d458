package lineitem

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEncodePart(t *testing.T) {
	// bare part lines carry the line total after the colon
	line := Encode(Part("Contact xPad", 3, d("45")))
	assert.Equal(t, "Parça: Contact xPad x3 : 135.00", line)

	line = Encode(Part("Kayış", 1, d("12.50")))
	assert.Equal(t, "Parça: Kayış x1 : 12.50", line)
}

func TestEncodePartWithDetail(t *testing.T) {
	line := Encode(PartDetailed("Filtre", 2, d("100"), d("10")))
	assert.Equal(t, "Parça: Filtre x2 : 90.00 (Liste: 100.00, İndirim: 10%)", line)
}

func TestEncodeUnitPricedRowKeepsDetailSuffix(t *testing.T) {
	// a zero-discount detailed row is still unit-priced; without the suffix
	// its trailing 45.90 would decode as the line total
	line := Encode(PartDetailed("Pompa", 5, d("45.90"), d("0")))
	assert.Equal(t, "Parça: Pompa x5 : 45.90 (Liste: 45.90, İndirim: 0%)", line)

	got := Decode(line)
	assert.Equal(t, "229.50", got.Total)
}

func TestEncodeService(t *testing.T) {
	line := Encode(Service("Bakım", d("250")))
	assert.Equal(t, "Hizmet: Bakım : 250.00", line)
}

func TestDecodeQuantityTokenIsLastXOccurrence(t *testing.T) {
	// names may themselves contain "x"; the quantity is the LAST " x" token,
	// and the bare trailing price is the line total, not a unit price
	got := Decode("Parça: Contact xPad x3 : 45.00")

	assert.Equal(t, KindPart, got.Kind)
	assert.Equal(t, "Contact xPad", got.Name)
	assert.Equal(t, "3", got.Quantity)
	assert.Equal(t, "45.00", got.NetPrice)
	assert.Equal(t, "45.00", got.ListPrice)
	assert.Equal(t, "45.00", got.Total)
}

func TestDecodeParenQuantityVariant(t *testing.T) {
	got := Decode("Parça: Akü (x2) : 30.00")

	assert.Equal(t, "Akü", got.Name)
	assert.Equal(t, "2", got.Quantity)
	assert.Equal(t, "30.00", got.Total)
}

func TestDecodeDetailSuffix(t *testing.T) {
	got := Decode("Parça: Filtre x2 : 90.00 (Liste: 100.00, İndirim: 10%)")

	assert.Equal(t, "Filtre", got.Name)
	assert.Equal(t, "2", got.Quantity)
	assert.Equal(t, "100.00", got.ListPrice)
	assert.Equal(t, "10", got.Discount)
	assert.Equal(t, "90.00", got.NetPrice)
	assert.Equal(t, "180.00", got.Total)
}

func TestDecodeBarePriceUsedForBothListAndNet(t *testing.T) {
	got := Decode("Hizmet: Arıza tespiti : 150.00")

	assert.Equal(t, KindService, got.Kind)
	assert.Equal(t, "150.00", got.ListPrice)
	assert.Equal(t, "150.00", got.NetPrice)
	assert.Equal(t, "1", got.Quantity)
}

func TestDecodeCommaDecimalFallback(t *testing.T) {
	got := Decode("Parça: Kayış x1 : 45,50")
	assert.Equal(t, "45.50", got.NetPrice)

	got = Decode("Hizmet: Montaj : 1.234,56")
	assert.Equal(t, "1234.56", got.NetPrice)
}

func TestDecodeFallbackRow(t *testing.T) {
	malformed := []string{
		"",
		"random text with no prefix",
		"Parça: no colon here",
		"Parça: Filtre x2 : not-a-price",
		"Parça: Filtre x2 : 10.00 (garbage detail)",
		"Hizmet: Bakım : 10.00 (Liste: abc, İndirim: 10%)",
	}
	for _, line := range malformed {
		got := Decode(line)
		assert.Equal(t, line, got.Name, "fallback keeps original line as name")
		assert.Equal(t, "1", got.Quantity)
		assert.Equal(t, "0.00", got.NetPrice)
		assert.Equal(t, "0.00", got.ListPrice)
		assert.Equal(t, "0.00", got.Total)
	}
}

func TestRoundTrip(t *testing.T) {
	rows := []RenderLine{
		Part("Contact xPad", 3, d("45")),
		Part("Kayış", 1, d("12.5")),
		PartDetailed("Filtre", 2, d("100"), d("10")),
		PartDetailed("Pompa", 5, d("45.90"), d("0")),
		Service("Bakım", d("250")),
		Service("Arıza tespiti x2 kontrol", d("99.99")),
	}

	for _, row := range rows {
		wire := Encode(row)
		got := Decode(wire)
		require.Equal(t, row, got, "round-trip failed for %q", wire)
	}
}
