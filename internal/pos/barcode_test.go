package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBarcode_WeightEmbedded(t *testing.T) {
	// prefix 2, product code 0012345, weight segment 00150 (grams)
	in, ok := DecodeBarcode("2001234500150", ScannerConfig{})
	require.True(t, ok)
	assert.Equal(t, "0012345", in.LookupKey)
	assert.True(t, in.Quantity.Equal(decimal.RequireFromString("0.150")), "got %s", in.Quantity)
	assert.True(t, in.FromScale)
}

func TestDecodeBarcode_WeightIsFractionalNotRounded(t *testing.T) {
	in, ok := DecodeBarcode("2765432000005", ScannerConfig{})
	require.True(t, ok)
	assert.True(t, in.Quantity.Equal(decimal.RequireFromString("0.005")))
}

func TestDecodeBarcode_PlainEAN13NotStartingWith2(t *testing.T) {
	// 13 digits but no scale prefix: matched verbatim, quantity 1
	in, ok := DecodeBarcode("7791234567890", ScannerConfig{})
	require.True(t, ok)
	assert.Equal(t, "7791234567890", in.LookupKey)
	assert.True(t, in.Quantity.Equal(decimal.NewFromInt(1)))
	assert.False(t, in.FromScale)
}

func TestDecodeBarcode_NonNumeric13CharsIsVerbatim(t *testing.T) {
	in, ok := DecodeBarcode("2ABCDEFGHIJKL", ScannerConfig{})
	require.True(t, ok)
	assert.Equal(t, "2ABCDEFGHIJKL", in.LookupKey)
	assert.False(t, in.FromScale)
}

func TestDecodeBarcode_TrimsWhitespaceAndAffixes(t *testing.T) {
	cfg := ScannerConfig{Prefix: "~", Suffix: "\r"}
	in, ok := DecodeBarcode("  ~2001234500150\r ", cfg)
	require.True(t, ok)
	assert.Equal(t, "0012345", in.LookupKey)
	assert.True(t, in.FromScale)
}

func TestDecodeBarcode_ShortCode(t *testing.T) {
	in, ok := DecodeBarcode("coke", ScannerConfig{})
	require.True(t, ok)
	assert.Equal(t, "coke", in.LookupKey)
	assert.True(t, in.Quantity.Equal(decimal.NewFromInt(1)))
}

func TestDecodeBarcode_EmptyAfterTrim(t *testing.T) {
	_, ok := DecodeBarcode("   ", ScannerConfig{})
	assert.False(t, ok)

	_, ok = DecodeBarcode("~", ScannerConfig{Prefix: "~"})
	assert.False(t, ok)
}
