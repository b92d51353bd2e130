package pos

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ScannerConfig is the per-deployment scanner setting snapshot: an optional
// prefix/suffix some scanner models wrap around every read.
type ScannerConfig struct {
	Prefix string
	Suffix string
}

// ScanInput is the decoded form of one scanner or keyboard read.
type ScanInput struct {
	LookupKey string
	Quantity  decimal.Decimal
	// FromScale is true for weight-embedded self-service scale codes.
	FromScale bool
}

const scalePrefix = '2'

// DecodeBarcode parses a raw scanned or typed string.
//
// A 13-digit numeric code starting with '2' is a self-service scale code:
// digit 1 is the scale prefix, digits 2–8 the product code and digits 9–13
// the weight in grams, sold as a fractional quantity in kilograms.
// Anything else is matched verbatim against the catalog with quantity 1 —
// including 13-digit codes not starting with '2', which are plain EAN-13.
//
// Returns false for input that is empty after trimming and affix stripping.
func DecodeBarcode(raw string, cfg ScannerConfig) (ScanInput, bool) {
	code := strings.TrimSpace(raw)
	if cfg.Prefix != "" {
		code = strings.TrimPrefix(code, cfg.Prefix)
	}
	if cfg.Suffix != "" {
		code = strings.TrimSuffix(code, cfg.Suffix)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ScanInput{}, false
	}

	if len(code) == 13 && code[0] == scalePrefix && isDigits(code) {
		grams, err := strconv.ParseInt(code[8:13], 10, 64)
		if err == nil {
			return ScanInput{
				LookupKey: code[1:8],
				// grams → kilograms, kept fractional, never rounded
				Quantity:  decimal.New(grams, -3),
				FromScale: true,
			}, true
		}
	}

	return ScanInput{LookupKey: code, Quantity: decimal.NewFromInt(1)}, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
