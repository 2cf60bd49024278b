// Package format renders amounts and timestamps for display.
package format

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxAmountDigits = 6
	usdDigits       = 2

	// maxExponentDigits bounds exponents handed to the exact decimal parser.
	maxExponentDigits = 3
)

// leadingNumber matches the numeric prefix of a string the way a lenient
// float parse does: "12.5abc" reads as 12.5, "abc" reads as nothing.
var leadingNumber = regexp.MustCompile(`^([+-]?)(\d*)(?:\.(\d*))?(?:[eE]([+-]?\d+))?`)

// FormatNumber renders v with thousands grouping and at most six fraction
// digits. Values that cannot be read as a number render as "0".
func FormatNumber(v any) string {
	d, ok := ToDecimal(v)
	if !ok {
		return "0"
	}
	return groupDecimal(d.Round(maxAmountDigits).String())
}

// FormatUSD renders v as a dollar amount with exactly two fraction digits.
// Values that cannot be read as a number render as "$0".
func FormatUSD(v any) string {
	d, ok := ToDecimal(v)
	if !ok {
		return "$0"
	}
	rounded := d.Round(usdDigits)
	if rounded.IsNegative() {
		return "-$" + groupDecimal(rounded.Neg().StringFixed(usdDigits))
	}
	return "$" + groupDecimal(rounded.StringFixed(usdDigits))
}

// ToDecimal converts a string or numeric value to a decimal. Strings are read
// up to the first character that cannot continue a number.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch typed := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return typed, true
	case *decimal.Decimal:
		if typed == nil {
			return decimal.Zero, false
		}
		return *typed, true
	case string:
		return parseLeading(typed)
	case *string:
		if typed == nil {
			return decimal.Zero, false
		}
		return parseLeading(*typed)
	case json.Number:
		return parseLeading(typed.String())
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(typed), true
	case float32:
		f := float64(typed)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(typed), true
	case int:
		return decimal.NewFromInt(int64(typed)), true
	case int32:
		return decimal.NewFromInt32(typed), true
	case int64:
		return decimal.NewFromInt(typed), true
	case uint:
		return fromUint64(uint64(typed)), true
	case uint32:
		return fromUint64(uint64(typed)), true
	case uint64:
		return fromUint64(typed), true
	default:
		return decimal.Zero, false
	}
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

func parseLeading(input string) (decimal.Decimal, bool) {
	input = strings.TrimSpace(input)
	m := leadingNumber.FindStringSubmatch(input)
	if m == nil {
		return decimal.Zero, false
	}
	sign, intPart, fracPart, exp := m[1], m[2], m[3], m[4]
	if intPart == "" && fracPart == "" {
		return decimal.Zero, false
	}
	if strings.Trim(intPart+fracPart, "0") == "" {
		return decimal.Zero, true
	}
	if intPart == "" {
		intPart = "0"
	}

	var b strings.Builder
	if sign == "-" {
		b.WriteString(sign)
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	if exp != "" {
		b.WriteByte('e')
		b.WriteString(exp)
	}
	literal := b.String()

	// Out-of-range magnitudes behave like a float parse: overflow is not a
	// number, underflow is zero.
	f, _ := strconv.ParseFloat(literal, 64)
	if math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	if f == 0 {
		return decimal.Zero, true
	}
	if len(strings.TrimLeft(exp, "+-")) > maxExponentDigits {
		return decimal.NewFromFloat(f), true
	}

	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// groupDecimal inserts thousands separators into the integer part of a plain
// decimal string such as "-1234567.89".
func groupDecimal(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	if intPart == "0" && sign == "-" && strings.Trim(frac, "0") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
