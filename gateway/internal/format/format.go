// Package format renders amounts and dates for display.
package format

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	CurrencyPrefix = "RM "
	DateLayout     = "2 Jan 2006"
)

var printer = message.NewPrinter(language.English)

// Currency renders v as "RM 1,234.50". The prefix always comes first, so
// negative amounts read "RM -1,234.50".
func Currency(v float64) string {
	return CurrencyDecimal(decimal.NewFromFloat(v))
}

// CurrencyDecimal renders d without going through float64, so amounts of any
// size keep their digits.
func CurrencyDecimal(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	return CurrencyPrefix + sign + group(whole) + "." + frac
}

// group inserts thousands separators into a string of digits.
func group(digits string) string {
	if n, ok := new(big.Int).SetString(digits, 10); ok && n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date renders v as "15 Oct 2026". It accepts time.Time, *time.Time and
// ISO-8601 strings; anything it cannot read renders as "".
func Date(v any) string {
	t, ok := toTime(v)
	if !ok {
		return ""
	}
	return t.Format(DateLayout)
}

func DateRange(start, end any) string {
	return Date(start) + " - " + Date(end)
}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
