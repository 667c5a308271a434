package statement

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jhutton/bank-exports/internal/logger"
)

// CurrencyKind discriminates how a raw currency cell is coerced.
type CurrencyKind int

const (
	// CurrencyNumeric values are already numbers and pass through unchanged.
	CurrencyNumeric CurrencyKind = iota
	// CurrencyText values are cleaned of non-numeric characters and parsed.
	CurrencyText
	// CurrencyUnsupported values are neither; no coercion is attempted.
	CurrencyUnsupported
)

// nonNumeric matches every character that does not survive currency
// cleanup. "-" is not in the surviving set, so sign markers are stripped
// and "-£12.34" comes out as 12.34. That matches the historical loader
// behavior; flagged for product clarification, do not "fix" silently.
var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// CurrencyValue is a raw currency cell tagged with how it will be handled.
type CurrencyValue struct {
	Kind CurrencyKind
	raw  any
}

// ClassifyCurrency tags a raw cell as numeric, text or unsupported.
func ClassifyCurrency(raw any) CurrencyValue {
	switch raw.(type) {
	case float64, float32, int, int32, int64:
		return CurrencyValue{Kind: CurrencyNumeric, raw: raw}
	case string:
		return CurrencyValue{Kind: CurrencyText, raw: raw}
	default:
		return CurrencyValue{Kind: CurrencyUnsupported, raw: raw}
	}
}

// Raw returns the untouched input; this is what an unsupported value keeps.
func (v CurrencyValue) Raw() any { return v.raw }

// Amount coerces the cell to a number. Numeric cells pass through, text
// cells are stripped and parsed, and cells that cannot be parsed become
// nil (missing, not an error). Unsupported cells log a diagnostic and
// stay uncoerced.
func (v CurrencyValue) Amount(ctx context.Context) *float64 {
	switch v.Kind {
	case CurrencyNumeric:
		var f float64
		switch n := v.raw.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		case int:
			f = float64(n)
		case int32:
			f = float64(n)
		case int64:
			f = float64(n)
		}
		return &f
	case CurrencyText:
		cleaned := nonNumeric.ReplaceAllString(v.raw.(string), "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		log := logger.FromContext(ctx)
		log.Warn().
			Str("type", fmt.Sprintf("%T", v.raw)).
			Msg("Currency cell is neither numeric nor text; leaving it unmodified")
		return nil
	}
}

// NormalizeCurrency is the common path for CSV cells: classify, then coerce.
func NormalizeCurrency(ctx context.Context, raw any) *float64 {
	return ClassifyCurrency(raw).Amount(ctx)
}
