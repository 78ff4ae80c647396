package payload

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Float converts a loosely typed value into a float64. Anything that does
// not parse as a base-10 number yields 0.
func Float(v any) float64 {
	var f float64

	switch val := v.(type) {
	case json.Number:
		f = parseFloat(string(val))
	case string:
		f = parseFloat(val)
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint64:
		f = float64(val)
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// Int converts a loosely typed value into an int64, truncating decimals.
func Int(v any) int64 {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case int32:
		return int64(val)
	case json.Number:
		if i, err := strconv.ParseInt(string(val), 10, 64); err == nil {
			return i
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return i
		}
	}

	f := Float(v)
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}

	return int64(f)
}

// Count is Int for quantities that cannot be negative: negative values give 0.
func Count(v any) int64 {
	if i := Int(v); i > 0 {
		return i
	}

	return 0
}

func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func Bool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		return err == nil && b
	default:
		return Float(v) != 0
	}
}

// OptionalInt is Int for nullable fields: missing or non-numeric values give nil.
func OptionalInt(v any) *int64 {
	if !isNumber(v) {
		return nil
	}

	i := Int(v)
	return &i
}

func OptionalString(v any) *string {
	s := strings.TrimSpace(String(v))
	if s == "" {
		return nil
	}

	return &s
}

// Percent prefers a numeric percentage supplied by the backend and otherwise
// computes part/total. Both come out with two fraction digits.
func Percent(v any, part, total int64) string {
	if isNumber(v) {
		if d, err := decimal.NewFromString(strings.TrimSpace(String(v))); err == nil {
			return d.StringFixed(2)
		}
	}

	return Percentage(part, total)
}

func Percentage(part, total int64) string {
	if total == 0 {
		return decimal.Zero.StringFixed(2)
	}

	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		StringFixed(2)
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return false
	}

	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isNumber(v any) bool {
	switch val := v.(type) {
	case string:
		return isNumeric(val)
	case json.Number:
		return isNumeric(string(val))
	case float64, float32, int, int32, int64, uint64:
		return true
	}

	return false
}
