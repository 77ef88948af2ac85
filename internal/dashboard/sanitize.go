package dashboard

import (
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// SanitizeNumber coerces v into a finite float64. Numeric strings are parsed
// after trimming, bools map to 1 and 0, and everything else (including NaN
// and infinities) becomes 0.
func SanitizeNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// isNumber reports whether v is a numeric kind as produced by a JSON decoder
// or by Go code building a payload by hand.
func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	}
	return false
}

// SanitizeData returns a copy of v with every number made finite. Arrays have
// their numeric elements sanitized and other elements kept as-is; nested
// objects are sanitized recursively. It returns nil when v is not an object.
func SanitizeData(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		switch val := value.(type) {
		case map[string]any:
			out[key] = SanitizeData(val)
		case []any:
			arr := make([]any, len(val))
			for i, elem := range val {
				if isNumber(elem) {
					arr[i] = SanitizeNumber(elem)
				} else {
					arr[i] = elem
				}
			}
			out[key] = arr
		default:
			if isNumber(val) {
				out[key] = SanitizeNumber(val)
			} else {
				out[key] = val
			}
		}
	}
	return out
}

// EscapeMarkup renders v as text that is safe to embed in terminal output.
// Escape sequences are removed and any remaining control character becomes a
// space.
func EscapeMarkup(v any) string {
	if v == nil {
		return ""
	}
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprint(val)
	}
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// EscapeHTML neutralizes v for embedding in an HTML document.
func EscapeHTML(v any) string {
	if v == nil {
		return ""
	}
	return html.EscapeString(fmt.Sprint(v))
}
