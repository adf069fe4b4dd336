package util

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	reLettersPercentSpace = regexp.MustCompile(`[\p{L}%\s]+`)
	reLeadingFloat        = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// CoerceNumber reads a loosely typed JSON value as a number. Numbers pass
// through; strings lose their letters, percent signs and whitespace and the
// leading float of what remains is used. Everything else is nil.
func CoerceNumber(v any) *float64 {
	switch t := v.(type) {
	case nil, bool:
		return nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return FloatPtr(f)
	case string:
		return ParseLooseFloat(t)
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, err := cast.ToFloat64E(t)
		if err != nil {
			return nil
		}
		return FloatPtr(f)
	default:
		return nil
	}
}

// ParseLooseFloat strips letters, '%' and whitespace, then parses the longest
// numeric prefix: "12,5 cm" is 12, "30%" is 30, "abc" is nil.
func ParseLooseFloat(s string) *float64 {
	cleaned := reLettersPercentSpace.ReplaceAllString(s, "")
	prefix := reLeadingFloat.FindString(cleaned)
	if prefix == "" {
		return nil
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return nil
	}
	return FloatPtr(f)
}

// CoerceString renders ids and labels that legacy records stored as numbers.
func CoerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool, map[string]any, []any:
		return ""
	default:
		s, err := cast.ToStringE(t)
		if err != nil {
			return ""
		}
		return s
	}
}

// FormatNumber prints a float the shortest way that round-trips: 125.75,
// 10, 0.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HasText reports whether s contains anything beyond whitespace.
func HasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
