package util

import (
	"regexp"
	"strconv"
	"strings"
)

// dimensionUnitTokens are removed as plain substrings, so "5mm" and "5 m" both
// clean up, and so does the "m" inside "mesh".
var dimensionUnitTokens = []string{`"`, "in", "mm", "cm", "ft", "m"}

var (
	fractionPattern = regexp.MustCompile(`^(?:(\d+)\s+)?(\d+)/(\d+)$`)
	decimalPattern  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)$`)
)

// ParseDimension turns a free-text measurement such as `1 1/2"`, "3/4" or
// "10.5cm" into a number. It returns nil when nothing numeric is left.
func ParseDimension(raw string) *float64 {
	cleaned := strings.TrimSpace(raw)
	for _, token := range dimensionUnitTokens {
		cleaned = strings.ReplaceAll(cleaned, token, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	if m := fractionPattern.FindStringSubmatch(cleaned); m != nil {
		num, err1 := strconv.ParseFloat(m[2], 64)
		den, err2 := strconv.ParseFloat(m[3], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return nil
		}
		whole := 0.0
		if m[1] != "" {
			w, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return nil
			}
			whole = w
		}
		return FloatPtr(whole + num/den)
	}

	if decimalPattern.MatchString(cleaned) {
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return FloatPtr(v)
	}

	return nil
}
