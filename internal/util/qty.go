package util

import (
	"regexp"
	"strconv"
	"strings"
)

const qtyUnits = `un|und|unid|pçs|pç|pcs|pc|peças|peça|pecas|peca|kg|cx|jg|m`

var (
	unitPattern     = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(` + qtyUnits + `)\.?(?:$|[^\p{L}])`)
	numberPattern   = regexp.MustCompile(`(?:^|[^0-9.,])(\d{1,3}(?:[\s.,]\d{3})+|\d+(?:[.,]\d+)?)`)
	withUnitPattern = regexp.MustCompile(`(?i)(?:^|[^0-9.,])(\d{1,3}(?:[\s.,]\d{3})+|\d+(?:[.,]\d+)?)\s*(` + qtyUnits + `)\.?(?:$|[^\p{L}])`)
	thousandsDot    = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	thousandsComma  = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

type ParsedQty struct {
	Qty    *float64
	Unit   *string
	QtyRaw *string
}

// ParseQty pulls the quantity out of a BOM cell or line such as "10 pçs",
// "1.000 un" or "2,5 kg". A number followed by a unit wins over a bare number;
// among several candidates the last one is used.
func ParseQty(input string) ParsedQty {
	line := strings.ReplaceAll(input, " ", " ")

	qtyRaw := ""
	qtyToken := ""
	unitToken := ""

	wm := withUnitPattern.FindAllStringSubmatch(line, -1)
	if len(wm) > 0 {
		last := wm[len(wm)-1]
		qtyRaw = strings.TrimSpace(last[1] + " " + last[2])
		qtyToken = strings.TrimSpace(last[1])
		unitToken = last[2]
	} else {
		nm := numberPattern.FindAllStringSubmatch(line, -1)
		if len(nm) > 0 {
			last := nm[len(nm)-1]
			qtyRaw = strings.TrimSpace(last[1])
			qtyToken = strings.TrimSpace(last[1])
		}
	}

	var qtyPtr *float64
	if qtyToken != "" {
		norm := normalizeNumericToken(qtyToken)
		if parsed, err := strconv.ParseFloat(norm, 64); err == nil {
			qtyPtr = FloatPtr(parsed)
		}
	}

	if unitToken == "" {
		if um := unitPattern.FindStringSubmatch(line); len(um) > 1 {
			unitToken = um[1]
		}
	}
	var unitPtr *string
	if unitToken != "" {
		u := normalizeUnit(unitToken)
		unitPtr = &u
	}

	var qtyRawPtr *string
	if qtyRaw != "" {
		qtyRawPtr = &qtyRaw
	}

	return ParsedQty{Qty: qtyPtr, Unit: unitPtr, QtyRaw: qtyRawPtr}
}

func normalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "un", "und", "unid":
		return "un"
	case "pç", "pçs", "pc", "pcs", "peça", "peças", "peca", "pecas":
		return "pç"
	default:
		return u
	}
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, " ", "")
	if thousandsDot.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if thousandsComma.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}
