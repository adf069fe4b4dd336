package normalize

import (
	"regexp"
	"strings"

	"quotecore/internal"
)

type axisAliases struct {
	values []string
	units  []string
	raws   []string
}

// Search order inside each list is the resolution order.
var aliasTable = map[internal.Axis]axisAliases{
	internal.AxisLength: {
		values: []string{"lengthValue", "length", "l", "comprimento"},
		units:  []string{"lengthUnit", "lUnit", "comprimentoUnit", "unidadeComprimento"},
		raws:   []string{"lengthRawInput", "lengthRaw", "comprimentoRaw"},
	},
	internal.AxisDiameter: {
		values: []string{"diameterValue", "diameter", "d", "diametro", "diâmetro"},
		units:  []string{"diameterUnit", "dUnit", "diametroUnit", "unidadeDiametro"},
		raws:   []string{"diameterRawInput", "diameterRaw", "diametroRaw"},
	},
	internal.AxisWidth: {
		values: []string{"widthValue", "width", "w", "largura"},
		units:  []string{"widthUnit", "wUnit", "larguraUnit", "unidadeLargura"},
		raws:   []string{"widthRawInput", "widthRaw", "larguraRaw"},
	},
}

var sharedUnitAliases = []string{"unit", "unidade"}

// AxisValueAliases exposes the value keys of an axis for display fallbacks.
func AxisValueAliases(axis internal.Axis) []string {
	return aliasTable[axis].values
}

// AxisUnitAliases exposes the unit keys of an axis for display fallbacks.
func AxisUnitAliases(axis internal.Axis) []string {
	return aliasTable[axis].units
}

var trailingUnit = regexp.MustCompile(`\d\s*(mm|cm|ft|in|m|")\s*$`)

// ParseUnit maps the spellings found in stored records onto the unit enum.
// Unknown spellings become UnitNone.
func ParseUnit(v any) internal.Unit {
	s, ok := v.(string)
	if !ok {
		return internal.UnitNone
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "milimetro", "milimetros", "milímetro", "milímetros":
		return internal.UnitMillimeter
	case "cm", "centimetro", "centimetros", "centímetro", "centímetros":
		return internal.UnitCentimeter
	case "m", "metro", "metros":
		return internal.UnitMeter
	case "in", "inch", "inches", `"`, "pol", "polegada", "polegadas":
		return internal.UnitInch
	case "ft", "feet", "foot", "'", "pe", "pé", "pés":
		return internal.UnitFoot
	default:
		return internal.UnitNone
	}
}

// inferUnit reads the unit written after a number, as in "10cm" or `3/4"`.
func inferUnit(values ...any) internal.Unit {
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if m := trailingUnit.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
			return ParseUnit(m[1])
		}
	}
	return internal.UnitNone
}

// lookup returns the first usable value under any of keys, searching each
// record in turn.
func lookup(keys []string, records ...internal.Record) any {
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for _, key := range keys {
			v, ok := rec[key]
			if !ok || v == nil {
				continue
			}
			if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}
