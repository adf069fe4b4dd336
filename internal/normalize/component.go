package normalize

import (
	"strings"

	"quotecore/internal"
	"quotecore/internal/util"
)

var canonicalKeys = map[string]struct{}{
	"id": {}, "name": {}, "unitWeight": {}, "weightUnit": {}, "unitCost": {},
	"rawSizeString": {}, "sizeValue": {},
}

func init() {
	for _, axis := range internal.Axes {
		canonicalKeys[axis.ValueKey()] = struct{}{}
		canonicalKeys[axis.UnitKey()] = struct{}{}
		canonicalKeys[axis.RawKey()] = struct{}{}
	}
}

// NormalizeComponent converts a stored component record of any known shape into
// the canonical component. It never fails: fields it cannot read are left
// empty. Normalizing its own output returns an equal component.
func NormalizeComponent(raw internal.Record) internal.ProductComponent {
	if raw == nil {
		raw = internal.Record{}
	}
	size := resolveSize(raw["sizeValue"])
	fields := size.fields()

	c := internal.ProductComponent{
		ID:         util.CoerceString(raw["id"]),
		Name:       util.CoerceString(raw["name"]),
		WeightUnit: util.CoerceString(raw["weightUnit"]),
		SizeValue:  raw["sizeValue"],
		Extra:      extraKeys(raw),
	}
	if v := util.CoerceNumber(raw["unitCost"]); v != nil {
		c.UnitCost = *v
	}
	if v := util.CoerceNumber(raw["unitWeight"]); v != nil {
		c.UnitWeight = *v
	}

	sharedUnit := ParseUnit(lookup(sharedUnitAliases, fields))
	for _, axis := range internal.Axes {
		*c.Dimension(axis) = resolveAxis(axis, raw, fields, sharedUnit)
	}

	if c.Length.Empty() && c.Diameter.Empty() && c.Width.Empty() {
		if existing, ok := raw["rawSizeString"].(string); ok && strings.TrimSpace(existing) != "" {
			c.RawSizeString = util.StringPtr(existing)
		} else if text, ok := size.render(); ok {
			c.RawSizeString = util.StringPtr(text)
		}
	}

	return c
}

func resolveAxis(axis internal.Axis, raw, fields internal.Record, sharedUnit internal.Unit) internal.Dimension {
	// Already canonical: take the axis as stored.
	if v, ok := raw[axis.ValueKey()]; ok {
		d := internal.Dimension{
			Value: coerceDimension(v),
			Unit:  ParseUnit(raw[axis.UnitKey()]),
		}
		var rawInput any
		if s, isString := raw[axis.RawKey()].(string); isString {
			d.RawInput = util.StringPtr(s)
			rawInput = s
		}
		if d.Unit == internal.UnitNone && d.Value != nil {
			d.Unit = inferUnit(v, rawInput)
		}
		return d
	}

	aliases := aliasTable[axis]
	var d internal.Dimension
	if s, ok := raw[axis.RawKey()].(string); ok && strings.TrimSpace(s) != "" {
		d.RawInput = util.StringPtr(s)
	} else if s, ok := lookup(aliases.raws, fields, raw).(string); ok {
		d.RawInput = util.StringPtr(s)
	}

	candidate := lookup(aliases.values, fields, raw)
	d.Value = coerceDimension(candidate)
	if d.Value == nil && d.RawInput != nil {
		d.Value = util.ParseDimension(*d.RawInput)
	}

	if d.Value == nil && d.RawInput == nil {
		return d
	}
	d.Unit = ParseUnit(lookup(aliases.units, fields, raw))
	if d.Unit == internal.UnitNone {
		var rawInput any
		if d.RawInput != nil {
			rawInput = *d.RawInput
		}
		d.Unit = inferUnit(candidate, rawInput)
	}
	if d.Unit == internal.UnitNone {
		d.Unit = sharedUnit
	}
	return d
}

// coerceDimension reads fractions such as "1 1/2" before falling back to the
// loose numeric read.
func coerceDimension(v any) *float64 {
	if s, ok := v.(string); ok {
		if parsed := util.ParseDimension(s); parsed != nil {
			return parsed
		}
		return util.ParseLooseFloat(s)
	}
	return util.CoerceNumber(v)
}

func extraKeys(raw internal.Record) map[string]any {
	var extra map[string]any
	for k, v := range raw {
		if _, known := canonicalKeys[k]; known {
			continue
		}
		if extra == nil {
			extra = map[string]any{}
		}
		extra[k] = v
	}
	return extra
}
