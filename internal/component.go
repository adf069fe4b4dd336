package internal

import (
	"bytes"
	"encoding/json"

	"quotecore/internal/util"
)

// ProductComponent is one sub-part of a material. Components decoded from
// storage keep their stored bytes until they are normalized, so encoding an
// untouched component reproduces exactly what was read.
type ProductComponent struct {
	ID         string
	Name       string
	UnitWeight float64
	WeightUnit string
	UnitCost   float64

	Length   Dimension
	Diameter Dimension
	Width    Dimension

	// RawSizeString is only set when no axis could be resolved.
	RawSizeString *string
	// SizeValue is the legacy size payload, kept verbatim.
	SizeValue any
	// Extra holds keys this package does not know about.
	Extra map[string]any

	stored json.RawMessage
	source Record
}

func (c *ProductComponent) Dimension(axis Axis) *Dimension {
	switch axis {
	case AxisLength:
		return &c.Length
	case AxisDiameter:
		return &c.Diameter
	case AxisWidth:
		return &c.Width
	default:
		return nil
	}
}

// Source is the record the normalizer should read: the stored record for a
// decoded component, the canonical record otherwise.
func (c ProductComponent) Source() Record {
	if c.source != nil {
		return c.source
	}
	return c.Record()
}

// Normalized reports whether the component no longer carries stored bytes.
func (c ProductComponent) Normalized() bool {
	return c.stored == nil
}

// Record renders the canonical key set.
func (c ProductComponent) Record() Record {
	rec := Record{}
	for k, v := range c.Extra {
		rec[k] = v
	}
	rec["id"] = c.ID
	rec["name"] = c.Name
	rec["unitWeight"] = c.UnitWeight
	rec["weightUnit"] = c.WeightUnit
	rec["unitCost"] = c.UnitCost
	for _, axis := range Axes {
		d := c.Dimension(axis)
		if d.Value != nil {
			rec[axis.ValueKey()] = *d.Value
		} else {
			rec[axis.ValueKey()] = nil
		}
		rec[axis.UnitKey()] = string(d.Unit)
		if d.RawInput != nil {
			rec[axis.RawKey()] = *d.RawInput
		}
	}
	if c.RawSizeString != nil {
		rec["rawSizeString"] = *c.RawSizeString
	}
	if c.SizeValue != nil {
		rec["sizeValue"] = c.SizeValue
	}
	return rec
}

func (c ProductComponent) MarshalJSON() ([]byte, error) {
	if c.stored != nil {
		return c.stored, nil
	}
	return json.Marshal(c.Record())
}

// UnmarshalJSON never fails on a well-formed JSON value: legacy components may
// be objects of any shape, or even bare strings, and are sorted out by the
// normalizer. Cost and weight are read leniently so that an un-normalized
// material still prices.
func (c *ProductComponent) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return err
	}

	rec, ok := value.(map[string]any)
	if !ok {
		rec = map[string]any{}
		if value != nil {
			rec["sizeValue"] = value
		}
	}

	*c = ProductComponent{
		ID:         util.CoerceString(rec["id"]),
		Name:       util.CoerceString(rec["name"]),
		WeightUnit: util.CoerceString(rec["weightUnit"]),
		SizeValue:  rec["sizeValue"],
		stored:     append(json.RawMessage(nil), data...),
		source:     Record(rec),
	}
	if v := util.CoerceNumber(rec["unitCost"]); v != nil {
		c.UnitCost = *v
	}
	if v := util.CoerceNumber(rec["unitWeight"]); v != nil {
		c.UnitWeight = *v
	}
	return nil
}
