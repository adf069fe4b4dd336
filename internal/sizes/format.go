// Package sizes renders component dimensions for tables, spreadsheets and
// printed quotes.
package sizes

import (
	"strings"

	"quotecore/internal"
	"quotecore/internal/normalize"
	"quotecore/internal/util"
)

const (
	separator   = " × "
	defaultUnit = internal.UnitMillimeter
	emptySize   = "-"
	// compactWidth is how many characters of a value the compact form keeps.
	// Printed quotes depend on it, so 125.75 still shows as "125".
	compactWidth = 3
)

// Dimensions holds one display string per axis, nil when the axis is unset.
type Dimensions struct {
	DisplayLength   *string `json:"displayLength"`
	DisplayDiameter *string `json:"displayDiameter"`
	DisplayWidth    *string `json:"displayWidth"`
}

// FormatComponentSize renders a component as one compact string such as
// "C: 125mm × D: 20mm". It always returns a string, "-" when there is nothing
// to show.
func FormatComponentSize(c internal.ProductComponent) string {
	c = canonical(c)
	parts := make([]string, 0, len(internal.Axes))
	for _, axis := range internal.Axes {
		d := *c.Dimension(axis)
		switch {
		case d.Value != nil:
			parts = append(parts, axis.Label()+": "+truncate(util.FormatNumber(*d.Value))+string(unitOrDefault(d.Unit)))
		case util.HasText(d.RawInput):
			parts = append(parts, axis.Label()+": "+truncate(*d.RawInput))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, separator)
	}
	return fallbackSize(c)
}

// FormatComponentDimensions renders each axis in full, "<value> <unit>".
func FormatComponentDimensions(c internal.ProductComponent) Dimensions {
	c = canonical(c)
	return Dimensions{
		DisplayLength:   formatAxis(c.Length),
		DisplayDiameter: formatAxis(c.Diameter),
		DisplayWidth:    formatAxis(c.Width),
	}
}

// canonical normalizes a component still holding its stored record, so
// components decoded straight from storage render like normalized ones.
func canonical(c internal.ProductComponent) internal.ProductComponent {
	if c.Normalized() {
		return c
	}
	return normalize.NormalizeComponent(c.Source())
}

func formatAxis(d internal.Dimension) *string {
	unit := string(unitOrDefault(d.Unit))
	if d.Value != nil {
		return util.StringPtr(util.FormatNumber(*d.Value) + " " + unit)
	}
	if util.HasText(d.RawInput) {
		return util.StringPtr(*d.RawInput + " " + unit)
	}
	return nil
}

func fallbackSize(c internal.ProductComponent) string {
	if util.HasText(c.RawSizeString) {
		return *c.RawSizeString
	}

	switch v := c.SizeValue.(type) {
	case nil:
		return emptySize
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
		return emptySize
	case map[string]any:
		if text := reconstruct(v); text != "" {
			return text
		}
		return emptySize
	case []any:
		parts := make([]string, 0, len(v))
		for _, el := range v {
			if text, ok := normalize.Stringify(el); ok {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " / ")
		}
		return emptySize
	default:
		if text, ok := normalize.Stringify(v); ok && text != "" {
			return text
		}
		return emptySize
	}
}

// reconstruct rebuilds a size from the axis keys of a legacy object.
func reconstruct(obj map[string]any) string {
	parts := []string{}
	for _, axis := range internal.Axes {
		value := firstPresent(obj, normalize.AxisValueAliases(axis))
		if value == nil {
			continue
		}
		text, ok := normalize.Stringify(value)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		if unit, ok := firstPresent(obj, normalize.AxisUnitAliases(axis)).(string); ok {
			text += unit
		}
		parts = append(parts, axis.Label()+": "+text)
	}
	return strings.Join(parts, separator)
}

func firstPresent(obj map[string]any, keys []string) any {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > compactWidth {
		return string(r[:compactWidth])
	}
	return s
}

func unitOrDefault(u internal.Unit) internal.Unit {
	if u == internal.UnitNone {
		return defaultUnit
	}
	return u
}
