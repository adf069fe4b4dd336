package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"quotecore/internal"
)

// NormalizeMaterials normalizes every component of every material. Material
// fields and component order are kept; no I/O is done here.
func NormalizeMaterials(materials []internal.Material) []internal.Material {
	if materials == nil {
		return nil
	}
	out := make([]internal.Material, len(materials))
	for i, m := range materials {
		normalized := m
		if m.Components != nil {
			normalized.Components = make([]internal.ProductComponent, len(m.Components))
			for j, c := range m.Components {
				normalized.Components[j] = NormalizeComponent(c.Source())
			}
		}
		out[i] = normalized
	}
	return out
}

// Changed compares the structural JSON of two collections. Object key order
// and whitespace do not count; number spelling does.
func Changed(before, after []internal.Material) (bool, error) {
	a, err := structuralJSON(before)
	if err != nil {
		return false, fmt.Errorf("serialize stored materials: %w", err)
	}
	b, err := structuralJSON(after)
	if err != nil {
		return false, fmt.Errorf("serialize normalized materials: %w", err)
	}
	return !bytes.Equal(a, b), nil
}

// Migration rewrites a stored collection and reports whether it changed.
type Migration func([]internal.Material) ([]internal.Material, bool)

// Migrate is the default load-time migration. When the collections cannot be
// compared it reports no change, so nothing is written.
func Migrate(materials []internal.Material) ([]internal.Material, bool) {
	normalized := NormalizeMaterials(materials)
	changed, err := Changed(materials, normalized)
	if err != nil {
		return normalized, false
	}
	return normalized, changed
}

func structuralJSON(v any) ([]byte, error) {
	blob, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
