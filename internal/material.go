package internal

import (
	"bytes"
	"encoding/json"
)

// materialFields has Material's fields without its JSON methods.
type materialFields Material

var materialKeys = map[string]struct{}{
	"id": {}, "name": {}, "description": {}, "categoryId": {},
	"unitWeight": {}, "weightUnit": {}, "unitCost": {}, "components": {},
}

// MarshalJSON writes the known fields and then any stored keys kept in Extra.
func (m Material) MarshalJSON() ([]byte, error) {
	blob, err := json.Marshal(materialFields(m))
	if err != nil || len(m.Extra) == 0 {
		return blob, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(blob, &merged); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if _, known := materialKeys[k]; known {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// UnmarshalJSON keeps keys outside the known set in Extra so that a stored
// material is written back with everything it was read with.
func (m *Material) UnmarshalJSON(data []byte) error {
	var fields materialFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, raw := range all {
		if _, known := materialKeys[k]; known {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if fields.Extra == nil {
			fields.Extra = map[string]any{}
		}
		fields.Extra[k] = v
	}

	*m = Material(fields)
	return nil
}
