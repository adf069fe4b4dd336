package normalize

import (
	"bytes"
	"encoding/json"
	"strings"

	"quotecore/internal"
	"quotecore/internal/util"
)

// sizeKind tags the shapes a legacy sizeValue has been stored in.
type sizeKind int

const (
	sizeAbsent  sizeKind = iota
	sizeText             // a string that is not JSON
	sizeEncoded          // a string holding JSON
	sizeList             // an array of sizes or size fragments
	sizeNested           // an object with a "dimensions" or "size" object inside
	sizeFlat             // an object with axis keys at its top level
	sizeScalar           // a bare number or boolean
)

type legacySize struct {
	kind  sizeKind
	value any
	inner *legacySize
}

// resolveSize classifies a stored sizeValue. JSON held in a string is decoded
// once; the decoded payload is classified again as the inner variant.
func resolveSize(v any) legacySize {
	switch t := v.(type) {
	case nil:
		return legacySize{kind: sizeAbsent}
	case string:
		decoded, ok := decodeJSON(t)
		if !ok {
			return legacySize{kind: sizeText, value: t}
		}
		inner := classify(decoded)
		return legacySize{kind: sizeEncoded, value: t, inner: &inner}
	default:
		return classify(t)
	}
}

func classify(v any) legacySize {
	switch t := v.(type) {
	case nil:
		return legacySize{kind: sizeAbsent}
	case string:
		return legacySize{kind: sizeText, value: t}
	case []any:
		return legacySize{kind: sizeList, value: t}
	case map[string]any:
		if nestedObject(t) != nil {
			return legacySize{kind: sizeNested, value: t}
		}
		return legacySize{kind: sizeFlat, value: t}
	case internal.Record:
		return classify(map[string]any(t))
	default:
		return legacySize{kind: sizeScalar, value: t}
	}
}

// fields is the object searched for axis aliases, or nil when the size was
// not stored as an object.
func (s legacySize) fields() internal.Record {
	switch s.kind {
	case sizeEncoded:
		return s.inner.fields()
	case sizeList:
		return pickElement(s.value.([]any))
	case sizeNested:
		return mergeNested(s.value.(map[string]any))
	case sizeFlat:
		return internal.Record(s.value.(map[string]any))
	default:
		return nil
	}
}

// render is the readable fallback used when no axis resolved. ok is false
// when nothing sensible can be shown.
func (s legacySize) render() (string, bool) {
	var out string
	switch s.kind {
	case sizeText:
		out = s.value.(string)
	case sizeEncoded:
		return s.inner.render()
	case sizeList:
		parts := make([]string, 0, len(s.value.([]any)))
		for _, el := range s.value.([]any) {
			text, _ := Stringify(el)
			parts = append(parts, text)
		}
		out = strings.Join(parts, " / ")
	case sizeNested, sizeFlat:
		if len(s.value.(map[string]any)) == 0 {
			return "", false
		}
		out, _ = Stringify(s.value)
	case sizeScalar:
		out, _ = Stringify(s.value)
	default:
		return "", false
	}
	out = strings.TrimSpace(out)
	if out == "" || out == "[object Object]" {
		return "", false
	}
	return out, true
}

func pickElement(list []any) internal.Record {
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			return mergeNested(m)
		}
	}
	return nil
}

func nestedObject(m map[string]any) map[string]any {
	for _, key := range []string{"dimensions", "size"} {
		if inner, ok := m[key].(map[string]any); ok {
			return inner
		}
	}
	return nil
}

// mergeNested lays "dimensions" and then "size" over the outer object.
func mergeNested(m map[string]any) internal.Record {
	out := internal.Record{}
	for k, v := range m {
		out[k] = v
	}
	for _, key := range []string{"dimensions", "size"} {
		if inner, ok := m[key].(map[string]any); ok {
			for k, v := range inner {
				out[k] = v
			}
		}
	}
	return out
}

func decodeJSON(s string) (any, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return v, true
}

// Stringify renders any decoded JSON value as display text. Objects and
// arrays come out as compact JSON.
func Stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return util.FormatNumber(t), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return "", false
		}
		return strings.TrimSpace(buf.String()), true
	}
}
