package util

import (
	"encoding/json"
	"testing"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  *float64
	}{
		{name: "float", input: 12.5, want: FloatPtr(12.5)},
		{name: "int", input: 7, want: FloatPtr(7)},
		{name: "json number", input: json.Number("3.25"), want: FloatPtr(3.25)},
		{name: "string with unit", input: "10.5cm", want: FloatPtr(10.5)},
		{name: "percent", input: "30%", want: FloatPtr(30)},
		{name: "spaced", input: " 4 mm ", want: FloatPtr(4)},
		{name: "decimal comma keeps integer part", input: "12,5", want: FloatPtr(12)},
		{name: "letters only", input: "abc", want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "bool", input: true, want: nil},
		{name: "nil", input: nil, want: nil},
		{name: "object", input: map[string]any{"a": 1}, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoerceNumber(tc.input)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("got %v want nil", *got)
				}
				return
			}
			if got == nil || *got != *tc.want {
				t.Fatalf("got %v want %v", got, *tc.want)
			}
		})
	}
}

func TestCoerceString(t *testing.T) {
	if got := CoerceString(json.Number("42")); got != "42" {
		t.Fatalf("got %q", got)
	}
	if got := CoerceString(float64(7)); got != "7" {
		t.Fatalf("got %q", got)
	}
	if got := CoerceString(map[string]any{}); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("Tubo  aço inox 1/2”"); got != "TUBO ACO INOX 1/2" {
		t.Fatalf("got %q", got)
	}
}
