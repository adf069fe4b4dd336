package util

import "testing"

func TestParseDimension(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "mixed fraction", input: "1 1/2", want: FloatPtr(1.5)},
		{name: "simple fraction", input: "3/4", want: FloatPtr(0.75)},
		{name: "centimeters", input: "10.5cm", want: FloatPtr(10.5)},
		{name: "inch mark", input: `1/2"`, want: FloatPtr(0.5)},
		{name: "mixed fraction inches", input: `2 3/4"`, want: FloatPtr(2.75)},
		{name: "unit with space", input: "12 mm", want: FloatPtr(12)},
		{name: "bare decimal point", input: ".5", want: FloatPtr(0.5)},
		{name: "negative", input: "-3", want: FloatPtr(-3)},
		{name: "padded", input: "  42  ", want: FloatPtr(42)},
		{name: "feet", input: "6ft", want: FloatPtr(6)},
		{name: "empty", input: "", want: nil},
		{name: "only unit", input: "mm", want: nil},
		{name: "letters", input: "abc", want: nil},
		{name: "zero denominator", input: "5/0", want: nil},
		{name: "two numbers", input: "10 x 20", want: nil},
		{name: "spaced slash", input: "1 / 2", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDimension(tc.input)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("ParseDimension(%q) = %v, want nil", tc.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseDimension(%q) = nil, want %v", tc.input, *tc.want)
			}
			if *got != *tc.want {
				t.Fatalf("ParseDimension(%q) = %v, want %v", tc.input, *got, *tc.want)
			}
		})
	}
}

// Unit tokens are removed wherever they appear, even inside words.
func TestParseDimensionStripsEmbeddedTokens(t *testing.T) {
	got := ParseDimension("5min")
	if got == nil || *got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}
