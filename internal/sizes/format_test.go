package sizes

import (
	"encoding/json"
	"testing"

	"quotecore/internal"
	"quotecore/internal/util"
)

func TestFormatComponentSize(t *testing.T) {
	cases := []struct {
		name string
		in   internal.ProductComponent
		want string
	}{
		{
			name: "value truncated to three characters",
			in:   internal.ProductComponent{Length: internal.Dimension{Value: util.FloatPtr(125.75), Unit: internal.UnitMillimeter}},
			want: "C: 125mm",
		},
		{
			name: "default unit",
			in:   internal.ProductComponent{Diameter: internal.Dimension{Value: util.FloatPtr(20)}},
			want: "D: 20mm",
		},
		{
			name: "raw input truncated",
			in:   internal.ProductComponent{Width: internal.Dimension{RawInput: util.StringPtr("12.5cm")}},
			want: "L: 12.",
		},
		{
			name: "all axes joined in order",
			in: internal.ProductComponent{
				Width:    internal.Dimension{Value: util.FloatPtr(5), Unit: internal.UnitCentimeter},
				Length:   internal.Dimension{Value: util.FloatPtr(1.5), Unit: internal.UnitInch},
				Diameter: internal.Dimension{Value: util.FloatPtr(0.75), Unit: internal.UnitInch},
			},
			want: "C: 1.5in × D: 0.7in × L: 5cm",
		},
		{
			name: "raw size string fallback",
			in:   internal.ProductComponent{RawSizeString: util.StringPtr("2 x 300 x 400")},
			want: "2 x 300 x 400",
		},
		{
			name: "string size value fallback",
			in:   internal.ProductComponent{SizeValue: "10x20"},
			want: "10x20",
		},
		{
			name: "numeric size value fallback",
			in:   internal.ProductComponent{SizeValue: json.Number("42")},
			want: "42",
		},
		{
			name: "object size value reconstructed",
			in:   internal.ProductComponent{SizeValue: map[string]any{"comprimento": json.Number("10"), "comprimentoUnit": "cm", "w": "3"}},
			want: "C: 10cm × L: 3",
		},
		{
			name: "object without axes",
			in:   internal.ProductComponent{SizeValue: map[string]any{"foo": "bar"}},
			want: "-",
		},
		{
			name: "array size value",
			in:   internal.ProductComponent{SizeValue: []any{"10", json.Number("20")}},
			want: "10 / 20",
		},
		{
			name: "nothing",
			in:   internal.ProductComponent{},
			want: "-",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatComponentSize(tc.in); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFormatComponentDimensions(t *testing.T) {
	c := internal.ProductComponent{
		Length: internal.Dimension{Value: util.FloatPtr(125.75), Unit: internal.UnitMillimeter},
		Width:  internal.Dimension{RawInput: util.StringPtr("1 1/2"), Unit: internal.UnitInch},
	}
	got := FormatComponentDimensions(c)
	if got.DisplayLength == nil || *got.DisplayLength != "125.75 mm" {
		t.Fatalf("length=%v", got.DisplayLength)
	}
	if got.DisplayDiameter != nil {
		t.Fatalf("diameter=%q", *got.DisplayDiameter)
	}
	if got.DisplayWidth == nil || *got.DisplayWidth != "1 1/2 in" {
		t.Fatalf("width=%v", got.DisplayWidth)
	}
}

func decodeStored(t *testing.T, blob string) internal.ProductComponent {
	t.Helper()
	var c internal.ProductComponent
	if err := json.Unmarshal([]byte(blob), &c); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFormatComponentSizeOnStoredComponent(t *testing.T) {
	cases := []struct {
		name string
		blob string
		want string
	}{
		{name: "canonical", blob: `{"id":"c","lengthValue":125.75,"lengthUnit":"mm"}`, want: "C: 125mm"},
		{name: "legacy object", blob: `{"sizeValue":{"d":"3/4\"","dUnit":""}}`, want: "D: 0.7in"},
		{name: "legacy text", blob: `{"sizeValue":"12x4 chapa"}`, want: "12x4 chapa"},
		{name: "nothing", blob: `{"id":"c"}`, want: "-"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatComponentSize(decodeStored(t, tc.blob)); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFormatComponentDimensionsOnStoredComponent(t *testing.T) {
	got := FormatComponentDimensions(decodeStored(t, `{"id":"c","lengthValue":125.75,"lengthUnit":"mm","widthValue":3,"widthUnit":"cm"}`))
	if got.DisplayLength == nil || *got.DisplayLength != "125.75 mm" {
		t.Fatalf("length=%v", got.DisplayLength)
	}
	if got.DisplayWidth == nil || *got.DisplayWidth != "3 cm" {
		t.Fatalf("width=%v", got.DisplayWidth)
	}
	if got.DisplayDiameter != nil {
		t.Fatalf("diameter=%v", *got.DisplayDiameter)
	}
}
