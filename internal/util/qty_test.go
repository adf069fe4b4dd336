package util

import "testing"

func TestParseQty(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		want     float64
		wantUnit string
	}{
		{name: "thousand with space", input: "Parafuso M8 1 000 un", want: 1000, wantUnit: "un"},
		{name: "decimal comma", input: "Cabo 1,5 m", want: 1.5, wantUnit: "m"},
		{name: "decimal dot", input: "Cabo 1.5 m", want: 1.5, wantUnit: "m"},
		{name: "thousand dot", input: "Arruela 1.000 pçs", want: 1000, wantUnit: "pç"},
		{name: "dimension and qty", input: "Chapa 2mm 10 peças", want: 10, wantUnit: "pç"},
		{name: "bare number", input: "25", want: 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := ParseQty(tc.input)
			if parsed.Qty == nil {
				t.Fatalf("qty is nil")
			}
			if *parsed.Qty != tc.want {
				t.Fatalf("got %v want %v", *parsed.Qty, tc.want)
			}
			if tc.wantUnit != "" && (parsed.Unit == nil || *parsed.Unit != tc.wantUnit) {
				t.Fatalf("unit=%v want %s", parsed.Unit, tc.wantUnit)
			}
		})
	}
}
