package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"quotecore/internal"
	"quotecore/internal/costing"
	"quotecore/internal/sizes"
)

const (
	summarySheet    = "Resumo"
	linesSheet      = "Itens"
	componentsSheet = "Componentes"
)

// ExportQuoteToXLSX writes a quote workbook: the cost summary, one row per
// quote line and one row per component of every quoted material. Money values
// are rounded to places decimals.
func ExportQuoteToXLSX(q internal.Quote, costs internal.CalculatedCosts, materials []internal.Material, places int32, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(componentsSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rounded := costing.Rounded(costs, places)
	summary := [][]any{
		{"Cliente", q.ClientName},
		{"Custo de material", rounded.MaterialCost},
		{"Mão de obra", rounded.LaborCost},
		{"Máquinas", rounded.MachineCost},
		{"Custo de fabricação", rounded.TotalManufacturingCost},
		{"Frete", rounded.FreightCost},
		{"Custo total", rounded.TotalProjectCost},
		{"Margem (%)", q.ProfitMargin},
		{"Lucro", rounded.ProfitValue},
		{"Valor final", rounded.FinalValue},
		{"Peso total", rounded.TotalWeight},
	}
	for i, row := range summary {
		writeRow(f, summarySheet, i+1, row)
	}
	_ = f.SetCellStyle(summarySheet, "A1", cellName(1, len(summary)), headerStyle)

	writeRow(f, linesSheet, 1, []any{
		"material_id", "material", "quantidade", "custo_componentes", "custo_unitario",
		"custo_material", "custo_fabricacao", "peso", "encontrado",
	})
	_ = f.SetCellStyle(linesSheet, "A1", cellName(9, 1), headerStyle)
	for i, line := range rounded.Lines {
		writeRow(f, linesSheet, i+2, []any{
			line.MaterialID, line.MaterialName, line.Quantity, line.ComponentsCost, line.EffectiveUnitCost,
			line.MaterialCost, line.ManufacturingCost, line.Weight, line.Found,
		})
	}

	writeRow(f, componentsSheet, 1, []any{
		"material_id", "componente", "tamanho", "comprimento", "diametro", "largura", "custo_unitario", "peso_unitario",
	})
	_ = f.SetCellStyle(componentsSheet, "A1", cellName(8, 1), headerStyle)
	r := 2
	for _, m := range quotedMaterials(q, materials) {
		for _, c := range m.Components {
			dims := sizes.FormatComponentDimensions(c)
			writeRow(f, componentsSheet, r, []any{
				m.ID, c.Name, sizes.FormatComponentSize(c),
				derefString(dims.DisplayLength), derefString(dims.DisplayDiameter), derefString(dims.DisplayWidth),
				costing.Round(c.UnitCost, places), c.UnitWeight,
			})
			r++
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// quotedMaterials lists the materials the quote refers to, once each, in
// order of first appearance.
func quotedMaterials(q internal.Quote, materials []internal.Material) []internal.Material {
	byID := make(map[string]internal.Material, len(materials))
	for _, m := range materials {
		if _, exists := byID[m.ID]; !exists {
			byID[m.ID] = m
		}
	}
	seen := map[string]bool{}
	var out []internal.Material
	for _, item := range q.Items {
		m, ok := byID[item.MaterialID]
		if !ok || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		_ = f.SetCellValue(sheet, cellName(i+1, row), v)
	}
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
