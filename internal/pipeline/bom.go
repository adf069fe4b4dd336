package pipeline

import (
	"bytes"
	"math"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"quotecore/internal"
	"quotecore/internal/catalog"
	"quotecore/internal/util"
)

var reSpaces = regexp.MustCompile(`\s+`)

// BOMLine is one data row of a bill-of-materials sheet.
type BOMLine struct {
	Sheet      string
	RowNumber  int
	Reference  string
	QtyRaw     string
	Quantity   int
	Resolution catalog.Resolution
}

type BOMResult struct {
	Items      []internal.QuoteItem
	Lines      []BOMLine
	Unresolved []BOMLine
}

// ImportBOM reads quote items from a spreadsheet. Each row names a material
// (by id, code or name) and a quantity; rows whose material cannot be resolved
// are reported in Unresolved and left out of Items.
func ImportBOM(content []byte, idx *catalog.Index, minScore float64) (BOMResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return BOMResult{}, err
	}
	defer f.Close()

	out := BOMResult{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		refIdx, qtyIdx := 0, 1
		headerFound := false
		for i, row := range rows {
			cells := normalizeCells(row)
			if len(cells) == 0 {
				continue
			}
			if i < 3 && !headerFound {
				r, q := inferBOMColumns(cells)
				if r >= 0 || q >= 0 {
					headerFound = true
					refIdx, qtyIdx = headerColumns(r, q)
					continue
				}
			}

			ref := pickCell(cells, refIdx, -1)
			qtyCell := pickCell(cells, qtyIdx, -1)
			parsed := util.ParseQty(qtyCell)
			if ref == "" || parsed.Qty == nil {
				continue
			}

			line := BOMLine{
				Sheet:     sheet,
				RowNumber: i + 1,
				Reference: ref,
				QtyRaw:    qtyCell,
				Quantity:  int(math.Round(*parsed.Qty)),
			}
			line.Resolution = idx.Resolve(ref, minScore)
			out.Lines = append(out.Lines, line)
			if line.Resolution.Material == nil {
				out.Unresolved = append(out.Unresolved, line)
				continue
			}
			out.Items = append(out.Items, internal.QuoteItem{
				MaterialID: line.Resolution.Material.ID,
				Quantity:   line.Quantity,
			})
		}
	}

	return out, nil
}

func findHeaderIndex(headers []string, probes []string, skip int) int {
	for i, h := range headers {
		if i == skip {
			continue
		}
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int, fallback int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	if fallback >= 0 && fallback < len(cells) {
		return strings.TrimSpace(cells[fallback])
	}
	return ""
}

func inferBOMColumns(headers []string) (refIdx, qtyIdx int) {
	norm := make([]string, 0, len(headers))
	for _, h := range headers {
		norm = append(norm, strings.ToLower(util.FoldAccents(h)))
	}
	qtyIdx = findHeaderIndex(norm, []string{"quant", "qtd", "qtde", "qty"}, -1)
	refIdx = findHeaderIndex(norm, []string{"codigo", "material", "produto", "descricao", "item", "name", "nome"}, qtyIdx)
	if refIdx < 0 {
		for i, h := range norm {
			if h == "id" && i != qtyIdx {
				refIdx = i
				break
			}
		}
	}
	return
}

// headerColumns fills in whichever column the header row did not name.
func headerColumns(refIdx, qtyIdx int) (int, int) {
	if refIdx < 0 {
		refIdx = 0
		if qtyIdx == 0 {
			refIdx = 1
		}
	}
	if qtyIdx < 0 {
		qtyIdx = refIdx + 1
	}
	return refIdx, qtyIdx
}

func normalizeCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, strings.TrimSpace(reSpaces.ReplaceAllString(c, " ")))
	}
	return out
}
