package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"quotecore/internal"
	"quotecore/internal/config"
	"quotecore/internal/storage"
)

const legacyCatalog = `[
  {"id": "EST-01", "name": "Estrutura soldada", "unitCost": 100, "unitWeight": 12.5, "weightUnit": "kg",
   "components": [
     {"id": "c1", "name": "Tubo", "unitCost": 30, "sizeValue": {"comprimento": "125", "unidade": "mm"}},
     {"id": "c2", "name": "Chapa", "unitCost": 20}
   ]},
  {"id": "PS-M8", "name": "Parafuso sextavado M8", "unitCost": 0.5, "unitWeight": 0.01, "components": []}
]`

func newTestService(t *testing.T) (*QuoteService, *storage.DB) {
	t.Helper()
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.SetDocument("acme", storage.MaterialsKey, legacyCatalog); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		DBPath:              filepath.Join(tmp, "app.db"),
		OutputDir:           tmp,
		TenantID:            "acme",
		ExportDecimalPlaces: 2,
		MigrateOnLoad:       true,
		QuoteListLimit:      10,
	}
	return NewQuoteService(db, cfg), db
}

func TestSmokeQuoteToXLSX(t *testing.T) {
	svc, db := newTestService(t)

	q := internal.Quote{
		ClientName:   "Cliente Teste",
		Items:        []internal.QuoteItem{{MaterialID: "EST-01", Quantity: 2}},
		ProfitMargin: 10,
	}
	bom := mkXLSX([][]any{
		{"Código", "Quantidade"},
		{"PS-M8", "10 pçs"},
		{"NAO-EXISTE", 1},
	})

	res, err := svc.Compute("", q, bom)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Quote.Items) != 2 {
		t.Fatalf("items=%+v", res.Quote.Items)
	}
	if len(res.Unresolved) != 1 {
		t.Fatalf("unresolved=%+v", res.Unresolved)
	}
	// 2 x 50 components, again as manufacturing, plus 10 x 0.5.
	if res.Costs.MaterialCost != 105 || res.Costs.TotalManufacturingCost != 100 {
		t.Fatalf("costs=%+v", res.Costs)
	}

	blob, err := db.GetDocument("acme", storage.MaterialsKey)
	if err != nil {
		t.Fatal(err)
	}
	if blob == nil || *blob == legacyCatalog {
		t.Fatal("migrated catalog was not written back")
	}

	out := filepath.Join(t.TempDir(), "quote.xlsx")
	if err := svc.Export(res, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	size, err := f.GetCellValue(componentsSheet, "C2")
	if err != nil {
		t.Fatal(err)
	}
	if size != "C: 125mm" {
		t.Fatalf("size=%q", size)
	}
	chapa, _ := f.GetCellValue(componentsSheet, "C3")
	if chapa != "-" {
		t.Fatalf("chapa size=%q", chapa)
	}
	final, _ := f.GetCellValue(summarySheet, "B10")
	if final != "225.5" {
		t.Fatalf("final=%q", final)
	}
}

func TestQuoteServiceSaveAndList(t *testing.T) {
	svc, _ := newTestService(t)

	q := internal.Quote{ClientName: "A", Items: []internal.QuoteItem{{MaterialID: "PS-M8", Quantity: 4}}}
	saved, err := svc.Save("", q)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" || saved.CreatedAt == "" {
		t.Fatalf("saved=%+v", saved)
	}

	list, err := svc.List("acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Fatalf("list=%+v", list)
	}

	res, err := svc.Recompute("", saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Costs.MaterialCost != 2 {
		t.Fatalf("material cost=%v", res.Costs.MaterialCost)
	}

	if _, err := svc.Recompute("", "missing"); err == nil {
		t.Fatal("expected error for unknown quote")
	}
}
