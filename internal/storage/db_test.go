package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"quotecore/internal"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMaterialsRoundTripKeepsStoredComponents(t *testing.T) {
	db := openTemp(t)

	blob := `[{"id":"m1","name":"Tubo","description":"","categoryId":"","unitWeight":1,"weightUnit":"kg","unitCost":10,"components":[{"legacy":true,"sizeValue":"10x20"}]}]`
	if err := db.SetDocument("acme", MaterialsKey, blob); err != nil {
		t.Fatal(err)
	}

	materials, err := db.LoadMaterials("acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(materials) != 1 || len(materials[0].Components) != 1 {
		t.Fatalf("unexpected materials: %+v", materials)
	}
	if err := db.SaveMaterials("acme", materials); err != nil {
		t.Fatal(err)
	}

	stored, err := db.GetDocument("acme", MaterialsKey)
	if err != nil {
		t.Fatal(err)
	}
	var got, want any
	_ = json.Unmarshal([]byte(*stored), &got)
	_ = json.Unmarshal([]byte(blob), &want)
	gotBlob, _ := json.Marshal(got)
	wantBlob, _ := json.Marshal(want)
	if string(gotBlob) != string(wantBlob) {
		t.Fatalf("stored %s want %s", gotBlob, wantBlob)
	}
}

func TestDocumentsAreTenantScoped(t *testing.T) {
	db := openTemp(t)

	if err := db.SaveMaterials("a", []internal.Material{{ID: "x", UnitCost: 1}}); err != nil {
		t.Fatal(err)
	}
	other, err := db.LoadMaterials("b")
	if err != nil {
		t.Fatal(err)
	}
	if other != nil {
		t.Fatalf("tenant b sees %+v", other)
	}

	if err := db.SaveMaterials("a", []internal.Material{{ID: "y", UnitCost: 2}}); err != nil {
		t.Fatal(err)
	}
	mine, err := db.LoadMaterials("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != "y" {
		t.Fatalf("last write should win: %+v", mine)
	}
}

func TestQuotes(t *testing.T) {
	db := openTemp(t)

	q := internal.SavedQuote{
		ID:        "q1",
		CreatedAt: "2026-01-02T03:04:05Z",
		Quote:     internal.Quote{ClientName: "Metalúrgica", Items: []internal.QuoteItem{{MaterialID: "m1", Quantity: 4}}, ProfitMargin: 20},
	}
	if err := db.SaveQuote("acme", q); err != nil {
		t.Fatal(err)
	}

	got, err := db.MustQuote("acme", "q1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Quote.ClientName != "Metalúrgica" || len(got.Quote.Items) != 1 || got.Quote.Items[0].Quantity != 4 {
		t.Fatalf("unexpected quote: %+v", got)
	}

	if _, err := db.MustQuote("other", "q1"); err == nil {
		t.Fatal("expected not found for other tenant")
	}

	list, err := db.ListQuotes("acme", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("len=%d", len(list))
	}
}

func TestMetadata(t *testing.T) {
	db := openTemp(t)
	missing, err := db.GetMetadata("k")
	if err != nil || missing != nil {
		t.Fatalf("missing=%v err=%v", missing, err)
	}
	if err := db.SetMetadata("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata("k", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetMetadata("k")
	if err != nil || got == nil || *got != "v2" {
		t.Fatalf("got=%v err=%v", got, err)
	}
}
