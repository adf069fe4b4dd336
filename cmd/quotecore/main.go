package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quotecore/internal"
	"quotecore/internal/catalog"
	"quotecore/internal/config"
	"quotecore/internal/costing"
	"quotecore/internal/listener"
	"quotecore/internal/pipeline"
	"quotecore/internal/sizes"
	"quotecore/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(cfg.Require("DB_PATH", cfg.DBPath))
	must(cfg.Require("TENANT_ID", cfg.TenantID))

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	svc := pipeline.NewQuoteService(db, cfg)
	places := int32(cfg.ExportDecimalPlaces)

	cmd := os.Args[1]
	switch cmd {
	case "materials:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		file := fs.String("file", "", "materials json file")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		blob, err := os.ReadFile(*file)
		must(err)
		var materials []internal.Material
		must(json.Unmarshal(blob, &materials))
		imported, err := svc.ImportMaterials(*tenant, materials)
		must(err)
		fmt.Printf("imported materials tenant=%s count=%d\n", *tenant, len(imported))
	case "materials:migrate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		_ = fs.Parse(os.Args[2:])
		res, err := catalog.NewLoader(db, nil, true).Load(*tenant)
		must(err)
		fmt.Printf("migration done tenant=%s materials=%d changed=%t written=%t\n", *tenant, len(res.Materials), res.Changed, res.Written)
	case "materials:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		_ = fs.Parse(os.Args[2:])
		materials, err := svc.Materials(*tenant)
		must(err)
		for _, m := range materials {
			fmt.Printf("%s\t%s\tunitCost=%v\tcomponents=%d\n", m.ID, m.Name, costing.Round(costing.EffectiveUnitCost(m), places), len(m.Components))
			for _, c := range m.Components {
				fmt.Printf("  - %s\t%s\tunitCost=%v\n", c.Name, sizes.FormatComponentSize(c), costing.Round(c.UnitCost, places))
			}
		}
	case "quote:compute":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		quotePath := fs.String("quote", "", "quote json file")
		bomPath := fs.String("bom", "", "optional bill of materials xlsx")
		out := fs.String("out", "", "optional output xlsx path")
		asJSON := fs.Bool("json", false, "print costs as json")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*quotePath) == "" {
			must(fmt.Errorf("--quote is required"))
		}
		q, err := readQuote(*quotePath, cfg.DefaultProfitMargin)
		must(err)
		var bom []byte
		if strings.TrimSpace(*bomPath) != "" {
			bom, err = os.ReadFile(*bomPath)
			must(err)
		}
		res, err := svc.Compute(*tenant, q, bom)
		must(err)
		printCosts(res, places, *asJSON)
		if strings.TrimSpace(*out) != "" {
			must(svc.Export(res, *out))
			fmt.Printf("exported quote to %s\n", *out)
		}
	case "quote:save":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		quotePath := fs.String("quote", "", "quote json file")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*quotePath) == "" {
			must(fmt.Errorf("--quote is required"))
		}
		q, err := readQuote(*quotePath, cfg.DefaultProfitMargin)
		must(err)
		saved, err := svc.Save(*tenant, q)
		must(err)
		fmt.Printf("saved quote id=%s client=%s items=%d\n", saved.ID, q.ClientName, len(q.Items))
	case "quote:show":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		id := fs.String("id", "", "saved quote id")
		out := fs.String("out", "", "optional output xlsx path")
		asJSON := fs.Bool("json", false, "print costs as json")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*id) == "" {
			must(fmt.Errorf("--id is required"))
		}
		res, err := svc.Recompute(*tenant, *id)
		must(err)
		printCosts(res, places, *asJSON)
		if strings.TrimSpace(*out) != "" {
			must(svc.Export(res, *out))
			fmt.Printf("exported quote to %s\n", *out)
		}
	case "quote:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		_ = fs.Parse(os.Args[2:])
		quotes, err := svc.List(*tenant)
		must(err)
		for _, q := range quotes {
			fmt.Printf("%s\t%s\t%s\titems=%d\n", q.ID, q.CreatedAt, q.Quote.ClientName, len(q.Quote.Items))
		}
	case "quote:watch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenant := fs.String("tenant", cfg.TenantID, "tenant id")
		once := fs.Bool("once", false, "run a single cycle and exit")
		_ = fs.Parse(os.Args[2:])
		s := listener.NewService(db, cfg, *tenant)
		if *once {
			exported, err := s.RunCycle()
			must(err)
			for _, path := range exported {
				fmt.Printf("exported %s\n", path)
			}
			return
		}
		must(s.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

// readQuote decodes a quote file; a file without profitMargin gets the
// configured default.
func readQuote(path string, defaultMargin float64) (internal.Quote, error) {
	blob, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return internal.Quote{}, err
	}
	var q internal.Quote
	if err := json.Unmarshal(blob, &q); err != nil {
		return internal.Quote{}, fmt.Errorf("decode quote %s: %w", path, err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(blob, &keys); err != nil {
		return internal.Quote{}, fmt.Errorf("decode quote %s: %w", path, err)
	}
	if _, ok := keys["profitMargin"]; !ok {
		q.ProfitMargin = defaultMargin
	}
	return q, nil
}

func printCosts(res pipeline.QuoteResult, places int32, asJSON bool) {
	costs := costing.Rounded(res.Costs, places)
	if asJSON {
		blob, err := json.MarshalIndent(costs, "", "  ")
		must(err)
		fmt.Println(string(blob))
	} else {
		for _, line := range costs.Lines {
			if !line.Found {
				fmt.Printf("  %s\tqty=%d\tmaterial not found\n", line.MaterialID, line.Quantity)
				continue
			}
			fmt.Printf("  %s\t%s\tqty=%d\tunit=%v\tmaterial=%v\tmanufacturing=%v\n",
				line.MaterialID, line.MaterialName, line.Quantity, line.EffectiveUnitCost, line.MaterialCost, line.ManufacturingCost)
		}
		fmt.Printf("material=%v manufacturing=%v labor=%v machine=%v freight=%v\n",
			costs.MaterialCost, costs.TotalManufacturingCost, costs.LaborCost, costs.MachineCost, costs.FreightCost)
		fmt.Printf("total=%v profit=%v final=%v weight=%v\n",
			costs.TotalProjectCost, costs.ProfitValue, costs.FinalValue, costs.TotalWeight)
	}
	for _, line := range res.Unresolved {
		fmt.Printf("unresolved bom row sheet=%s row=%d ref=%q qty=%s\n", line.Sheet, line.RowNumber, line.Reference, line.QtyRaw)
	}
}

func usage() {
	fmt.Println("usage: quotecore <command>")
	fmt.Println("commands:")
	fmt.Println("  materials:import --file=materials.json [--tenant=...]")
	fmt.Println("  materials:migrate [--tenant=...]")
	fmt.Println("  materials:list [--tenant=...]")
	fmt.Println("  quote:compute --quote=quote.json [--bom=bom.xlsx] [--out=./out/quote.xlsx] [--json]")
	fmt.Println("  quote:save --quote=quote.json [--tenant=...]")
	fmt.Println("  quote:show --id=... [--out=./out/quote.xlsx] [--json]")
	fmt.Println("  quote:list [--tenant=...]")
	fmt.Println("  quote:watch [--tenant=...] [--once]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
