// Package listener watches an inbox directory for bill-of-materials
// spreadsheets and turns each new one into a priced quote workbook.
package listener

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"quotecore/internal"
	"quotecore/internal/config"
	"quotecore/internal/pipeline"
	"quotecore/internal/storage"
)

type Service struct {
	db     *storage.DB
	cfg    config.Config
	quotes *pipeline.QuoteService
	tenant string
}

func NewService(db *storage.DB, cfg config.Config, tenant string) *Service {
	if strings.TrimSpace(tenant) == "" {
		tenant = cfg.TenantID
	}
	return &Service{db: db, cfg: cfg, quotes: pipeline.NewQuoteService(db, cfg), tenant: tenant}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.WatchIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	for {
		if _, err := s.RunCycle(); err != nil {
			fmt.Printf("listener cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// RunCycle prices every spreadsheet in the inbox that was not seen before, or
// that changed since it was last seen, and returns the exported paths. A file
// that cannot be priced is logged and recorded under "inbox.failed.*"; the
// remaining files are still processed.
func (s *Service) RunCycle() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.InboxDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var exported []string
	failed := 0
	for _, name := range names {
		path := filepath.Join(s.cfg.InboxDir, name)
		info, err := os.Stat(path)
		if err != nil {
			return exported, err
		}
		stamp := info.ModTime().UTC().Format(time.RFC3339Nano)
		key := "inbox.processed." + s.tenant + "." + name
		seen, err := s.db.GetMetadata(key)
		if err != nil {
			return exported, err
		}
		if seen != nil && *seen == stamp {
			continue
		}

		// A file that fails is stamped too; it is retried once it changes.
		out, procErr := s.processFile(path)
		if err := s.db.SetMetadata(key, stamp); err != nil {
			return exported, err
		}
		failedKey := "inbox.failed." + s.tenant + "." + name
		if procErr != nil {
			failed++
			fmt.Printf("listener file error file=%s: %v\n", name, procErr)
			if err := s.db.SetMetadata(failedKey, procErr.Error()); err != nil {
				return exported, err
			}
			continue
		}
		if err := s.db.SetMetadata(failedKey, ""); err != nil {
			return exported, err
		}
		exported = append(exported, out)
	}

	fmt.Printf("listener cycle done tenant=%s files=%d exported=%d failed=%d\n", s.tenant, len(names), len(exported), failed)
	return exported, nil
}

func (s *Service) processFile(path string) (string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	q := internal.Quote{ClientName: base, ProfitMargin: s.cfg.DefaultProfitMargin}
	res, err := s.quotes.Compute(s.tenant, q, blob)
	if err != nil {
		return "", err
	}
	for _, line := range res.Unresolved {
		fmt.Printf("unresolved bom row file=%s sheet=%s row=%d ref=%q\n", filepath.Base(path), line.Sheet, line.RowNumber, line.Reference)
	}

	outputPath := filepath.Join(s.cfg.OutputDir, "listener", sanitizeName(base)+"_quote.xlsx")
	if err := s.quotes.Export(res, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

func sanitizeName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
