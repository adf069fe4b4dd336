package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"quotecore/internal"
	"quotecore/internal/catalog"
	"quotecore/internal/config"
	"quotecore/internal/costing"
	"quotecore/internal/storage"
)

// DefaultMatchScore is the lowest name similarity a BOM row may resolve with.
const DefaultMatchScore = 0.8

type QuoteService struct {
	db     *storage.DB
	cfg    config.Config
	loader *catalog.Loader
}

func NewQuoteService(db *storage.DB, cfg config.Config) *QuoteService {
	return &QuoteService{
		db:     db,
		cfg:    cfg,
		loader: catalog.NewLoader(db, nil, cfg.MigrateOnLoad),
	}
}

type QuoteResult struct {
	Quote      internal.Quote
	Costs      internal.CalculatedCosts
	Materials  []internal.Material
	Unresolved []BOMLine
}

// Materials loads the tenant's catalog through the migration.
func (s *QuoteService) Materials(tenant string) ([]internal.Material, error) {
	res, err := s.loader.Load(s.tenant(tenant))
	if err != nil {
		return nil, err
	}
	return res.Materials, nil
}

func (s *QuoteService) ImportMaterials(tenant string, materials []internal.Material) ([]internal.Material, error) {
	return s.loader.Import(s.tenant(tenant), materials)
}

// Compute prices q against the tenant's catalog. When bom is not empty its
// rows are appended to the quote items first.
func (s *QuoteService) Compute(tenant string, q internal.Quote, bom []byte) (QuoteResult, error) {
	start := time.Now()
	materials, err := s.Materials(tenant)
	if err != nil {
		return QuoteResult{}, err
	}

	res := QuoteResult{Materials: materials}
	if len(bom) > 0 {
		imported, err := ImportBOM(bom, catalog.BuildIndex(materials), DefaultMatchScore)
		if err != nil {
			return QuoteResult{}, fmt.Errorf("read bom: %w", err)
		}
		q.Items = append(q.Items, imported.Items...)
		res.Unresolved = imported.Unresolved
	}

	res.Quote = q
	res.Costs = costing.ComputeQuoteCosts(q, materials)
	fmt.Printf("quote computed tenant=%s items=%d unresolved=%d final=%.2f ms=%d\n",
		s.tenant(tenant), len(q.Items), len(res.Unresolved), res.Costs.FinalValue, time.Since(start).Milliseconds())
	return res, nil
}

// Save stores the quote inputs under a new id.
func (s *QuoteService) Save(tenant string, q internal.Quote) (internal.SavedQuote, error) {
	saved := internal.SavedQuote{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Quote:     q,
	}
	if err := s.db.SaveQuote(s.tenant(tenant), saved); err != nil {
		return internal.SavedQuote{}, fmt.Errorf("save quote: %w", err)
	}
	return saved, nil
}

// Recompute prices a saved quote against the current catalog.
func (s *QuoteService) Recompute(tenant, id string) (QuoteResult, error) {
	saved, err := s.db.MustQuote(s.tenant(tenant), id)
	if err != nil {
		return QuoteResult{}, err
	}
	return s.Compute(tenant, saved.Quote, nil)
}

func (s *QuoteService) List(tenant string) ([]internal.SavedQuote, error) {
	limit := s.cfg.QuoteListLimit
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListQuotes(s.tenant(tenant), limit)
}

func (s *QuoteService) Export(res QuoteResult, outputPath string) error {
	return ExportQuoteToXLSX(res.Quote, res.Costs, res.Materials, int32(s.cfg.ExportDecimalPlaces), outputPath)
}

func (s *QuoteService) tenant(tenant string) string {
	return firstNonEmpty(tenant, s.cfg.TenantID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
