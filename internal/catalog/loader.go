package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"quotecore/internal"
	"quotecore/internal/normalize"
	"quotecore/internal/storage"
)

// MaterialStore is the tenant-scoped persistence the loader needs.
type MaterialStore interface {
	LoadMaterials(tenant string) ([]internal.Material, error)
	SaveMaterials(tenant string, materials []internal.Material) error
	SetMetadata(key, value string) error
}

var _ MaterialStore = (*storage.DB)(nil)

// Loader reads a tenant's materials, runs the migration once per load and
// writes the result back only when it changed something.
type Loader struct {
	store     MaterialStore
	migrate   normalize.Migration
	writeBack bool
}

// NewLoader uses normalize.Migrate when migrate is nil. With writeBack off the
// migrated collection is used in memory but never persisted.
func NewLoader(store MaterialStore, migrate normalize.Migration, writeBack bool) *Loader {
	if migrate == nil {
		migrate = normalize.Migrate
	}
	return &Loader{store: store, migrate: migrate, writeBack: writeBack}
}

type LoadResult struct {
	Materials []internal.Material
	Changed   bool
	Written   bool
}

func (l *Loader) Load(tenant string) (LoadResult, error) {
	stored, err := l.store.LoadMaterials(tenant)
	if err != nil {
		return LoadResult{}, fmt.Errorf("load materials: %w", err)
	}

	materials, changed := l.migrate(stored)
	res := LoadResult{Materials: materials, Changed: changed}
	if !changed || !l.writeBack {
		return res, nil
	}

	if err := l.store.SaveMaterials(tenant, materials); err != nil {
		return LoadResult{}, fmt.Errorf("save migrated materials: %w", err)
	}
	res.Written = true
	_ = l.store.SetMetadata("materials.last_migration."+tenant, time.Now().UTC().Format(time.RFC3339))
	fmt.Printf("migrated materials tenant=%s materials=%d\n", tenant, len(materials))
	return res, nil
}

// Import replaces the tenant's materials with the given collection. Materials
// and components without an id get a fresh one before the collection is
// normalized and stored.
func (l *Loader) Import(tenant string, materials []internal.Material) ([]internal.Material, error) {
	normalized := normalize.NormalizeMaterials(materials)
	for i := range normalized {
		if normalized[i].ID == "" {
			normalized[i].ID = uuid.NewString()
		}
		for j := range normalized[i].Components {
			if normalized[i].Components[j].ID == "" {
				normalized[i].Components[j].ID = uuid.NewString()
			}
		}
	}
	if err := l.store.SaveMaterials(tenant, normalized); err != nil {
		return nil, fmt.Errorf("save imported materials: %w", err)
	}
	_ = l.store.SetMetadata("materials.last_import."+tenant, time.Now().UTC().Format(time.RFC3339))
	return normalized, nil
}
