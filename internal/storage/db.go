package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"quotecore/internal"
)

// MaterialsKey is the document key under which a tenant's materials live.
const MaterialsKey = "materials"

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  tenant TEXT NOT NULL,
  key TEXT NOT NULL,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (tenant, key)
);

CREATE TABLE IF NOT EXISTS quotes (
  id TEXT PRIMARY KEY,
  tenant TEXT NOT NULL,
  clientName TEXT,
  quoteJson TEXT NOT NULL,
  createdAt TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quotes_tenant ON quotes(tenant, createdAt);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// GetDocument returns nil when the tenant has no document under key.
func (d *DB) GetDocument(tenant, key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM documents WHERE tenant = ? AND key = ?`, tenant, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// SetDocument replaces the whole document; the last writer wins.
func (d *DB) SetDocument(tenant, key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO documents (tenant, key, value) VALUES (?, ?, ?)
ON CONFLICT(tenant, key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, tenant, key, value)
	return err
}

// LoadMaterials returns the tenant's stored materials exactly as stored;
// components are not normalized here.
func (d *DB) LoadMaterials(tenant string) ([]internal.Material, error) {
	blob, err := d.GetDocument(tenant, MaterialsKey)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}
	var materials []internal.Material
	if err := json.Unmarshal([]byte(*blob), &materials); err != nil {
		return nil, fmt.Errorf("decode materials for tenant %s: %w", tenant, err)
	}
	return materials, nil
}

func (d *DB) SaveMaterials(tenant string, materials []internal.Material) error {
	if materials == nil {
		materials = []internal.Material{}
	}
	blob, err := json.Marshal(materials)
	if err != nil {
		return fmt.Errorf("encode materials for tenant %s: %w", tenant, err)
	}
	return d.SetDocument(tenant, MaterialsKey, string(blob))
}

// SaveQuote stores the inputs of a quote. Computed costs are never stored.
func (d *DB) SaveQuote(tenant string, q internal.SavedQuote) error {
	blob, err := json.Marshal(q.Quote)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`
INSERT INTO quotes (id, tenant, clientName, quoteJson, createdAt)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  clientName=excluded.clientName,
  quoteJson=excluded.quoteJson
`, q.ID, tenant, q.Quote.ClientName, string(blob), q.CreatedAt)
	return err
}

func (d *DB) GetQuote(tenant, id string) (*internal.SavedQuote, error) {
	var row internal.SavedQuote
	var blob string
	err := d.conn.QueryRow(`SELECT id, createdAt, quoteJson FROM quotes WHERE tenant = ? AND id = ?`, tenant, id).Scan(&row.ID, &row.CreatedAt, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(blob), &row.Quote); err != nil {
		return nil, fmt.Errorf("decode quote %s: %w", id, err)
	}
	return &row, nil
}

func (d *DB) ListQuotes(tenant string, limit int) ([]internal.SavedQuote, error) {
	rows, err := d.conn.Query(`
SELECT id, createdAt, quoteJson FROM quotes WHERE tenant = ? ORDER BY createdAt DESC, id ASC LIMIT ?
`, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SavedQuote
	for rows.Next() {
		var row internal.SavedQuote
		var blob string
		if err := rows.Scan(&row.ID, &row.CreatedAt, &blob); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(blob), &row.Quote); err != nil {
			return nil, fmt.Errorf("decode quote %s: %w", row.ID, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) MustQuote(tenant, id string) (internal.SavedQuote, error) {
	row, err := d.GetQuote(tenant, id)
	if err != nil {
		return internal.SavedQuote{}, err
	}
	if row == nil {
		return internal.SavedQuote{}, fmt.Errorf("quote not found: tenant=%s id=%s", tenant, id)
	}
	return *row, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
