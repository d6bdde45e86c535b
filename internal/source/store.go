package source

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/FocuswithJustin/CedarNotes/core/errors"
)

// Catalog is a sqlite registry of fetched documents kept next to the blob
// cache. It maps each document URL to the blake3 hash of its content.
type Catalog struct {
	db *sql.DB
}

// CatalogEntry is one cached document.
type CatalogEntry struct {
	URL       string
	Blake3    string
	SizeBytes int64
	FetchedAt time.Time
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS cached_documents (
	url        TEXT PRIMARY KEY,
	blake3     TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	fetched_at TEXT NOT NULL
);
`

// OpenCatalog opens (creating if needed) the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize cache catalog")
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Lookup returns the content hash recorded for a URL.
func (c *Catalog) Lookup(url string) (string, bool, error) {
	var hash string
	err := c.db.QueryRow(
		`SELECT blake3 FROM cached_documents WHERE url = ?`, url,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "cache catalog lookup failed")
	}
	return hash, true, nil
}

// Record upserts a catalog entry for a freshly fetched document.
func (c *Catalog) Record(url, hash string, size int64) error {
	_, err := c.db.Exec(
		`INSERT INTO cached_documents (url, blake3, size_bytes, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
		   blake3 = excluded.blake3,
		   size_bytes = excluded.size_bytes,
		   fetched_at = excluded.fetched_at`,
		url, hash, size, time.Now().UTC().Format(time.RFC3339),
	)
	return errors.Wrap(err, "cache catalog record failed")
}

// Entries lists all cached documents, most recent first.
func (c *Catalog) Entries() ([]CatalogEntry, error) {
	rows, err := c.db.Query(
		`SELECT url, blake3, size_bytes, fetched_at
		 FROM cached_documents ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "cache catalog listing failed")
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		var fetched string
		if err := rows.Scan(&e.URL, &e.Blake3, &e.SizeBytes, &fetched); err != nil {
			return nil, errors.Wrap(err, "cache catalog scan failed")
		}
		e.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Purge removes every catalog entry. Blob files are removed separately by
// the Service.
func (c *Catalog) Purge() error {
	_, err := c.db.Exec(`DELETE FROM cached_documents`)
	return errors.Wrap(err, "cache catalog purge failed")
}
