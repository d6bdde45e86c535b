// Package source fetches aligned Bible documents from a Door43-style
// repository server, caches them on disk, and imports them into verse
// token indexes for the resolver.
package source

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/CedarNotes/core/errors"
	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
	"github.com/FocuswithJustin/CedarNotes/internal/formats"
	"github.com/FocuswithJustin/CedarNotes/internal/formats/usfm"
	"github.com/FocuswithJustin/CedarNotes/internal/formats/usx"
	"github.com/FocuswithJustin/CedarNotes/internal/logging"
)

// Corpus names one repository and its short abbreviation used in verse
// index keys.
type Corpus struct {
	Repo   string // repository name, e.g. "en_ult"
	Abbrev string // index abbreviation, e.g. "ult"
}

// Config locates the repository server and the three corpora.
type Config struct {
	Server   string // e.g. "https://git.door43.org"
	Org      string // e.g. "unfoldingWord"
	Branch   string // e.g. "master"
	Gloss    Corpus
	Hebrew   Corpus
	Greek    Corpus
	CacheDir string
}

// DefaultConfig returns the unfoldingWord repository layout.
func DefaultConfig(cacheDir string) Config {
	return Config{
		Server:   "https://git.door43.org",
		Org:      "unfoldingWord",
		Branch:   "master",
		Gloss:    Corpus{Repo: "en_ult", Abbrev: "ult"},
		Hebrew:   Corpus{Repo: "hbo_uhb", Abbrev: "uhb"},
		Greek:    Corpus{Repo: "el-x-koine_ugnt", Abbrev: "ugnt"},
		CacheDir: cacheDir,
	}
}

// Service implements the document/alignment source contract: one import
// per book per process lifetime, idempotent thereafter. It owns the verse
// token index it populates; reusing a Service across invocations opts into
// cache reuse.
type Service struct {
	cfg     Config
	client  *http.Client
	catalog *Catalog

	mu       sync.Mutex
	index    *token.VerseIndex
	imported map[string]bool
}

// NewService creates a Service, opening the blob cache and catalog under
// cfg.CacheDir.
func NewService(cfg Config) (*Service, error) {
	if err := os.MkdirAll(filepath.Join(cfg.CacheDir, "blobs"), 0755); err != nil {
		return nil, errors.NewIO("create", cfg.CacheDir, err)
	}
	catalog, err := OpenCatalog(filepath.Join(cfg.CacheDir, "catalog.db"))
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:      cfg,
		client:   &http.Client{Timeout: 2 * time.Minute},
		catalog:  catalog,
		index:    token.NewVerseIndex(),
		imported: make(map[string]bool),
	}, nil
}

// Close releases the cache catalog.
func (s *Service) Close() error {
	return s.catalog.Close()
}

// Index returns the verse token index owned by this Service.
func (s *Service) Index() *token.VerseIndex {
	return s.index
}

// Entries exposes the cache catalog listing.
func (s *Service) Entries() ([]CatalogEntry, error) {
	return s.catalog.Entries()
}

// Purge drops the catalog and removes all cached blobs.
func (s *Service) Purge() error {
	if err := s.catalog.Purge(); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.cfg.CacheDir, "blobs"))
}

// EnsureVerseIndex imports the gloss corpus and the original-language
// corpus matching the book's testament, once per process lifetime per
// book. Repeat calls for an imported book are no-ops returning the shared
// index.
func (s *Service) EnsureVerseIndex(ctx context.Context, book string) (*token.VerseIndex, error) {
	b, ok := ref.LookupBook(book)
	if !ok {
		return nil, errors.NewInvalidBook(book)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.imported[b.ID] {
		return s.index, nil
	}

	orig := s.cfg.Greek
	if b.Testament == ref.OldTestament {
		orig = s.cfg.Hebrew
	}

	for _, corpus := range []Corpus{s.cfg.Gloss, orig} {
		if err := s.importDocument(ctx, corpus, b); err != nil {
			// A book the corpus does not parse is as unavailable as one
			// it does not carry; transport errors pass through untouched.
			var pe *errors.ParseError
			if errors.As(err, &pe) {
				return nil, errors.NewDocumentUnavailable(b.ID, corpus.Abbrev, err)
			}
			return nil, err
		}
	}

	s.imported[b.ID] = true
	return s.index, nil
}

// importDocument fetches, parses, and indexes one corpus's book.
func (s *Service) importDocument(ctx context.Context, corpus Corpus, b ref.Book) error {
	url := s.documentURL(corpus, b)

	data, err := s.fetch(ctx, url, b, corpus)
	if err != nil {
		return err
	}

	var doc *formats.Document
	switch formats.DetectFormat(url) {
	case formats.USX:
		doc, err = usx.Parse(data)
	default:
		doc, err = usfm.Parse(data)
	}
	if err != nil {
		return err
	}
	if doc.BookID != b.ID {
		logging.Warn("book id mismatch in document",
			"want", b.ID, "got", doc.BookID, "url", url)
	}

	for vr, tokens := range doc.Verses {
		s.index.Set(token.Key{
			Corpus:  corpus.Abbrev,
			Book:    b.ID,
			Chapter: vr.Chapter,
			Verse:   vr.Verse,
		}, tokens)
	}
	return nil
}

// documentURL builds the raw-content URL for one book of one corpus.
func (s *Service) documentURL(corpus Corpus, b ref.Book) string {
	return fmt.Sprintf("%s/%s/%s/raw/branch/%s/%02d-%s.usfm",
		s.cfg.Server, s.cfg.Org, corpus.Repo, s.cfg.Branch, b.Number, b.ID)
}

// fetch returns the document bytes for a URL, from the blob cache when
// possible, otherwise over HTTP (storing the result).
func (s *Service) fetch(ctx context.Context, url string, b ref.Book, corpus Corpus) ([]byte, error) {
	if data, ok := s.readCached(url); ok {
		logging.Debug("cache hit", "url", url)
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewIO("fetch", url, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.NewIO("fetch", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewDocumentUnavailable(b.ID, corpus.Abbrev, errors.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewIO("fetch", url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewIO("read", url, err)
	}

	if err := s.writeCached(url, data); err != nil {
		// Cache write failures are not fatal; the document is in hand.
		logging.Warn("cache write failed", "url", url, "error", err)
	}
	logging.DocumentImport(b.ID, corpus.Abbrev, url, "size_bytes", len(data))
	return data, nil
}

// blobPath locates the xz-compressed blob for a content hash.
func (s *Service) blobPath(hash string) string {
	return filepath.Join(s.cfg.CacheDir, "blobs", hash[:2], hash+".xz")
}

// readCached consults the catalog and reads the blob, verifying the
// blake3 content hash. Any inconsistency is treated as a miss.
func (s *Service) readCached(url string) ([]byte, bool) {
	hash, ok, err := s.catalog.Lookup(url)
	if err != nil || !ok {
		return nil, false
	}

	compressed, err := os.ReadFile(s.blobPath(hash))
	if err != nil {
		return nil, false
	}

	r, err := xz.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, false
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false
	}

	sum := blake3.Sum256(data)
	if hex.EncodeToString(sum[:]) != hash {
		logging.Warn("cache blob hash mismatch, refetching", "url", url)
		return nil, false
	}
	return data, true
}

// writeCached stores the blob xz-compressed under its blake3 hash and
// records it in the catalog.
func (s *Service) writeCached(url string, data []byte) error {
	sum := blake3.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	path := s.blobPath(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIO("create", filepath.Dir(path), err)
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return errors.Wrap(err, "xz writer")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "xz compress")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "xz close")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return s.catalog.Record(url, hash, int64(len(data)))
}
