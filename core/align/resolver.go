package align

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/CedarNotes/core/errors"
	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
	"github.com/FocuswithJustin/CedarNotes/internal/logging"
	"github.com/FocuswithJustin/CedarNotes/internal/tsv"
)

// FailureTag prefixes the quote field of rows that could not be resolved.
const FailureTag = "QUOTE_NOT_FOUND: "

// Config names the three corpora a resolution run reads from.
type Config struct {
	// GlossCorpus is the target-language translation whose quotes are
	// being resolved.
	GlossCorpus string
	// HebrewCorpus is the original-language corpus for Old Testament books.
	HebrewCorpus string
	// GreekCorpus is the original-language corpus for New Testament books.
	GreekCorpus string
}

// DefaultConfig returns the unfoldingWord corpus abbreviations.
func DefaultConfig() Config {
	return Config{
		GlossCorpus:  "ult",
		HebrewCorpus: "uhb",
		GreekCorpus:  "ugnt",
	}
}

// Source supplies verse token indexes. Implementations must be idempotent
// per book: repeat calls for an already-imported book are no-ops returning
// the same index.
type Source interface {
	EnsureVerseIndex(ctx context.Context, book string) (*token.VerseIndex, error)
}

// Result is the outcome of one resolution invocation. Output has exactly
// one serialized row per input row, in input order; failed rows carry the
// FailureTag prefix on their quote field.
type Result struct {
	Output []string `json:"output"`
	Errors []string `json:"errors"`
	Passed int      `json:"passed"`
	Failed int      `json:"failed"`
}

// Resolver resolves the quote field of every row of a notes table against
// the corpora of one book. Rows are resolved strictly sequentially; a
// Resolver must not be shared across concurrent invocations.
type Resolver struct {
	cfg    Config
	source Source

	// Progress, when set, is called after each row with (done, total).
	Progress func(done, total int)
}

// NewResolver creates a Resolver over the given document source.
func NewResolver(cfg Config, source Source) *Resolver {
	return &Resolver{cfg: cfg, source: source}
}

// ResolveQuotes resolves every row of the tab-separated table content for
// the given canonical book. It fails outright only on an unrecognized book
// identifier, a malformed table, or a non-recoverable source error; missing
// corpora degrade to per-row failures.
func (r *Resolver) ResolveQuotes(ctx context.Context, book, content string) (*Result, error) {
	b, ok := ref.LookupBook(book)
	if !ok {
		return nil, errors.NewInvalidBook(book)
	}

	table, err := tsv.Parse(content)
	if err != nil {
		return nil, err
	}

	idx, err := r.source.EnsureVerseIndex(ctx, b.ID)
	if err != nil {
		if !errors.Is(err, errors.ErrUnavailable) {
			return nil, err
		}
		// A missing corpus is reported row by row, like the original
		// behavior; only transport-level errors abort the invocation.
		logging.Error("document import failed", "book", b.ID, "error", err)
		idx = token.NewVerseIndex()
	}

	res := &Result{}
	for i := 0; i < table.Len(); i++ {
		r.resolveRecord(b, idx, table, i, res)
		if r.Progress != nil {
			r.Progress(i+1, table.Len())
		}
	}

	res.Output = table.SerializeRows()
	return res, nil
}

// resolveRecord runs the per-row state machine: pass-through check, verse
// expansion, variant trials, then commit as pass or fail.
func (r *Resolver) resolveRecord(book ref.Book, idx *token.VerseIndex, table *tsv.Table, row int, res *Result) {
	quote := table.Quote(row)
	refField := table.Ref(row)

	// Pass-through short-circuit: header row, empty quote, or a quote
	// already in the original language.
	if quote == "" || refField == tsv.ColReference || token.ContainsOriginalScript(quote) {
		return
	}

	// Strip an existing failure tag so a re-run retries the original
	// quote instead of the tagged one.
	for strings.HasPrefix(quote, FailureTag) {
		quote = strings.TrimPrefix(quote, FailureTag)
	}

	verses, err := ref.ParseSpec(refField)
	if err != nil {
		r.commitFail(book, ref.VerseRef{}, table, row, res, quote, err.Error())
		return
	}

	variants := token.Variants(quote)
	occurrence := table.Occurrence(row)

	lastDiag := ""
	lastVerse := verses[0]
	for _, vr := range verses {
		resolved, diag, ok := r.tryVerse(book, idx, vr, variants, occurrence)
		if ok {
			// First verse that resolves wins; earlier failures are
			// not recorded.
			table.SetQuote(row, resolved)
			res.Passed++
			return
		}
		lastDiag = diag
		lastVerse = vr
	}

	r.commitFail(book, lastVerse, table, row, res, quote, lastDiag)
}

func (r *Resolver) commitFail(book ref.Book, vr ref.VerseRef, table *tsv.Table, row int, res *Result, quote, diag string) {
	table.SetQuote(row, FailureTag+quote)
	res.Failed++
	res.Errors = append(res.Errors, fmt.Sprintf("%s %s %s: %s", book.ID, vr.String(), table.ID(row), diag))
	logging.QuoteFailure(book.ID, vr.String(), table.ID(row), fmt.Errorf("%s", diag))
}

// tryVerse attempts every variant, in priority order, against one
// candidate verse. The first variant that fully resolves wins.
func (r *Resolver) tryVerse(book ref.Book, idx *token.VerseIndex, vr ref.VerseRef, variants []token.Variant, occurrence string) (string, string, bool) {
	origCorpus := r.cfg.GreekCorpus
	if book.Testament == ref.OldTestament {
		origCorpus = r.cfg.HebrewCorpus
	}

	glossWords := idx.Words(token.Key{Corpus: r.cfg.GlossCorpus, Book: book.ID, Chapter: vr.Chapter, Verse: vr.Verse})
	origWords := idx.Words(token.Key{Corpus: origCorpus, Book: book.ID, Chapter: vr.Chapter, Verse: vr.Verse})
	if len(glossWords) == 0 || len(origWords) == 0 {
		corpus := r.cfg.GlossCorpus
		if len(glossWords) > 0 {
			corpus = origCorpus
		}
		diag := errors.NewDocumentUnavailable(fmt.Sprintf("%s %s", book.ID, vr.String()), corpus, nil).Error()
		return "", diag, false
	}

	lastDiag := ""
	for _, v := range variants {
		if !v.Split {
			proj := r.attempt(book, vr, glossWords, origWords, v.Text(), occurrence)
			if proj.Matched() {
				return tidy(proj.Data), "", true
			}
			lastDiag = proj.Diag
			continue
		}

		// Split variants resolve each ellipsis part independently, first
		// as-is, then with the uppercase-first fallback. All parts must
		// resolve or the whole variant fails.
		parts := make([]string, 0, len(v.Parts))
		allMatched := true
		for _, part := range v.Parts {
			proj := r.attempt(book, vr, glossWords, origWords, part, occurrence)
			if !proj.Matched() {
				if upper := token.UppercaseFirst(part); upper != part {
					proj = r.attempt(book, vr, glossWords, origWords, upper, occurrence)
				}
			}
			if !proj.Matched() {
				allMatched = false
				lastDiag = proj.Diag
				break
			}
			parts = append(parts, tidy(proj.Data))
		}
		if allMatched {
			return strings.Join(parts, " & "), "", true
		}
	}

	return "", lastDiag, false
}

// attempt resolves a single phrase: tokenize, match against the gloss,
// project onto the original-language words.
func (r *Resolver) attempt(book ref.Book, vr ref.VerseRef, glossWords, origWords []token.WordToken, phrase, occurrence string) Projection {
	triples := token.TokenizePhrase(phrase)
	if len(triples) == 0 {
		return Projection{Diag: fmt.Sprintf("no words in phrase %q", phrase)}
	}

	matched, ok := MatchPhrase(triples, glossWords)
	if !ok {
		return Projection{Diag: fmt.Sprintf("no contiguous gloss match for %q at %s %s", phrase, book.ID, vr.String())}
	}

	return Project(book.ID, vr, origWords, matched, phrase, occurrence)
}

// ellipsisGap collapses whitespace around a stray ellipsis in resolved text.
var ellipsisGap = regexp.MustCompile(`\s*` + token.Ellipsis + `\s*`)

// tidy joins projected words and normalizes ellipsis gaps to " & ".
func tidy(words []string) string {
	s := strings.Join(words, " ")
	s = ellipsisGap.ReplaceAllString(s, " & ")
	return strings.TrimSpace(s)
}
