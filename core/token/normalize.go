package token

import (
	"strings"
	"unicode"
)

// Ellipsis is the canonical ellipsis character used throughout quote
// handling. All other ellipsis spellings are rewritten to it.
const Ellipsis = "…"

// ellipsisReplacer rewrites ellipsis spellings to the canonical character.
var ellipsisReplacer = strings.NewReplacer(
	"...", Ellipsis,
	"…", Ellipsis, // already canonical, kept for clarity
	"⋯", Ellipsis, // ⋯ midline ellipsis
)

// Clean normalizes a raw quote: canonical ellipsis, outer braces stripped,
// surrounding whitespace trimmed. Cleaning an already-clean quote is a
// no-op.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = ellipsisReplacer.Replace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && len(s) >= 2 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// UppercaseFirst upper-cases only the first lowercase letter encountered.
// This is not whole-word capitalization: "oh, sing" becomes "Oh, sing" and
// "‘he said" becomes "‘He said".
func UppercaseFirst(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsLower(r) {
			runes[i] = unicode.ToUpper(r)
			return string(runes)
		}
		if unicode.IsUpper(r) {
			return s
		}
	}
	return s
}

// ContainsOriginalScript reports whether s contains any Hebrew or Greek
// script character. Such quotes are already in the original language and
// pass through unresolved.
func ContainsOriginalScript(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) || unicode.Is(unicode.Greek, r) {
			return true
		}
	}
	return false
}

// Variant is one candidate form of a quote to attempt matching. A plain
// variant has Split == false and a single entry in Parts. A split variant
// (Split == true) carries the ellipsis-separated sub-phrases, each of which
// must resolve independently.
type Variant struct {
	Parts []string
	Split bool
}

// Text returns the single phrase of a plain variant.
func (v Variant) Text() string {
	if len(v.Parts) == 0 {
		return ""
	}
	return v.Parts[0]
}

// Variants produces the ordered candidate list for a raw quote, in fixed
// priority order:
//  1. the cleaned quote (canonical ellipsis, outer braces stripped);
//  2. the original raw quote, if different;
//  3. ellipsis-split expansions of the variants above, where applicable;
//  4. an uppercase-first-letter form of the cleaned quote, if different,
//     with its own split expansion.
func Variants(raw string) []Variant {
	cleaned := Clean(raw)

	vars := []Variant{{Parts: []string{cleaned}}}
	if raw != cleaned {
		vars = append(vars, Variant{Parts: []string{raw}})
	}

	for _, v := range vars[:len(vars):len(vars)] {
		if sv, ok := splitEllipsis(v.Text()); ok {
			vars = append(vars, sv)
		}
	}

	upper := UppercaseFirst(cleaned)
	if upper != cleaned {
		vars = append(vars, Variant{Parts: []string{upper}})
		if sv, ok := splitEllipsis(upper); ok {
			vars = append(vars, sv)
		}
	}

	return vars
}

// splitEllipsis splits a phrase on the canonical ellipsis into trimmed,
// non-empty sub-phrases. ok is false when no split results.
func splitEllipsis(s string) (Variant, bool) {
	if !strings.Contains(s, Ellipsis) {
		return Variant{}, false
	}
	var parts []string
	for _, p := range strings.Split(s, Ellipsis) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return Variant{}, false
	}
	return Variant{Parts: parts, Split: true}, true
}
