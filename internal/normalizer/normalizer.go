// Package normalizer canonicalizes project-name text for fuzzy comparison.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// bracketRunes are the delimiter glyphs deleted during normalization.
// Both the full-width and half-width pairs appear in real filenames;
// only the glyphs are removed, their contents are kept.
const bracketRunes = "【】[]（）()"

// separator reports whether a rune separates keywords: underscore,
// any whitespace, hyphen, or the CJK middle dot.
func separator(r rune) bool {
	return r == '_' || r == '-' || r == '・' || unicode.IsSpace(r)
}

// Normalize canonicalizes text for comparison. It applies NFKC
// normalization to unify full-width and half-width variants, deletes
// the bracket glyphs, and folds the result to lowercase.
// Pure and deterministic: the same input always yields the same output,
// and normalizing twice changes nothing.
func Normalize(text string) string {
	normalized := norm.NFKC.String(text)
	normalized = strings.Map(func(r rune) rune {
		if strings.ContainsRune(bracketRunes, r) {
			return -1
		}
		return r
	}, normalized)
	return strings.ToLower(normalized)
}

// Keywords normalizes text and splits it into the set of non-empty
// tokens delimited by runs of underscores, whitespace, hyphens, or
// middle dots. Token order is irrelevant and duplicates collapse.
func Keywords(text string) map[string]struct{} {
	tokens := strings.FieldsFunc(Normalize(text), separator)
	keywords := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		keywords[token] = struct{}{}
	}
	return keywords
}
