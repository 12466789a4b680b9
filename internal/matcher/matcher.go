// Package matcher maps project-name fragments to project identifiers.
package matcher

import (
	"strings"

	"nametag/internal/normalizer"
	"nametag/internal/registry"
)

// Unknown is the identifier assigned when no strategy finds a match.
const Unknown = "不明"

// Strategy identifies which matching stage produced a result.
type Strategy string

const (
	StrategyExact               Strategy = "EXACT"
	StrategyNormalizedExact     Strategy = "NORMALIZED_EXACT"
	StrategyFragmentInName      Strategy = "FRAGMENT_IN_NAME"
	StrategyNameInFragment      Strategy = "NAME_IN_FRAGMENT"
	StrategyNormalizedSubstring Strategy = "NORMALIZED_SUBSTRING"
	StrategyKeywordSubset       Strategy = "KEYWORD_SUBSET"
	StrategyNone                Strategy = "NONE"
)

// Result represents the outcome of matching a fragment against the
// reference table.
type Result struct {
	Identifier string
	Strategy   Strategy
	Matched    bool
}

// Find resolves a project-name fragment to a project identifier.
//
// Strategies run in a fixed order, strictest first, and the first
// entry that matches within a strategy wins; entries are visited in
// the table's first-seen order and there is no re-ranking among
// multiple hits. The order is part of the contract: the reference
// table can contain overlapping names, and reproducibility depends on
// both the stage order and the first-hit tie-break.
//
//  1. fragment equals a name
//  2. normalized fragment equals a normalized name
//  3. fragment is a substring of a name
//  4. a name is a substring of the fragment
//  5. normalized substring in either direction
//  6. the fragment's keywords are a non-empty subset of a name's keywords
//
// When nothing matches, the result carries the Unknown identifier.
func Find(fragment string, table *registry.Table) Result {
	entries := table.Entries()

	for _, entry := range entries {
		if fragment == entry.Name {
			return found(entry, StrategyExact)
		}
	}

	normalizedFragment := normalizer.Normalize(fragment)
	for _, entry := range entries {
		if normalizedFragment == normalizer.Normalize(entry.Name) {
			return found(entry, StrategyNormalizedExact)
		}
	}

	for _, entry := range entries {
		if strings.Contains(entry.Name, fragment) {
			return found(entry, StrategyFragmentInName)
		}
	}

	for _, entry := range entries {
		if strings.Contains(fragment, entry.Name) {
			return found(entry, StrategyNameInFragment)
		}
	}

	for _, entry := range entries {
		normalizedName := normalizer.Normalize(entry.Name)
		if strings.Contains(normalizedName, normalizedFragment) ||
			strings.Contains(normalizedFragment, normalizedName) {
			return found(entry, StrategyNormalizedSubstring)
		}
	}

	fragmentKeywords := normalizer.Keywords(fragment)
	if len(fragmentKeywords) > 0 {
		for _, entry := range entries {
			if isSubset(fragmentKeywords, normalizer.Keywords(entry.Name)) {
				return found(entry, StrategyKeywordSubset)
			}
		}
	}

	return Result{
		Identifier: Unknown,
		Strategy:   StrategyNone,
		Matched:    false,
	}
}

func found(entry registry.Entry, strategy Strategy) Result {
	return Result{
		Identifier: entry.Identifier,
		Strategy:   strategy,
		Matched:    true,
	}
}

// isSubset reports whether every keyword in a is present in b.
func isSubset(a, b map[string]struct{}) bool {
	for keyword := range a {
		if _, ok := b[keyword]; !ok {
			return false
		}
	}
	return true
}
