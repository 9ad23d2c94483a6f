package entities

import (
	"strings"
)

// SearchKind discriminates the two search variants.
type SearchKind int

const (
	// SearchLiteral matches substituted template text verbatim. The
	// template is never compiled as a regular expression: search/replace
	// templates are literal text per the config contract.
	SearchLiteral SearchKind = iota
	// SearchPattern matches the configurable global version pattern.
	SearchPattern
)

// String returns the variant name for logs.
func (k SearchKind) String() string {
	if k == SearchLiteral {
		return "literal"
	}
	return "pattern"
}

// SearchSpec tells the drift detector how to locate one version occurrence
// in a file snapshot. Exactly one of Literal or Pattern is meaningful,
// selected by Kind.
type SearchSpec struct {
	Kind    SearchKind
	Literal string   // substituted template, SearchLiteral only
	Pattern *Pattern // version pattern, both variants (extraction)
}

// BuildSearchSpec resolves a target's search expression. A declared search
// template has the current version substituted for its placeholder and is
// searched literally; a target without a template falls back to the global
// version pattern.
func BuildSearchSpec(target Target, current Version, pattern *Pattern) SearchSpec {
	if target.HasSearchTemplate() {
		literal := strings.ReplaceAll(target.Search, CurrentVersionPlaceholder, current.String())
		return SearchSpec{Kind: SearchLiteral, Literal: literal, Pattern: pattern}
	}
	return SearchSpec{Kind: SearchPattern, Pattern: pattern}
}

// FirstMatch locates the first occurrence of the search in text. Exactly
// one lookup is performed; multiple occurrences are not disambiguated.
func (s SearchSpec) FirstMatch(text string) (Match, bool) {
	if s.Kind == SearchLiteral {
		idx := strings.Index(text, s.Literal)
		if idx < 0 {
			return Match{}, false
		}
		return Match{Raw: s.Literal, Start: idx, End: idx + len(s.Literal)}, true
	}
	return s.Pattern.FindFirst(text)
}

// ExtractVersion parses the version attested by a match. A pattern match is
// itself the version text; a literal match carries the version embedded in
// the template, so the matched region is re-scanned with the version
// pattern.
func (s SearchSpec) ExtractVersion(match Match) (Version, error) {
	raw := match.Raw
	if s.Kind == SearchLiteral {
		inner, ok := s.Pattern.FindFirst(match.Raw)
		if !ok {
			return Version{}, &ParseError{Input: match.Raw, Reason: "matched template carries no version"}
		}
		raw = inner.Raw
	}
	return ParseVersion(raw)
}
