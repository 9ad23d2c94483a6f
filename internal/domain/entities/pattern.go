package entities

import (
	"fmt"
	"regexp"
)

// Match is one raw pattern hit inside a text buffer.
type Match struct {
	Raw   string
	Start int // byte offset of the first matched byte
	End   int // byte offset one past the last matched byte
}

// Pattern locates version occurrences inside arbitrary text. It wraps the
// configurable expression compiled once at settings load; the zero pattern
// is not usable.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// NewPattern compiles expr into a Pattern. An empty expr selects
// DefaultVersionExpr.
func NewPattern(expr string) (*Pattern, error) {
	if expr == "" {
		expr = DefaultVersionExpr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile version pattern %q: %w", expr, err)
	}
	return &Pattern{expr: expr, re: re}, nil
}

// MustPattern compiles expr and panics on error. Intended for constants and
// tests only.
func MustPattern(expr string) *Pattern {
	pattern, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return pattern
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.expr
}

// FindFirst returns the first occurrence of the pattern in text.
// Multiple occurrences are not disambiguated; first match wins.
func (p *Pattern) FindFirst(text string) (Match, bool) {
	loc := p.re.FindStringIndex(text)
	if loc == nil {
		return Match{}, false
	}
	return Match{Raw: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]}, true
}

// FindAll returns every non-overlapping occurrence of the pattern in text,
// ordered by byte offset. Used by tree scanning, revision checks only ever
// look at the first match.
func (p *Pattern) FindAll(text string) []Match {
	locs := p.re.FindAllStringIndex(text, -1)
	if locs == nil {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{Raw: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return matches
}
