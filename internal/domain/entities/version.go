package entities

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultVersionExpr matches three dot-separated non-negative integer groups
// with an optional pre-release/build suffix, e.g. "1.2.3" or "1.2.3-rc.1".
const DefaultVersionExpr = `[0-9]+\.[0-9]+\.[0-9]+(?:[-+][0-9A-Za-z.-]+)?`

// versionShape splits a raw occurrence into its dotted numeric part and an
// optional suffix starting with "-" or "+". The shape is fixed; only the
// expression that LOCATES occurrences in text is configurable.
var versionShape = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)*)([-+].*)?$`) //nolint:gochecknoglobals // compiled once

// Version is an immutable version value parsed from raw text. The raw form
// is kept verbatim so formatting round-trips exactly (leading zeros
// included); ordering is numeric per component.
type Version struct {
	raw        string
	components []int
	suffix     string
}

// ParseVersion parses a raw version string into a Version.
// The accepted shape is one or more dot-separated non-negative integers
// followed by an optional "-" or "+" suffix kept verbatim.
func ParseVersion(raw string) (Version, error) {
	if raw == "" {
		return Version{}, &ParseError{Input: raw, Reason: "empty input"}
	}

	groups := versionShape.FindStringSubmatch(raw)
	if groups == nil {
		return Version{}, &ParseError{Input: raw, Reason: "not a dotted numeric version"}
	}

	parts := strings.Split(groups[1], ".")
	components := make([]int, 0, len(parts))
	for _, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, &ParseError{Input: raw, Reason: "component " + part + " is not a number"}
		}
		components = append(components, number)
	}

	return Version{raw: raw, components: components, suffix: groups[2]}, nil
}

// String returns the exact raw text the version was parsed from.
func (v Version) String() string {
	return v.raw
}

// Suffix returns the verbatim pre-release/build suffix, empty when absent.
func (v Version) Suffix() string {
	return v.suffix
}

// IsZero reports whether the version is the zero value (never parsed).
func (v Version) IsZero() bool {
	return v.raw == ""
}

// Compare orders two versions: -1 when v < other, 0 when equal, 1 when
// v > other. Numeric components are compared one by one; when the shared
// components are equal, extra non-zero components win. Suffixes break
// numeric ties lexicographically, and a version carrying a suffix orders
// before the same numeric tuple without one.
func (v Version) Compare(other Version) int {
	shared := len(v.components)
	if len(other.components) < shared {
		shared = len(other.components)
	}

	for i := range shared {
		if v.components[i] != other.components[i] {
			if v.components[i] < other.components[i] {
				return -1
			}
			return 1
		}
	}

	if tail := compareTail(v.components, other.components, shared); tail != 0 {
		return tail
	}
	return compareSuffix(v.suffix, other.suffix)
}

// Equal reports numeric equality, so "1.02.3" equals "1.2.3" even though
// their raw forms differ.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// compareTail orders the components beyond the shared prefix: the longer
// version is greater only when it carries a non-zero extra component.
func compareTail(a, b []int, shared int) int {
	for _, extra := range a[shared:] {
		if extra != 0 {
			return 1
		}
	}
	for _, extra := range b[shared:] {
		if extra != 0 {
			return -1
		}
	}
	return 0
}

// compareSuffix applies the pre-release rule: no suffix orders after any
// suffix, otherwise plain lexicographic comparison.
func compareSuffix(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	default:
		return strings.Compare(a, b)
	}
}
