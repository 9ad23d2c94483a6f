package entities

// WorktreeRevision names the pseudo-revision of occurrences read from the
// working tree instead of a committed snapshot.
const WorktreeRevision = "worktree"

// Occurrence is one located version inside a file snapshot. Occurrences are
// computed per (file, revision) pair and never persisted.
type Occurrence struct {
	File     string
	Revision string
	Raw      string // exact matched version text
	Start    int    // byte offset in the snapshot
	End      int
	Version  Version
}

// AllVersions returns every parseable pattern match in text, ordered by
// byte offset. Matches that hit the pattern but fail structural parsing
// are dropped silently.
func AllVersions(text string, pattern *Pattern) []Occurrence {
	var occurrences []Occurrence
	for _, match := range pattern.FindAll(text) {
		version, err := ParseVersion(match.Raw)
		if err != nil {
			continue
		}
		occurrences = append(occurrences, Occurrence{
			Raw:     match.Raw,
			Start:   match.Start,
			End:     match.End,
			Version: version,
		})
	}
	return occurrences
}

// LocateVersion performs the single first-match lookup of search in text
// and parses the version it attests. Absence of a match yields a
// ParseError; the caller decides whether that is fatal for its entry.
func LocateVersion(text string, search SearchSpec) (Occurrence, error) {
	match, ok := search.FirstMatch(text)
	if !ok {
		return Occurrence{}, &ParseError{Reason: "no " + search.Kind.String() + " occurrence found"}
	}

	version, err := search.ExtractVersion(match)
	if err != nil {
		return Occurrence{}, err
	}

	return Occurrence{
		Raw:     version.String(),
		Start:   match.Start,
		End:     match.End,
		Version: version,
	}, nil
}
