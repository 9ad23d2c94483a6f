package entities

import (
	"fmt"
	"strings"
)

// Conflict markers as git writes them. The separator is exactly seven
// equals signs so heavier lines (Markdown underlines) never match; start
// and end markers may carry a label after the marker.
const (
	conflictStartMarker = "<<<<<<<"
	conflictSeparator   = "======="
	conflictEndMarker   = ">>>>>>>"
)

// conflictState tags the scanner position relative to a marker block.
type conflictState int

const (
	outsideConflict conflictState = iota
	inOurs
	inTheirs
)

// MergeStrategy selects the winning side of a version conflict block.
type MergeStrategy string

const (
	StrategyHigher MergeStrategy = "higher" // greater version wins, ties keep ours
	StrategyLower  MergeStrategy = "lower"  // smaller version wins, ties keep ours
	StrategyOurs   MergeStrategy = "ours"
	StrategyTheirs MergeStrategy = "theirs"
	StrategyBoth   MergeStrategy = "both" // ours then theirs, markers dropped
	StrategyNone   MergeStrategy = "none" // whole block dropped
)

// DefaultMergeStrategy is what resolve uses when no strategy is given.
const DefaultMergeStrategy = StrategyHigher

// MergeStrategyNames lists the accepted strategy names in display order.
func MergeStrategyNames() []string {
	return []string{
		string(StrategyHigher), string(StrategyLower),
		string(StrategyOurs), string(StrategyTheirs),
		string(StrategyBoth), string(StrategyNone),
	}
}

// ParseMergeStrategy validates a strategy name from the CLI.
func ParseMergeStrategy(name string) (MergeStrategy, error) {
	for _, known := range MergeStrategyNames() {
		if name == known {
			return MergeStrategy(name), nil
		}
	}
	return "", fmt.Errorf("unknown merge strategy %q (expected one of: %s)",
		name, strings.Join(MergeStrategyNames(), ", "))
}

// ConflictBlock is one parsed three-way marker region. Blocks are created
// during a file scan, consumed immediately by resolution, and discarded.
type ConflictBlock struct {
	OursLabel   string
	TheirsLabel string
	OursLines   []string
	TheirsLines []string
	StartLine   int // 1-based line of the <<<<<<< marker
}

// ConflictResolution is the outcome of resolving one file's text.
type ConflictResolution struct {
	Content   string                    // rewritten text
	Resolved  int                       // blocks resolved automatically
	Manual    []ConflictBlock           // blocks kept intact for a human
	Malformed []*MalformedConflictError // marker errors, all surfaced together
}

// Clean reports whether no marker blocks survive in Content.
func (r ConflictResolution) Clean() bool {
	return len(r.Manual) == 0 && len(r.Malformed) == 0
}

// ResolveConflicts rewrites content by resolving every well-formed conflict
// block according to strategy, in a single left-to-right scan driven by an
// explicit state machine (outside -> ours -> theirs -> outside). Non-conflict
// text passes through verbatim, so marker-free input is returned unchanged.
// Malformed marker sequences are recorded and their text kept as-is; for the
// higher/lower strategies a block where neither side carries a parseable
// version is kept intact and reported for manual resolution.
func ResolveConflicts(content string, strategy MergeStrategy, pattern *Pattern) ConflictResolution {
	scanner := &conflictScanner{strategy: strategy, pattern: pattern}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		scanner.scanLine(line, i+1)
	}
	scanner.finish(len(lines))

	scanner.result.Content = strings.Join(scanner.out, "\n")
	return scanner.result
}

// conflictScanner holds the state machine plus the buffers of the block
// currently being collected. raw keeps the block verbatim (markers
// included) so malformed or manual blocks can be replayed untouched.
type conflictScanner struct {
	strategy MergeStrategy
	pattern  *Pattern

	state  conflictState
	out    []string
	raw    []string
	block  ConflictBlock
	result ConflictResolution
}

func (s *conflictScanner) scanLine(line string, lineNo int) {
	trimmed := strings.TrimSuffix(line, "\r")
	switch {
	case strings.HasPrefix(trimmed, conflictStartMarker):
		s.startMarker(line, trimmed, lineNo)
	case trimmed == conflictSeparator:
		s.separator(line, lineNo)
	case strings.HasPrefix(trimmed, conflictEndMarker):
		s.endMarker(line, trimmed, lineNo)
	default:
		s.textLine(line)
	}
}

func (s *conflictScanner) startMarker(line, trimmed string, lineNo int) {
	if s.state != outsideConflict {
		s.fail(lineNo, "start marker inside an open block")
		s.flushRaw()
	}
	s.block = ConflictBlock{OursLabel: markerLabel(trimmed, conflictStartMarker), StartLine: lineNo}
	s.raw = []string{line}
	s.state = inOurs
}

func (s *conflictScanner) separator(line string, lineNo int) {
	switch s.state {
	case inOurs:
		s.raw = append(s.raw, line)
		s.state = inTheirs
	case outsideConflict:
		s.fail(lineNo, "separator without start marker")
		s.out = append(s.out, line)
	case inTheirs:
		s.fail(lineNo, "duplicate separator")
		s.raw = append(s.raw, line)
		s.flushRaw()
	}
}

func (s *conflictScanner) endMarker(line, trimmed string, lineNo int) {
	switch s.state {
	case inTheirs:
		s.block.TheirsLabel = markerLabel(trimmed, conflictEndMarker)
		s.raw = append(s.raw, line)
		s.resolveBlock()
	case inOurs:
		s.fail(lineNo, "end marker before separator")
		s.raw = append(s.raw, line)
		s.flushRaw()
	case outsideConflict:
		s.fail(lineNo, "end marker without start marker")
		s.out = append(s.out, line)
	}
}

func (s *conflictScanner) textLine(line string) {
	switch s.state {
	case outsideConflict:
		s.out = append(s.out, line)
	case inOurs:
		s.raw = append(s.raw, line)
		s.block.OursLines = append(s.block.OursLines, line)
	case inTheirs:
		s.raw = append(s.raw, line)
		s.block.TheirsLines = append(s.block.TheirsLines, line)
	}
}

// finish flags a block left open at end of input.
func (s *conflictScanner) finish(lastLine int) {
	if s.state != outsideConflict {
		s.fail(lastLine, "unterminated conflict block")
		s.flushRaw()
	}
}

// resolveBlock emits the winning side of the completed block, or replays it
// verbatim when no side can be chosen.
func (s *conflictScanner) resolveBlock() {
	winner, ok := s.chooseWinner()
	if !ok {
		s.result.Manual = append(s.result.Manual, s.block)
		s.out = append(s.out, s.raw...)
	} else {
		s.result.Resolved++
		s.out = append(s.out, winner...)
	}
	s.reset()
}

// chooseWinner applies the strategy to the completed block. The boolean is
// false only when a version comparison was required but neither side
// carries a parseable version.
func (s *conflictScanner) chooseWinner() ([]string, bool) {
	switch s.strategy {
	case StrategyOurs:
		return s.block.OursLines, true
	case StrategyTheirs:
		return s.block.TheirsLines, true
	case StrategyBoth:
		return append(append([]string{}, s.block.OursLines...), s.block.TheirsLines...), true
	case StrategyNone:
		return nil, true
	case StrategyHigher, StrategyLower:
		return s.compareSides()
	}
	return s.compareSides()
}

// compareSides picks a side by version: both parseable compares them (ties
// keep ours), exactly one parseable wins outright, neither means manual.
func (s *conflictScanner) compareSides() ([]string, bool) {
	oursVer, oursOK := sideVersion(s.block.OursLines, s.pattern)
	theirsVer, theirsOK := sideVersion(s.block.TheirsLines, s.pattern)

	switch {
	case oursOK && theirsOK:
		cmp := oursVer.Compare(theirsVer)
		if (s.strategy == StrategyLower && cmp <= 0) || (s.strategy != StrategyLower && cmp >= 0) {
			return s.block.OursLines, true
		}
		return s.block.TheirsLines, true
	case oursOK:
		return s.block.OursLines, true
	case theirsOK:
		return s.block.TheirsLines, true
	default:
		return nil, false
	}
}

func (s *conflictScanner) fail(lineNo int, reason string) {
	s.result.Malformed = append(s.result.Malformed,
		&MalformedConflictError{Line: lineNo, Reason: reason})
}

// flushRaw replays the buffered block text untouched and leaves the scanner
// outside any block.
func (s *conflictScanner) flushRaw() {
	s.out = append(s.out, s.raw...)
	s.reset()
}

func (s *conflictScanner) reset() {
	s.raw = nil
	s.block = ConflictBlock{}
	s.state = outsideConflict
}

// markerLabel extracts the branch label trailing a start or end marker.
func markerLabel(line, marker string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, marker))
}

// sideVersion scans one side of a block for a version occurrence.
func sideVersion(lines []string, pattern *Pattern) (Version, bool) {
	match, ok := pattern.FindFirst(strings.Join(lines, "\n"))
	if !ok {
		return Version{}, false
	}
	version, err := ParseVersion(match.Raw)
	if err != nil {
		return Version{}, false
	}
	return version, true
}
