package tomlfile

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

const scannerName = "toml"

// versionKeys are the table keys whose string values carry versions, tag
// covers git dependency pins.
var versionKeys = map[string]struct{}{
	"version":         {},
	"current_version": {},
	"tag":             {},
}

// TOMLScannerRepository extracts versions from the values of well-known
// keys in TOML documents, Cargo.toml and pyproject.toml being the usual
// suspects.
type TOMLScannerRepository struct{}

// NewTOMLScannerRepository creates a new TOML scanner.
func NewTOMLScannerRepository() repositories.ScannerRepository {
	return &TOMLScannerRepository{}
}

func (s *TOMLScannerRepository) GetName() string { return scannerName }

func (s *TOMLScannerRepository) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Scan decodes content and walks the resulting tree for version keys.
// The decoder drops source positions, so offsets are recovered by finding
// the value text on a line that also names the key. Unparseable files fall
// back to a plain pattern sweep.
func (s *TOMLScannerRepository) Scan(
	_ string,
	content []byte,
	pattern *entities.Pattern,
) ([]entities.Occurrence, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(content, &doc); err != nil {
		return entities.AllVersions(string(content), pattern), nil
	}

	text := string(content)
	var occurrences []entities.Occurrence
	collectValues(doc, text, pattern, &occurrences)

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Start < occurrences[j].Start
	})
	return occurrences, nil
}

func collectValues(
	node interface{},
	text string,
	pattern *entities.Pattern,
	out *[]entities.Occurrence,
) {
	switch typed := node.(type) {
	case map[string]interface{}:
		for key, value := range typed {
			str, isString := value.(string)
			if !isString {
				collectValues(value, text, pattern, out)
				continue
			}
			if _, relevant := versionKeys[key]; relevant {
				emitValue(key, str, text, pattern, out)
			}
		}
	case []interface{}:
		for _, value := range typed {
			collectValues(value, text, pattern, out)
		}
	}
}

// emitValue matches the pattern inside one decoded value and maps the hit
// back to its byte offset in the source text.
func emitValue(key, value, text string, pattern *entities.Pattern, out *[]entities.Occurrence) {
	match, found := pattern.FindFirst(value)
	if !found {
		return
	}
	version, err := entities.ParseVersion(match.Raw)
	if err != nil {
		return
	}

	valueStart := findValueOffset(text, key, value)
	if valueStart < 0 {
		return
	}
	start := valueStart + match.Start
	*out = append(*out, entities.Occurrence{
		Raw:     match.Raw,
		Start:   start,
		End:     start + len(match.Raw),
		Version: version,
	})
}

// findValueOffset returns the offset of the value occurrence sharing a
// line with its key, preferring that over any earlier occurrence of the
// same text under an unrelated key.
func findValueOffset(text, key, value string) int {
	first := -1
	from := 0
	for {
		idx := strings.Index(text[from:], value)
		if idx < 0 {
			return first
		}
		abs := from + idx
		if first < 0 {
			first = abs
		}

		lineStart := strings.LastIndexByte(text[:abs], '\n') + 1
		lineEnd := abs + len(value)
		if next := strings.IndexByte(text[lineEnd:], '\n'); next >= 0 {
			lineEnd += next
		} else {
			lineEnd = len(text)
		}
		if strings.Contains(text[lineStart:lineEnd], key) {
			return abs
		}
		from = abs + len(value)
	}
}
