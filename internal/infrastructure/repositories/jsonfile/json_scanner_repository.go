package jsonfile

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

const scannerName = "json"

// JSONScannerRepository extracts versions from "version" values in JSON
// documents: package.json, composer.json, OpenAPI info blocks.
type JSONScannerRepository struct{}

// NewJSONScannerRepository creates a new JSON scanner.
func NewJSONScannerRepository() repositories.ScannerRepository {
	return &JSONScannerRepository{}
}

func (s *JSONScannerRepository) GetName() string { return scannerName }

func (s *JSONScannerRepository) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Scan decodes content and walks the document for "version" values. The
// decoder drops source positions, so offsets are recovered by finding the
// quoted value next to its key in the source text. Unparseable files fall
// back to a plain pattern sweep.
func (s *JSONScannerRepository) Scan(
	_ string,
	content []byte,
	pattern *entities.Pattern,
) ([]entities.Occurrence, error) {
	var doc interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
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
			if key == "version" {
				emitValue(str, text, pattern, out)
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
func emitValue(value, text string, pattern *entities.Pattern, out *[]entities.Occurrence) {
	match, found := pattern.FindFirst(value)
	if !found {
		return
	}
	version, err := entities.ParseVersion(match.Raw)
	if err != nil {
		return
	}

	// The decoder unescapes values, only plain strings can be located
	// again in the source. Escaped versions do not happen in practice.
	quoted := `"` + value + `"`
	valueStart := strings.Index(text, quoted)
	if valueStart < 0 {
		return
	}
	start := valueStart + 1 + match.Start
	*out = append(*out, entities.Occurrence{
		Raw:     match.Raw,
		Start:   start,
		End:     start + len(match.Raw),
		Version: version,
	})
}
