package yamlfile

import (
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

const scannerName = "yaml"

// versionKeys are the mapping keys whose scalar values carry versions.
// appVersion covers Helm charts, tag covers image pins.
var versionKeys = map[string]struct{}{
	"version":         {},
	"appVersion":      {},
	"app_version":     {},
	"current_version": {},
	"tag":             {},
}

// YAMLScannerRepository extracts versions from the values of well-known
// keys in YAML documents.
type YAMLScannerRepository struct{}

// NewYAMLScannerRepository creates a new YAML scanner.
func NewYAMLScannerRepository() repositories.ScannerRepository {
	return &YAMLScannerRepository{}
}

func (s *YAMLScannerRepository) GetName() string { return scannerName }

func (s *YAMLScannerRepository) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Scan decodes content into the yaml node tree and walks it for version
// keys. Node positions keep the reported offsets exact even for quoted
// scalars. Unparseable files fall back to a plain pattern sweep.
func (s *YAMLScannerRepository) Scan(
	_ string,
	content []byte,
	pattern *entities.Pattern,
) ([]entities.Occurrence, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return entities.AllVersions(string(content), pattern), nil
	}

	text := string(content)
	lines := lineOffsets(text)

	var occurrences []entities.Occurrence
	walkNode(&root, text, lines, pattern, &occurrences)

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Start < occurrences[j].Start
	})
	return occurrences, nil
}

func walkNode(
	node *yaml.Node,
	text string,
	lines []int,
	pattern *entities.Pattern,
	out *[]entities.Occurrence,
) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			walkNode(child, text, lines, pattern, out)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind == yaml.ScalarNode && value.Kind == yaml.ScalarNode {
				if _, relevant := versionKeys[key.Value]; relevant {
					emitScalar(value, text, lines, pattern, out)
				}
				continue
			}
			walkNode(value, text, lines, pattern, out)
		}
	}
}

// emitScalar matches the pattern inside one scalar value and maps the hit
// back to absolute byte offsets using the node position.
func emitScalar(
	node *yaml.Node,
	text string,
	lines []int,
	pattern *entities.Pattern,
	out *[]entities.Occurrence,
) {
	match, found := pattern.FindFirst(node.Value)
	if !found {
		return
	}
	version, err := entities.ParseVersion(match.Raw)
	if err != nil {
		return
	}

	start := offsetFor(node, text, lines, match.Raw)
	*out = append(*out, entities.Occurrence{
		Raw:     match.Raw,
		Start:   start,
		End:     start + len(match.Raw),
		Version: version,
	})
}

// offsetFor locates raw on the node's source line. Quoting shifts the
// column by one, so the line is searched for the exact matched text; the
// column itself is only a fallback for multiline scalars.
func offsetFor(node *yaml.Node, text string, lines []int, raw string) int {
	if node.Line < 1 || node.Line > len(lines) {
		return 0
	}
	lineStart := lines[node.Line-1]
	lineEnd := len(text)
	if node.Line < len(lines) {
		lineEnd = lines[node.Line]
	}
	if idx := strings.Index(text[lineStart:lineEnd], raw); idx >= 0 {
		return lineStart + idx
	}
	return lineStart + node.Column - 1
}

// lineOffsets returns the byte offset of the start of each line.
func lineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
