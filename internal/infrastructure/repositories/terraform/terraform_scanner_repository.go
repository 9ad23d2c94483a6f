package terraform

import (
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

const scannerName = "terraform"

// versionAttrs are the attribute names whose values carry version pins.
var versionAttrs = map[string]struct{}{
	"version":          {},
	"required_version": {},
	"source":           {},
}

// TerraformScannerRepository extracts version pins from HCL files: module
// and provider version attributes plus ?ref= tags on module sources.
type TerraformScannerRepository struct{}

// NewTerraformScannerRepository creates a new terraform scanner.
func NewTerraformScannerRepository() repositories.ScannerRepository {
	return &TerraformScannerRepository{}
}

func (s *TerraformScannerRepository) GetName() string { return scannerName }

func (s *TerraformScannerRepository) Supports(path string) bool {
	return strings.HasSuffix(path, ".tf") || strings.HasSuffix(path, ".tfvars")
}

// Scan parses content as HCL and walks every block for version-bearing
// attributes. Files that fail to parse fall back to a plain pattern sweep,
// a broken file should still surface its pins.
func (s *TerraformScannerRepository) Scan(
	path string,
	content []byte,
	pattern *entities.Pattern,
) ([]entities.Occurrence, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() || file == nil {
		return entities.AllVersions(string(content), pattern), nil
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return entities.AllVersions(string(content), pattern), nil
	}

	var occurrences []entities.Occurrence
	collectFromBody(body, string(content), pattern, &occurrences)

	// Attribute maps iterate in random order, callers rely on file order.
	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Start < occurrences[j].Start
	})
	return occurrences, nil
}

// collectFromBody walks one body depth-first, harvesting version strings
// from the attributes named in versionAttrs.
func collectFromBody(
	body *hclsyntax.Body,
	content string,
	pattern *entities.Pattern,
	out *[]entities.Occurrence,
) {
	for name, attr := range body.Attributes {
		if _, relevant := versionAttrs[name]; !relevant {
			continue
		}

		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() || value.Type() != cty.String {
			continue
		}
		if name == "source" && !strings.Contains(value.AsString(), "ref=") {
			continue
		}

		rng := attr.Expr.Range()
		segment := content[rng.Start.Byte:rng.End.Byte]
		match, found := pattern.FindFirst(segment)
		if !found {
			continue
		}

		version, err := entities.ParseVersion(match.Raw)
		if err != nil {
			continue
		}
		*out = append(*out, entities.Occurrence{
			Raw:     match.Raw,
			Start:   rng.Start.Byte + match.Start,
			End:     rng.Start.Byte + match.End,
			Version: version,
		})
	}

	for _, block := range body.Blocks {
		collectFromBody(block.Body, content, pattern, out)
	}
}
