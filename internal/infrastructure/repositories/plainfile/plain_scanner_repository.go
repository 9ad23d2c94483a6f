package plainfile

import (
	"path/filepath"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

const scannerName = "plain"

// versionFiles are the conventional single-purpose version file names.
var versionFiles = map[string]struct{}{
	"VERSION":     {},
	"VERSION.txt": {},
	"version.txt": {},
	".version":    {},
}

// PlainScannerRepository sweeps raw text for version strings. It claims
// only conventional version files on its own but is also the fallback for
// configured targets no structured scanner understands.
type PlainScannerRepository struct{}

// NewPlainScannerRepository creates a new plain text scanner.
func NewPlainScannerRepository() repositories.ScannerRepository {
	return &PlainScannerRepository{}
}

func (s *PlainScannerRepository) GetName() string { return scannerName }

func (s *PlainScannerRepository) Supports(path string) bool {
	_, known := versionFiles[filepath.Base(path)]
	return known
}

// Scan returns every parseable pattern match in content.
func (s *PlainScannerRepository) Scan(
	_ string,
	content []byte,
	pattern *entities.Pattern,
) ([]entities.Occurrence, error) {
	return entities.AllVersions(string(content), pattern), nil
}
