package repositories

import (
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// ScannerRepository extracts version occurrences from one file format.
// Implementations are pure: content is handed in, nothing is read from
// disk, and the returned occurrences are ordered by byte offset.
type ScannerRepository interface {
	// GetName returns the format name used for registry lookups.
	GetName() string

	// Supports reports whether this scanner understands the file at path.
	Supports(path string) bool

	// Scan returns every occurrence of pattern found in content.
	Scan(path string, content []byte, pattern *entities.Pattern) ([]entities.Occurrence, error)
}
