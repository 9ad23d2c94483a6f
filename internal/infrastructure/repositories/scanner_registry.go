package repositories

import (
	"fmt"

	domainRepos "github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// ScannerRegistry manages all registered file format scanner implementations.
// Registration order matters: dispatch picks the first scanner that supports
// a path, so specific formats must be registered before the plain fallback.
type ScannerRegistry struct {
	ordered []domainRepos.ScannerRepository
	byName  map[string]domainRepos.ScannerRepository
}

// NewScannerRegistry creates an empty scanner registry.
func NewScannerRegistry() *ScannerRegistry {
	return &ScannerRegistry{
		byName: make(map[string]domainRepos.ScannerRepository),
	}
}

// Register adds a scanner at the end of the dispatch order.
func (r *ScannerRegistry) Register(s domainRepos.ScannerRepository) {
	r.ordered = append(r.ordered, s)
	r.byName[s.GetName()] = s
}

// Get returns the scanner with the given name.
func (r *ScannerRegistry) Get(name string) (domainRepos.ScannerRepository, error) {
	scanner, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown scanner: %q", name)
	}
	return scanner, nil
}

// ScannerFor returns the first registered scanner that supports the path,
// or nil when none does.
func (r *ScannerRegistry) ScannerFor(path string) domainRepos.ScannerRepository {
	for _, scanner := range r.ordered {
		if scanner.Supports(path) {
			return scanner
		}
	}
	return nil
}

// All returns every registered scanner in dispatch order.
func (r *ScannerRegistry) All() []domainRepos.ScannerRepository {
	result := make([]domainRepos.ScannerRepository, len(r.ordered))
	copy(result, r.ordered)
	return result
}

// Names returns the registered scanner names in dispatch order.
func (r *ScannerRegistry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, scanner := range r.ordered {
		names = append(names, scanner.GetName())
	}
	return names
}
