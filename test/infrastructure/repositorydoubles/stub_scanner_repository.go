//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// SpyScannerRepository implements repositories.ScannerRepository as a configurable spy.
type SpyScannerRepository struct {
	// --- identity ---
	ScannerName string

	// --- Supports ---
	SupportsResult bool
	SupportsCalls  []string

	// --- Scan ---
	Occurrences []entities.Occurrence
	ScanErr     error
	ScanCalls   []ScanCall
}

// ScanCall records a single invocation of Scan.
type ScanCall struct {
	Path    string
	Content []byte
	Pattern *entities.Pattern
}

var _ repositories.ScannerRepository = (*SpyScannerRepository)(nil)

func (s *SpyScannerRepository) GetName() string { return s.ScannerName }

func (s *SpyScannerRepository) Supports(path string) bool {
	s.SupportsCalls = append(s.SupportsCalls, path)
	return s.SupportsResult
}

func (s *SpyScannerRepository) Scan(
	path string, content []byte, pattern *entities.Pattern,
) ([]entities.Occurrence, error) {
	s.ScanCalls = append(s.ScanCalls, ScanCall{Path: path, Content: content, Pattern: pattern})
	return s.Occurrences, s.ScanErr
}

// DummyScannerRepository is a no-op implementation of repositories.ScannerRepository.
type DummyScannerRepository struct{}

var _ repositories.ScannerRepository = (*DummyScannerRepository)(nil)

func (d *DummyScannerRepository) GetName() string { return "dummy" }

func (d *DummyScannerRepository) Supports(_ string) bool { return false }

func (d *DummyScannerRepository) Scan(
	_ string, _ []byte, _ *entities.Pattern,
) ([]entities.Occurrence, error) {
	return nil, nil
}
