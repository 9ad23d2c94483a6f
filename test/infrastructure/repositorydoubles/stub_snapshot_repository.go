//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for the
// repository interfaces. These are hand-written to keep the tests dependency-free;
// no mock frameworks are used.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// SpySnapshotRepository is a configurable in-memory SnapshotRepository.
// Snapshots maps revision -> path -> content; everything else is returned verbatim.
// Calls are recorded so tests can assert on interaction order and arguments.
type SpySnapshotRepository struct {
	mu sync.Mutex

	// FileAtRevision configuration and recording.
	Snapshots map[string]map[string][]byte
	ReadErrs  map[string]error // keyed by "rev:path"
	ReadCalls []string         // "rev:path" in call order

	// ChangedFiles configuration.
	Changed    map[string]struct{}
	ChangedErr error

	// CurrentRef configuration.
	Ref    string
	RefErr error

	// ResolveBase configuration: candidates present in Resolvable resolve.
	// A nil map resolves every candidate.
	Resolvable     map[string]bool
	SeenCandidates []string

	// TagsDescending configuration.
	Tags    []string
	TagsErr error

	// UnmergedFiles configuration.
	Unmerged    map[string]struct{}
	UnmergedErr error

	// MergeHeadRef configuration.
	MergeHead    string
	MergeHeadErr error

	// StageFile configuration and recording.
	StageErr    error
	StagedPaths []string

	// Root configuration.
	RootDir string
}

var _ repositories.SnapshotRepository = (*SpySnapshotRepository)(nil)

func (s *SpySnapshotRepository) FileAtRevision(_ context.Context, path, rev string) ([]byte, error) {
	key := rev + ":" + path
	s.mu.Lock()
	s.ReadCalls = append(s.ReadCalls, key)
	s.mu.Unlock()

	if err, ok := s.ReadErrs[key]; ok {
		return nil, err
	}
	if files, ok := s.Snapshots[rev]; ok {
		if content, ok := files[path]; ok {
			return content, nil
		}
	}
	return nil, fmt.Errorf("%s at %s: %w", path, rev, entities.ErrFileNotFound)
}

func (s *SpySnapshotRepository) ChangedFiles(_ context.Context, _, _ string) (map[string]struct{}, error) {
	if s.ChangedErr != nil {
		return nil, s.ChangedErr
	}
	if s.Changed == nil {
		return map[string]struct{}{}, nil
	}
	return s.Changed, nil
}

func (s *SpySnapshotRepository) CurrentRef(_ context.Context) (string, error) {
	if s.RefErr != nil {
		return "", s.RefErr
	}
	return s.Ref, nil
}

func (s *SpySnapshotRepository) ResolveBase(_ context.Context, candidates []string) (string, error) {
	s.mu.Lock()
	s.SeenCandidates = append(s.SeenCandidates, candidates...)
	s.mu.Unlock()

	for _, candidate := range candidates {
		if s.Resolvable == nil || s.Resolvable[candidate] {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no baseline ref found (tried: %v)", candidates)
}

func (s *SpySnapshotRepository) TagsDescending(_ context.Context) ([]string, error) {
	if s.TagsErr != nil {
		return nil, s.TagsErr
	}
	return s.Tags, nil
}

func (s *SpySnapshotRepository) UnmergedFiles(_ context.Context) (map[string]struct{}, error) {
	if s.UnmergedErr != nil {
		return nil, s.UnmergedErr
	}
	if s.Unmerged == nil {
		return map[string]struct{}{}, nil
	}
	return s.Unmerged, nil
}

func (s *SpySnapshotRepository) MergeHeadRef(_ context.Context) (string, error) {
	if s.MergeHeadErr != nil {
		return "", s.MergeHeadErr
	}
	if s.MergeHead == "" {
		return "", fmt.Errorf("no merge in progress")
	}
	return s.MergeHead, nil
}

func (s *SpySnapshotRepository) StageFile(_ context.Context, path string) error {
	s.mu.Lock()
	s.StagedPaths = append(s.StagedPaths, path)
	s.mu.Unlock()
	return s.StageErr
}

func (s *SpySnapshotRepository) Root() string {
	if s.RootDir == "" {
		return "."
	}
	return s.RootDir
}
