package commands

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/versioncheck/internal/infrastructure/repositories"
)

// Files above this size are skipped, version strings live in small files.
const maxScanSize = 1 << 20

// skippedDirs are never descended into while walking the tree.
var skippedDirs = map[string]struct{}{
	".git":         {},
	".terraform":   {},
	"node_modules": {},
	"vendor":       {},
}

// ScanOptions holds runtime options for a tree scan.
type ScanOptions struct {
	Verbose bool
}

// Scan is the interface for the discovery use case: walk the working tree
// and report every version occurrence the format scanners recognize.
type Scan interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ScanOptions) (*entities.ScanReport, error)
}

// ScanCommand walks the repository tree, dispatches each file to the first
// scanner that supports it and collects occurrences plus mismatches against
// the configured current version.
type ScanCommand struct {
	scanners  *infraRepos.ScannerRegistry
	snapshots repositories.SnapshotRepository
}

// NewScanCommand creates a new ScanCommand with the given registry.
func NewScanCommand(
	scanners *infraRepos.ScannerRegistry,
	snapshots repositories.SnapshotRepository,
) *ScanCommand {
	return &ScanCommand{scanners: scanners, snapshots: snapshots}
}

// Execute scans the tree rooted at the repository and returns the report.
// Unreadable files are logged and skipped, they never abort the scan.
func (it *ScanCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ScanOptions,
) (*entities.ScanReport, error) {
	root := it.snapshots.Root()
	configured := make(map[string]struct{}, len(settings.Files))
	for _, target := range settings.Files {
		configured[filepath.ToSlash(target.Path)] = struct{}{}
	}

	report := &entities.ScanReport{}
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warnf("skipping %s: %v", path, walkErr)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if _, skip := skippedDirs[entry.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		it.scanFile(path, rel, configured, settings, opts, report)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	logger.Infof("Found %d version occurrence(s), %d mismatch(es)",
		len(report.Occurrences), len(report.Mismatches))
	return report, nil
}

// scanFile feeds one file through the registry. Files nothing supports are
// skipped unless they are configured targets, those always get scanned so a
// stale pin never hides behind an unknown format.
func (it *ScanCommand) scanFile(
	path, rel string,
	configured map[string]struct{},
	settings *entities.Settings,
	opts ScanOptions,
	report *entities.ScanReport,
) {
	_, isConfigured := configured[rel]

	scanner := it.scanners.ScannerFor(rel)
	if scanner == nil {
		if !isConfigured {
			return
		}
		fallback, err := it.scanners.Get("plain")
		if err != nil {
			logger.Errorf("no scanner available for configured file %s: %v", rel, err)
			return
		}
		scanner = fallback
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Warnf("skipping %s: %v", rel, err)
		return
	}
	if info.Size() > maxScanSize {
		logger.Debugf("skipping %s: larger than %d bytes", rel, maxScanSize)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("skipping %s: %v", rel, err)
		return
	}
	if bytes.IndexByte(content, 0) >= 0 {
		logger.Debugf("skipping %s: binary content", rel)
		return
	}

	occurrences, err := scanner.Scan(rel, content, settings.SearchPattern())
	if err != nil {
		logger.Warnf("scanner %s failed on %s: %v", scanner.GetName(), rel, err)
		return
	}
	if len(occurrences) == 0 {
		return
	}
	if opts.Verbose {
		logger.Debugf("%s: %d occurrence(s) via %s scanner", rel, len(occurrences), scanner.GetName())
	}

	for i := range occurrences {
		occurrences[i].File = rel
		occurrences[i].Revision = entities.WorktreeRevision
	}
	report.Occurrences = append(report.Occurrences, occurrences...)

	// Only configured targets are held against the declared current
	// version, everything else is informational output.
	if isConfigured && !occurrences[0].Version.Equal(settings.Current()) {
		report.Mismatches = append(report.Mismatches, entities.Mismatch{
			Source:   rel,
			Expected: settings.Current().String(),
			Actual:   occurrences[0].Version.String(),
		})
	}
}
