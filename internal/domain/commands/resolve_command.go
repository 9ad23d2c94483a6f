package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// ResolveOptions holds runtime options for conflict resolution.
type ResolveOptions struct {
	Strategy entities.MergeStrategy // defaults to "higher"
	Head     string                 // revision the config snapshot is read from
	DryRun   bool
}

// ResolveSummary aggregates the per-file outcomes of one resolution run.
type ResolveSummary struct {
	FilesChecked   int
	FilesResolved  []string // rewritten, conflict-free and re-staged
	BlocksResolved int
	ManualFiles    []string // blocks left for a human
	MalformedFiles []string // broken marker structure
	FailedFiles    []string // read, write or stage failures
}

// OK reports whether every touched file ended up conflict-free.
func (s *ResolveSummary) OK() bool {
	return len(s.ManualFiles) == 0 && len(s.MalformedFiles) == 0 && len(s.FailedFiles) == 0
}

// Resolve is the interface for the merge-conflict resolution use case.
// It takes the config path rather than loaded settings because the config
// is read from the head commit snapshot: the working-tree copy may itself
// be conflicted while a merge is in progress.
type Resolve interface {
	Execute(ctx context.Context, configPath string, opts ResolveOptions) (*ResolveSummary, error)
}

// ResolveCommand rewrites configured files that are currently unmerged,
// resolving their version conflict blocks and re-staging every file that
// comes out conflict-free.
type ResolveCommand struct {
	snapshots repositories.SnapshotRepository
}

// NewResolveCommand creates a new ResolveCommand.
func NewResolveCommand(snapshots repositories.SnapshotRepository) *ResolveCommand {
	return &ResolveCommand{snapshots: snapshots}
}

// Execute resolves version conflicts in every configured file that is in
// the unmerged set. Per-file failures are recorded in the summary and do
// not stop the remaining files from being processed.
func (it *ResolveCommand) Execute(
	ctx context.Context,
	configPath string,
	opts ResolveOptions,
) (*ResolveSummary, error) {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = entities.DefaultMergeStrategy
	}

	unmerged, err := it.snapshots.UnmergedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged files: %w", err)
	}

	summary := &ResolveSummary{}
	if len(unmerged) == 0 {
		logger.Info("No merge conflicts detected")
		return summary, nil
	}

	if mergeHead, mergeErr := it.snapshots.MergeHeadRef(ctx); mergeErr == nil {
		logger.Debugf("Merge in progress, incoming revision %s", mergeHead)
	}

	settings, err := it.loadSettings(ctx, configPath, opts)
	if err != nil {
		return nil, err
	}

	logger.Infof("Resolving version conflicts using %q strategy", strategy)
	for _, target := range settings.Files {
		if _, ok := unmerged[target.Path]; !ok {
			continue
		}
		summary.FilesChecked++
		it.resolveFile(ctx, target.Path, strategy, settings.SearchPattern(), opts.DryRun, summary)
	}

	logger.Infof("Resolved %d conflict block(s) in %d of %d conflicted file(s)",
		summary.BlocksResolved, len(summary.FilesResolved), summary.FilesChecked)
	if !summary.OK() {
		logger.Warn("Some conflicts could not be auto-resolved, verify changes before committing")
	}
	return summary, nil
}

// loadSettings reads the config from the head commit, falling back to the
// working tree when the config was never committed.
func (it *ResolveCommand) loadSettings(
	ctx context.Context,
	configPath string,
	opts ResolveOptions,
) (*entities.Settings, error) {
	head := opts.Head
	if head == "" {
		head = entities.DefaultHeadRef
	}

	data, err := it.snapshots.FileAtRevision(ctx, configPath, head)
	if err != nil {
		logger.Warnf("Config %s not readable at %s, falling back to working tree: %v",
			configPath, head, err)
		return entities.NewSettings(configPath)
	}
	return entities.ParseSettings(data, configPath)
}

// resolveFile rewrites one conflicted file. A file is re-staged only when
// no marker block survives the rewrite.
func (it *ResolveCommand) resolveFile(
	ctx context.Context,
	path string,
	strategy entities.MergeStrategy,
	pattern *entities.Pattern,
	dryRun bool,
	summary *ResolveSummary,
) {
	absPath := filepath.Join(it.snapshots.Root(), path)
	content, err := os.ReadFile(absPath)
	if err != nil {
		logger.Errorf("failed to read %s: %v", path, err)
		summary.FailedFiles = append(summary.FailedFiles, path)
		return
	}

	resolution := entities.ResolveConflicts(string(content), strategy, pattern)

	for _, malformed := range resolution.Malformed {
		logger.Errorf("%s: %v", path, malformed)
	}
	if len(resolution.Malformed) > 0 {
		summary.MalformedFiles = append(summary.MalformedFiles, path)
	}
	for _, block := range resolution.Manual {
		logger.Warnf("%s: conflict at line %d (%s vs %s) needs manual resolution",
			path, block.StartLine, block.OursLabel, block.TheirsLabel)
	}
	if len(resolution.Manual) > 0 {
		summary.ManualFiles = append(summary.ManualFiles, path)
	}

	if resolution.Resolved == 0 {
		return
	}
	summary.BlocksResolved += resolution.Resolved

	if dryRun {
		logger.Infof("[dry-run] would rewrite %s (%d block(s))", path, resolution.Resolved)
		return
	}

	if err := overwriteFile(absPath, []byte(resolution.Content)); err != nil {
		logger.Errorf("failed to rewrite %s: %v", path, err)
		summary.FailedFiles = append(summary.FailedFiles, path)
		return
	}
	logger.Infof("Rewrote %s (%d block(s) resolved)", path, resolution.Resolved)

	if resolution.Clean() {
		if err := it.snapshots.StageFile(ctx, path); err != nil {
			logger.Errorf("failed to stage %s: %v", path, err)
			summary.FailedFiles = append(summary.FailedFiles, path)
			return
		}
		summary.FilesResolved = append(summary.FilesResolved, path)
	}
}

// overwriteFile replaces the file content keeping its permission bits.
func overwriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, content, mode)
}
