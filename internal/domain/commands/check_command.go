package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// checkWorkers bounds the per-entry fan-out of the drift check.
const checkWorkers = 4

// CheckOptions holds runtime options for the drift check.
type CheckOptions struct {
	Base    string // overrides the configured baseline ref
	Head    string // overrides the configured head ref
	Verbose bool
}

// Check is the interface for the drift detection use case.
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CheckOptions) (*entities.SyncReport, error)
}

// CheckCommand compares the version found in each configured file at the
// baseline revision against the head revision and reports drift. Entries
// are evaluated independently so one broken file never hides the others.
type CheckCommand struct {
	snapshots repositories.SnapshotRepository
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(snapshots repositories.SnapshotRepository) *CheckCommand {
	return &CheckCommand{snapshots: snapshots}
}

// Execute runs the drift check and returns the full report, one row per
// configured file in declaration order.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CheckOptions,
) (*entities.SyncReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	base, err := it.resolveBase(ctx, settings, opts)
	if err != nil {
		return nil, err
	}

	head := opts.Head
	if head == "" {
		head = settings.Head
	}

	logger.Infof("Checking %d file(s): %s -> %s", len(settings.Files), base, head)

	changed, err := it.snapshots.ChangedFiles(ctx, base, head)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s against %s: %w", base, head, err)
	}
	if len(changed) == 0 {
		logger.Info("No changes detected between baseline and head")
	}

	report := &entities.SyncReport{
		Base: base,
		Head: head,
		Rows: make([]entities.SyncRow, len(settings.Files)),
	}

	// Entries have no cross-dependencies; fan out and merge by index so
	// the report keeps the declaration order.
	var group sync.WaitGroup
	slots := make(chan struct{}, checkWorkers)
	for i, target := range settings.Files {
		group.Add(1)
		go func(idx int, entry entities.Target) {
			defer group.Done()
			slots <- struct{}{}
			defer func() { <-slots }()
			report.Rows[idx] = it.evaluate(ctx, settings, entry, base, head, changed)
		}(i, target)
	}
	group.Wait()

	for _, row := range report.Rows {
		if row.Err != nil {
			logger.Debugf("%s: %v", row.File, row.Err)
		}
	}
	return report, nil
}

// resolveBase picks the baseline revision: an explicit override, the
// configured base, the latest semver tag, or the first default candidate
// that resolves.
func (it *CheckCommand) resolveBase(
	ctx context.Context,
	settings *entities.Settings,
	opts CheckOptions,
) (string, error) {
	base := opts.Base
	if base == "" {
		base = settings.Base
	}

	switch base {
	case "":
		candidates := entities.BaseRefCandidates()
		logger.Infof("No baseline configured, trying: %s", strings.Join(candidates, ", "))
		resolved, err := it.snapshots.ResolveBase(ctx, candidates)
		if err != nil {
			return "", fmt.Errorf("failed to resolve default baseline: %w", err)
		}
		logger.Infof("Using %s", resolved)
		return resolved, nil
	case entities.LatestTagBase:
		tags, err := it.snapshots.TagsDescending(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list tags: %w", err)
		}
		if len(tags) == 0 {
			return "", errors.New("no tags found to use as baseline")
		}
		logger.Infof("Using latest tag %s as baseline", tags[0])
		return tags[0], nil
	default:
		return base, nil
	}
}

// evaluate builds one report row. Errors are attached to the row instead
// of propagated so the remaining entries still get evaluated.
func (it *CheckCommand) evaluate(
	ctx context.Context,
	settings *entities.Settings,
	target entities.Target,
	base, head string,
	changed map[string]struct{},
) entities.SyncRow {
	row := entities.SyncRow{File: target.Path}
	search := entities.BuildSearchSpec(target, settings.Current(), settings.SearchPattern())

	headData, err := it.snapshots.FileAtRevision(ctx, target.Path, head)
	if err != nil {
		row.Err = fmt.Errorf("failed to read %s at %s: %w", target.Path, head, err)
		return row
	}

	headOcc, err := entities.LocateVersion(string(headData), search)
	if err != nil {
		row.Err = fmt.Errorf("%s at %s: %w", target.Path, head, err)
		return row
	}
	row.HeadVersion = headOcc.Raw

	baseData, err := it.snapshots.FileAtRevision(ctx, target.Path, base)
	if errors.Is(err, entities.ErrFileNotFound) {
		// Newly added file, no prior version to compare against.
		logger.Debugf("%s absent at %s, treating %s as new", target.Path, base, row.HeadVersion)
		row.InSync = true
		return row
	}
	if err != nil {
		row.Err = fmt.Errorf("failed to read %s at %s: %w", target.Path, base, err)
		return row
	}

	baseOcc, err := entities.LocateVersion(string(baseData), search)
	if err != nil {
		if search.Kind == entities.SearchLiteral {
			// The substituted template names the current version, so its
			// absence at the baseline is the normal state after a bump.
			row.InSync = true
			return row
		}
		row.Err = fmt.Errorf("%s at %s: %w", target.Path, base, err)
		return row
	}
	row.BaselineVersion = baseOcc.Raw

	_, contentChanged := changed[target.Path]
	cmp := headOcc.Version.Compare(baseOcc.Version)
	row.InSync = cmp > 0 || (cmp == 0 && !contentChanged)
	return row
}
