package commands

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// validParts are the version components the bump tool accepts.
var validParts = []string{"major", "minor", "patch"}

// UpdateOptions holds runtime options for a version bump.
type UpdateOptions struct {
	Part       string // major, minor or patch
	AllowDirty bool
	DryRun     bool
}

// Update is the interface for the version bump use case. The bump itself
// is delegated to the configured external tool, this command only guards
// the invocation.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateOptions) error
}

// UpdateCommand shells out to the configured bump tool from the repository
// root so its own config discovery works the same as a manual run.
type UpdateCommand struct {
	snapshots repositories.SnapshotRepository
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(snapshots repositories.SnapshotRepository) *UpdateCommand {
	return &UpdateCommand{snapshots: snapshots}
}

// Execute bumps the requested version part across all configured files.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateOptions,
) error {
	part := strings.ToLower(strings.TrimSpace(opts.Part))
	if !isValidPart(part) {
		return fmt.Errorf("invalid version part %q, expected one of %s",
			opts.Part, strings.Join(validParts, ", "))
	}

	tool := settings.BumpToolName()
	args := []string{part}
	if opts.AllowDirty {
		args = append(args, "--allow-dirty")
	}

	if opts.DryRun {
		logger.Infof("[dry-run] would run %s %s", tool, strings.Join(args, " "))
		return nil
	}

	logger.Infof("Bumping %s version with %s (current %s)",
		part, tool, settings.Current())

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = it.snapshots.Root()
	output, err := cmd.CombinedOutput()
	if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
		logger.Debugf("%s output:\n%s", tool, trimmed)
	}
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", tool, err)
	}

	logger.Infof("Version bumped, review the changes before committing")
	return nil
}

func isValidPart(part string) bool {
	for _, valid := range validParts {
		if part == valid {
			return true
		}
	}
	return false
}
