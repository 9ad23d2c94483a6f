package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// prePushHook is the only hook installed: pushing stale versions is the
// failure mode this tool exists to prevent.
const prePushHook = "pre-push"

// HookOptions holds runtime options for hook installation.
type HookOptions struct {
	DryRun bool
}

// InstallHook is the interface for the hook installation use case.
type InstallHook interface {
	Execute(ctx context.Context, opts HookOptions) (string, error)
}

// HookCommand symlinks the running binary into the repository hooks
// directory so version checks run automatically before every push.
type HookCommand struct {
	snapshots repositories.SnapshotRepository
}

// NewHookCommand creates a new HookCommand.
func NewHookCommand(snapshots repositories.SnapshotRepository) *HookCommand {
	return &HookCommand{snapshots: snapshots}
}

// Execute installs the pre-push hook and returns its path. An existing
// hook is never overwritten, whoever put it there had a reason.
func (it *HookCommand) Execute(_ context.Context, opts HookOptions) (string, error) {
	binary, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate own binary: %w", err)
	}

	hooksDir := filepath.Join(it.snapshots.Root(), ".git", "hooks")
	hookPath := filepath.Join(hooksDir, prePushHook)

	if _, err := os.Lstat(hookPath); err == nil {
		return "", fmt.Errorf("hook %s already exists, remove it first", hookPath)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to inspect %s: %w", hookPath, err)
	}

	if opts.DryRun {
		logger.Infof("[dry-run] would symlink %s -> %s", hookPath, binary)
		return hookPath, nil
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", hooksDir, err)
	}
	if err := os.Symlink(binary, hookPath); err != nil {
		return "", fmt.Errorf("failed to install hook: %w", err)
	}

	logger.Infof("Installed %s hook at %s", prePushHook, hookPath)
	return hookPath, nil
}
