package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// HookController handles the "install-hook" subcommand.
type HookController struct {
	command commands.InstallHook
}

// NewHookController creates a new HookController.
func NewHookController(command commands.InstallHook) *HookController {
	return &HookController{command: command}
}

// GetBind returns the Cobra command metadata for the hook controller.
func (it *HookController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "install-hook",
		Short: "Install the pre-push version check hook",
		Long: `Symlink this binary into .git/hooks/pre-push so every push runs
the version check first. Git invokes the hook without arguments, which
is exactly the default check action.`,
	}
}

// Execute installs the hook.
func (it *HookController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	hookPath, err := it.command.Execute(ctx, commands.HookOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	if !dryRun {
		fmt.Printf("Hook installed at %s... %s\n", hookPath, okText("ok"))
	}
	return nil
}
