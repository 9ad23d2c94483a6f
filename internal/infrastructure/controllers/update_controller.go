package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// UpdateController handles the "update" subcommand.
type UpdateController struct {
	command commands.Update
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update) *UpdateController {
	return &UpdateController{command: command}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update [major|minor|patch]",
		Short: "Bump the version across all configured files",
		Long: `Delegate the version bump to the configured external tool
(bump2version by default), which rewrites every configured file in one
go. Defaults to a patch bump.`,
	}
}

// Execute bumps the requested part.
func (it *UpdateController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	part := "patch"
	if len(args) > 0 {
		part = args[0]
	}

	allowDirty, _ := cmd.Flags().GetBool("allow-dirty")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return it.command.Execute(ctx, settings, commands.UpdateOptions{
		Part:       part,
		AllowDirty: allowDirty,
		DryRun:     dryRun,
	})
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("allow-dirty", false,
		"Bump even when the working tree has uncommitted changes")
}
