package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// InitController handles the "init" subcommand.
type InitController struct {
	command commands.Init
}

// NewInitController creates a new InitController.
func NewInitController(command commands.Init) *InitController {
	return &InitController{command: command}
}

// GetBind returns the Cobra command metadata for the init controller.
func (it *InitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Long: `Write a commented starter config to versioncheck.yaml (or the
given path) without overwriting an existing one.`,
	}
}

// Execute writes the starter config.
func (it *InitController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	written, err := it.command.Execute(ctx, commands.InitOptions{
		Path:   path,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	if !dryRun {
		fmt.Printf("Config written to %s... %s\n", written, okText("ok"))
	}
	return nil
}
