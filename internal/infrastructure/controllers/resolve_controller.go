package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// ResolveController handles the "resolve" subcommand.
type ResolveController struct {
	command commands.Resolve
}

// NewResolveController creates a new ResolveController.
func NewResolveController(command commands.Resolve) *ResolveController {
	return &ResolveController{command: command}
}

// GetBind returns the Cobra command metadata for the resolve controller.
func (it *ResolveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "resolve",
		Short: "Auto-resolve version merge conflicts",
		Long: `Rewrite merge conflict blocks in the configured files when both
sides are just competing version strings.

The winning side is picked by the chosen strategy ("higher" by default)
and files that come out conflict-free are re-staged. Blocks that are not
version conflicts are left untouched for manual resolution.`,
	}
}

// Execute resolves conflicts in the configured files and renders the
// summary.
func (it *ResolveController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	path, err := configPath(cmd)
	if err != nil {
		return err
	}

	strategyName, _ := cmd.Flags().GetString("strategy")
	strategy, err := entities.ParseMergeStrategy(strategyName)
	if err != nil {
		return err
	}

	head, _ := cmd.Flags().GetString("head")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	summary, err := it.command.Execute(ctx, path, commands.ResolveOptions{
		Strategy: strategy,
		Head:     head,
		DryRun:   dryRun,
	})
	if err != nil {
		return err
	}

	printResolveSummary(summary)
	if !summary.OK() {
		return fmt.Errorf("not every conflict could be resolved automatically")
	}
	return nil
}

// AddFlags adds the resolve-specific flags to the given Cobra command.
func (it *ResolveController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("strategy", "s", string(entities.DefaultMergeStrategy),
		fmt.Sprintf("Conflict strategy (%s)", strings.Join(entities.MergeStrategyNames(), ", ")))
}
