package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// CheckController handles the "check" subcommand, also the default action
// when the binary runs as a git hook.
type CheckController struct {
	command commands.Check
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Verify versions were bumped against the baseline",
		Long: `Compare every configured version string between the baseline
revision and the head revision.

A file passes when its head version is greater than the baseline one, or
when the versions are equal and the file content is untouched. Any stale
pin fails the whole run, making this suitable as a pre-push hook or CI
gate.`,
	}
}

// Execute runs the check and renders the report. The returned error is
// what turns a stale version into a non-zero exit code.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	report, err := it.command.Execute(ctx, settings, commands.CheckOptions{
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	printSyncReport(report)
	if !report.OK() {
		return fmt.Errorf("%d file(s) out of sync with %s", len(report.Offenders()), report.Base)
	}
	return nil
}
