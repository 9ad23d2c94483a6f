package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// ScanController handles the "scan" subcommand.
type ScanController struct {
	command commands.Scan
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan) *ScanController {
	return &ScanController{command: command}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "scan",
		Short: "Discover hardcoded versions across the working tree",
		Long: `Walk the working tree and report every version string the format
scanners recognize: terraform pins, yaml and toml version keys, json
manifests and plain version files.

Useful for finding files that should be under version management but
are not configured yet; --suggest prints a ready-to-paste files section
for them.`,
	}
}

// Execute scans the tree and renders the occurrences.
func (it *ScanController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	report, err := it.command.Execute(ctx, settings, commands.ScanOptions{
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	if suggest, _ := cmd.Flags().GetBool("suggest"); suggest {
		printSuggestedConfig(report, settings)
		return nil
	}

	printScanReport(report, settings)
	if report.HasMismatches() {
		return fmt.Errorf("%d configured file(s) do not carry %s",
			len(report.Mismatches), settings.Current())
	}
	return nil
}

// AddFlags adds the scan-specific flags to the given Cobra command.
func (it *ScanController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("suggest", false,
		"Print a config files section for discovered version carriers")
}
