package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/controllers"
)

func buildRootCommand(checkController *controllers.CheckController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "versioncheck",
		Short: "Keep hardcoded version strings in sync across a repository",
		Long: `Compare the version strings pinned in your files against a baseline
revision and fail when they were not bumped, so stale versions never
reach the remote.

Running without a subcommand performs the check, which is what the
pre-push hook relies on. Extra positional arguments (the remote name
and URL git passes to hooks) are ignored.

Usage modes:
  versioncheck              Check the current repository (hook/CI mode)
  versioncheck resolve      Auto-resolve version merge conflicts
  versioncheck scan         Discover hardcoded versions in the tree`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			applyLogLevel(command)
		},
		RunE: func(command *cobra.Command, args []string) error {
			return checkController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("base", "b", "",
		"Baseline revision to compare against (overrides config)")
	cmd.PersistentFlags().String("head", "",
		"Revision to verify (default: HEAD)")
	cmd.PersistentFlags().StringP("pattern", "r", "",
		"Regex used to locate version strings (overrides config)")
	cmd.PersistentFlags().StringP("log-level", "l", "info",
		"Log level (debug, info, warning, error)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

// applyLogLevel maps the log flags onto the logger before any controller
// runs, --verbose beats --log-level.
func applyLogLevel(cmd *cobra.Command) {
	if name, _ := cmd.Flags().GetString("log-level"); name != "" {
		if level, err := logger.ParseLevel(name); err == nil {
			logger.SetLevel(level)
		} else {
			logger.Warnf("unknown log level %q, keeping %s", name, logger.GetLevel())
		}
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		switch typed := ctrl.(type) {
		case *controllers.ResolveController:
			typed.AddFlags(subCmd)
		case *controllers.ScanController:
			typed.AddFlags(subCmd)
		case *controllers.UpdateController:
			typed.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	checkController := injectCheckController()
	cobraRoot := buildRootCommand(checkController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'versioncheck': %s", err)
	}
}
