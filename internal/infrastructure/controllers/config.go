package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// configPath resolves the config file location from the --config flag,
// falling back to probing the default locations.
func configPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return path, nil
	}

	path, err := entities.FindConfigFile()
	if err != nil {
		return "", fmt.Errorf(
			"no config file found: %w\nSpecify one with --config or run 'versioncheck init'", err)
	}
	return path, nil
}

// loadSettings loads the config and applies the revision and pattern flag
// overrides on top of it.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Using config file: %s", path)

	settings, err := entities.NewSettings(path)
	if err != nil {
		return nil, err
	}

	base, _ := cmd.Flags().GetString("base")
	head, _ := cmd.Flags().GetString("head")
	pattern, _ := cmd.Flags().GetString("pattern")
	if err := settings.ApplyOverrides(base, head, pattern); err != nil {
		return nil, err
	}
	return settings, nil
}
