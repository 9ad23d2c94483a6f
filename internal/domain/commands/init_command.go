package commands

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// InitOptions holds runtime options for config scaffolding.
type InitOptions struct {
	Path   string // defaults to versioncheck.yaml in the current directory
	DryRun bool
}

// Init is the interface for the config scaffolding use case.
type Init interface {
	Execute(ctx context.Context, opts InitOptions) (string, error)
}

// InitCommand writes a starter config file for a fresh repository.
type InitCommand struct{}

// NewInitCommand creates a new InitCommand.
func NewInitCommand() *InitCommand {
	return &InitCommand{}
}

// Execute writes the example config and returns its path. An existing
// config is never overwritten.
func (it *InitCommand) Execute(_ context.Context, opts InitOptions) (string, error) {
	path := opts.Path
	if path == "" {
		path = entities.DefaultConfigFile
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %s already exists, refusing to overwrite", path)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if opts.DryRun {
		logger.Infof("[dry-run] would write starter config to %s", path)
		fmt.Print(entities.ExampleSettings)
		return path, nil
	}

	if err := os.WriteFile(path, []byte(entities.ExampleSettings), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Infof("Wrote starter config to %s, adjust it to your project", path)
	return path, nil
}
