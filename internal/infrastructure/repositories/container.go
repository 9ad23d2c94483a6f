package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/gitrepo"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/jsonfile"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/plainfile"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/terraform"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/tomlfile"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/yamlfile"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// The repository is opened eagerly so every command fails fast when
	// run outside a git working tree.
	if err := container.Provide(gitrepo.NewGitSnapshotRepository); err != nil {
		return err
	}

	// Register scanner registry, specific formats first, plain fallback last
	if err := container.Provide(func() *ScannerRegistry {
		reg := NewScannerRegistry()
		reg.Register(terraform.NewTerraformScannerRepository())
		reg.Register(tomlfile.NewTOMLScannerRepository())
		reg.Register(yamlfile.NewYAMLScannerRepository())
		reg.Register(jsonfile.NewJSONScannerRepository())
		reg.Register(plainfile.NewPlainScannerRepository())
		return reg
	}); err != nil {
		return err
	}

	return nil
}
