package controllers

import (
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewCheckController); err != nil {
		return err
	}
	if err := container.Provide(NewResolveController); err != nil {
		return err
	}
	if err := container.Provide(NewScanController); err != nil {
		return err
	}
	if err := container.Provide(NewUpdateController); err != nil {
		return err
	}
	if err := container.Provide(NewHookController); err != nil {
		return err
	}
	if err := container.Provide(NewInitController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
// Slice order is subcommand registration order.
func NewControllers(
	checkController *CheckController,
	resolveController *ResolveController,
	scanController *ScanController,
	updateController *UpdateController,
	hookController *HookController,
	initController *InitController,
) *[]entities.Controller {
	return &[]entities.Controller{
		checkController,
		resolveController,
		scanController,
		updateController,
		hookController,
		initController,
	}
}
