package internal

import (
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// AppInternal is the resolved application context: everything the CLI
// layer needs after dependency injection has run.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context from the aggregated
// controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns every registered controller in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	if it.controllers == nil {
		return nil
	}
	return *it.controllers
}
