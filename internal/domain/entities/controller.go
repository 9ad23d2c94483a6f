package entities

import (
	"github.com/spf13/cobra"
)

// ControllerBind carries the Cobra metadata a controller exposes.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is implemented by every CLI-facing controller. Execute returns
// an error because the process exit code is part of the contract: a failed
// check must fail the calling hook or pipeline.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
