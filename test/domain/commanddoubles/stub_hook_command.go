//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
)

// StubHookCommand is a stub implementation of commands.InstallHook.
type StubHookCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	HookPath         string
	LastOpts         commands.HookOptions
}

var _ commands.InstallHook = (*StubHookCommand)(nil)

func (s *StubHookCommand) Execute(_ context.Context, opts commands.HookOptions) (string, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.HookPath, s.ExecuteErr
}
