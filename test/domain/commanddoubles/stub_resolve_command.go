//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
)

// StubResolveCommand is a stub implementation of commands.Resolve.
type StubResolveCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Summary          *commands.ResolveSummary
	LastConfigPath   string
	LastOpts         commands.ResolveOptions
}

var _ commands.Resolve = (*StubResolveCommand)(nil)

func (s *StubResolveCommand) Execute(
	_ context.Context,
	configPath string,
	opts commands.ResolveOptions,
) (*commands.ResolveSummary, error) {
	s.ExecuteCallCount++
	s.LastConfigPath = configPath
	s.LastOpts = opts
	return s.Summary, s.ExecuteErr
}
