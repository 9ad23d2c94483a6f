//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepos "github.com/rios0rios0/versioncheck/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/versioncheck/test/infrastructure/repositorydoubles"
)

func TestScannerRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should dispatch to the first scanner that supports the path", func(t *testing.T) {
		// given two scanners claiming everything
		first := &doubles.SpyScannerRepository{ScannerName: "first", SupportsResult: true}
		second := &doubles.SpyScannerRepository{ScannerName: "second", SupportsResult: true}

		registry := infraRepos.NewScannerRegistry()
		registry.Register(first)
		registry.Register(second)

		// when
		picked := registry.ScannerFor("anything.txt")

		// then
		require.NotNil(t, picked)
		assert.Equal(t, "first", picked.GetName())
		assert.Empty(t, second.SupportsCalls)
	})

	t.Run("should return nil when no scanner supports the path", func(t *testing.T) {
		// given
		registry := infraRepos.NewScannerRegistry()
		registry.Register(&doubles.SpyScannerRepository{ScannerName: "picky"})

		// when / then
		assert.Nil(t, registry.ScannerFor("unknown.bin"))
	})

	t.Run("should look up scanners by name", func(t *testing.T) {
		// given
		registry := infraRepos.NewScannerRegistry()
		registry.Register(&doubles.SpyScannerRepository{ScannerName: "plain"})

		// when
		scanner, err := registry.Get("plain")

		// then
		require.NoError(t, err)
		assert.Equal(t, "plain", scanner.GetName())

		_, err = registry.Get("exotic")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown scanner: "exotic"`)
	})

	t.Run("should keep registration order in All and Names", func(t *testing.T) {
		// given
		registry := infraRepos.NewScannerRegistry()
		registry.Register(&doubles.SpyScannerRepository{ScannerName: "yaml"})
		registry.Register(&doubles.SpyScannerRepository{ScannerName: "toml"})
		registry.Register(&doubles.SpyScannerRepository{ScannerName: "plain"})

		// when / then
		assert.Equal(t, []string{"yaml", "toml", "plain"}, registry.Names())
		require.Len(t, registry.All(), 3)
		assert.Equal(t, "yaml", registry.All()[0].GetName())
	})
}
