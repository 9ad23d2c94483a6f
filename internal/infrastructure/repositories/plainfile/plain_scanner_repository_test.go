//go:build unit

package plainfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/plainfile"
)

func TestPlainScannerRepositorySupports(t *testing.T) {
	t.Parallel()

	t.Run("should claim only conventional version file names", func(t *testing.T) {
		// given
		scanner := plainfile.NewPlainScannerRepository()

		// when / then
		assert.True(t, scanner.Supports("VERSION"))
		assert.True(t, scanner.Supports("VERSION.txt"))
		assert.True(t, scanner.Supports("version.txt"))
		assert.True(t, scanner.Supports(".version"))
		assert.True(t, scanner.Supports("sub/dir/version.txt"))
		assert.False(t, scanner.Supports("notes.txt"))
		assert.False(t, scanner.Supports("version.yaml"))
	})
}

func TestPlainScannerRepositoryScan(t *testing.T) {
	t.Parallel()

	t.Run("should return every version in offset order", func(t *testing.T) {
		// given
		scanner := plainfile.NewPlainScannerRepository()
		content := []byte("1.0.0\nchangelog mentions 0.9.0 and 1.0.0-rc.1\n")

		// when
		occurrences, err := scanner.Scan("version.txt", content, entities.MustPattern(""))

		// then
		require.NoError(t, err)
		require.Len(t, occurrences, 3)
		assert.Equal(t, "1.0.0", occurrences[0].Raw)
		assert.Equal(t, 0, occurrences[0].Start)
		assert.Equal(t, "0.9.0", occurrences[1].Raw)
		assert.Equal(t, "1.0.0-rc.1", occurrences[2].Raw)
	})

	t.Run("should return nothing for version-free content", func(t *testing.T) {
		// given
		scanner := plainfile.NewPlainScannerRepository()

		// when
		occurrences, err := scanner.Scan("VERSION", []byte("tbd\n"), entities.MustPattern(""))

		// then
		require.NoError(t, err)
		assert.Empty(t, occurrences)
	})
}
