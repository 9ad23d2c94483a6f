//go:build unit

package yamlfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/yamlfile"
)

func TestYAMLScannerRepositorySupports(t *testing.T) {
	t.Parallel()

	t.Run("should claim yaml extensions case-insensitively", func(t *testing.T) {
		// given
		scanner := yamlfile.NewYAMLScannerRepository()

		// when / then
		assert.True(t, scanner.Supports("Chart.yaml"))
		assert.True(t, scanner.Supports("deploy/values.yml"))
		assert.True(t, scanner.Supports("UPPER.YAML"))
		assert.False(t, scanner.Supports("package.json"))
		assert.False(t, scanner.Supports("VERSION"))
	})
}

func TestYAMLScannerRepositoryScan(t *testing.T) {
	t.Parallel()

	pattern := entities.MustPattern("")

	t.Run("should extract versions from well-known keys with exact offsets", func(t *testing.T) {
		// given a Helm-style chart with one quoted value
		content := "apiVersion: v2\n" +
			"name: demo\n" +
			"version: 1.2.3\n" +
			"appVersion: \"1.2.0\"\n"
		scanner := yamlfile.NewYAMLScannerRepository()

		// when
		occurrences, err := scanner.Scan("Chart.yaml", []byte(content), pattern)

		// then
		require.NoError(t, err)
		require.Len(t, occurrences, 2)
		assert.Equal(t, "1.2.3", occurrences[0].Raw)
		assert.Equal(t, "1.2.0", occurrences[1].Raw)
		for _, occurrence := range occurrences {
			assert.Equal(t, occurrence.Raw, content[occurrence.Start:occurrence.End])
		}
	})

	t.Run("should walk nested mappings and sequences", func(t *testing.T) {
		// given
		content := "image:\n" +
			"  repository: nginx\n" +
			"  tag: 1.25.3\n" +
			"releases:\n" +
			"  - version: 1.0.0\n" +
			"  - version: 1.1.0\n"
		scanner := yamlfile.NewYAMLScannerRepository()

		// when
		occurrences, err := scanner.Scan("values.yaml", []byte(content), pattern)

		// then ordered by position in the document
		require.NoError(t, err)
		require.Len(t, occurrences, 3)
		assert.Equal(t, "1.25.3", occurrences[0].Raw)
		assert.Equal(t, "1.0.0", occurrences[1].Raw)
		assert.Equal(t, "1.1.0", occurrences[2].Raw)
	})

	t.Run("should ignore version-like text under unrelated keys", func(t *testing.T) {
		// given
		content := "description: compatible with 9.9.9\n" +
			"replicas: 3\n" +
			"version: 1.2.3\n"
		scanner := yamlfile.NewYAMLScannerRepository()

		// when
		occurrences, err := scanner.Scan("values.yaml", []byte(content), pattern)

		// then
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, "1.2.3", occurrences[0].Raw)
	})

	t.Run("should skip version keys whose value carries no version", func(t *testing.T) {
		// given
		content := "version: latest\ntag: stable\n"
		scanner := yamlfile.NewYAMLScannerRepository()

		// when
		occurrences, err := scanner.Scan("values.yaml", []byte(content), pattern)

		// then
		require.NoError(t, err)
		assert.Empty(t, occurrences)
	})

	t.Run("should fall back to a raw sweep on unparseable yaml", func(t *testing.T) {
		// given a tab-indented document, illegal in yaml
		content := "\tversion: 1.2.3\n"
		scanner := yamlfile.NewYAMLScannerRepository()

		// when
		occurrences, err := scanner.Scan("broken.yaml", []byte(content), pattern)

		// then
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, "1.2.3", occurrences[0].Raw)
	})
}
