//go:build unit

package jsonfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/jsonfile"
)

func TestJSONScannerRepositorySupports(t *testing.T) {
	t.Parallel()

	t.Run("should claim only the json extension", func(t *testing.T) {
		// given
		scanner := jsonfile.NewJSONScannerRepository()

		// when / then
		assert.True(t, scanner.Supports("package.json"))
		assert.True(t, scanner.Supports("api/openapi.JSON"))
		assert.False(t, scanner.Supports("package-lock.yaml"))
		assert.False(t, scanner.Supports("data.jsonl"))
	})
}

func TestJSONScannerRepositoryScan(t *testing.T) {
	t.Parallel()

	pattern := entities.MustPattern("")

	t.Run("should extract the version value with its source offset", func(t *testing.T) {
		// given
		content := `{
  "name": "demo",
  "version": "2.1.7",
  "description": "demo package"
}`
		scanner := jsonfile.NewJSONScannerRepository()

		// when
		occurrences, err := scanner.Scan("package.json", []byte(content), pattern)

		// then
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, "2.1.7", occurrences[0].Raw)
		assert.Equal(t, "2.1.7", content[occurrences[0].Start:occurrences[0].End])
	})

	t.Run("should find version values nested in objects and arrays", func(t *testing.T) {
		// given an OpenAPI document plus an array of components
		content := `{
  "info": {"title": "api", "version": "3.0.1"},
  "components": [
    {"name": "a", "version": "1.0.0"},
    {"name": "b", "version": "1.1.0"}
  ]
}`
		scanner := jsonfile.NewJSONScannerRepository()

		// when
		occurrences, err := scanner.Scan("openapi.json", []byte(content), pattern)

		// then ordered by source position
		require.NoError(t, err)
		require.Len(t, occurrences, 3)
		assert.Equal(t, "3.0.1", occurrences[0].Raw)
		assert.Equal(t, "1.0.0", occurrences[1].Raw)
		assert.Equal(t, "1.1.0", occurrences[2].Raw)
		for _, occurrence := range occurrences {
			assert.Equal(t, occurrence.Raw, content[occurrence.Start:occurrence.End])
		}
	})

	t.Run("should ignore dependency ranges under other keys", func(t *testing.T) {
		// given
		content := `{"dependencies": {"lodash": "4.17.21"}, "version": "1.0.0"}`
		scanner := jsonfile.NewJSONScannerRepository()

		// when
		occurrences, err := scanner.Scan("package.json", []byte(content), pattern)

		// then
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, "1.0.0", occurrences[0].Raw)
	})

	t.Run("should skip non-string version values", func(t *testing.T) {
		// given
		content := `{"version": 2}`
		scanner := jsonfile.NewJSONScannerRepository()

		// when
		occurrences, err := scanner.Scan("data.json", []byte(content), pattern)

		// then
		require.NoError(t, err)
		assert.Empty(t, occurrences)
	})

	t.Run("should fall back to a raw sweep on unparseable json", func(t *testing.T) {
		// given
		content := `{"version": 5.6.7}`
		scanner := jsonfile.NewJSONScannerRepository()

		// when
		occurrences, err := scanner.Scan("broken.json", []byte(content), pattern)

		// then
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, "5.6.7", occurrences[0].Raw)
	})
}
