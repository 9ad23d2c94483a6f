//go:build unit

package controllers_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/controllers"
	doubles "github.com/rios0rios0/versioncheck/test/domain/commanddoubles"
	builders "github.com/rios0rios0/versioncheck/test/domain/entitybuilders"
)

// newCheckCobraCommand mirrors the persistent flag surface the root command
// hands every subcommand.
func newCheckCobraCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "check"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("base", "", "")
	cmd.Flags().String("head", "", "")
	cmd.Flags().String("pattern", "", "")
	cmd.Flags().Bool("verbose", false, "")
	return cmd
}

// writeConfigFile drops a valid config with a configured baseline into a
// temp directory and returns its path.
func writeConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), entities.DefaultConfigFile)
	config := builders.NewSettingsBuilder().WithBase("v1.0.0").BuildConfig()
	require.NoError(t, os.WriteFile(path, config, 0o600))
	return path
}

func TestCheckControllerGetBind(t *testing.T) {
	t.Parallel()

	t.Run("should describe the check subcommand", func(t *testing.T) {
		// given
		controller := controllers.NewCheckController(&doubles.StubCheckCommand{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "check", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})
}

func TestCheckControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run the check with the loaded settings and flag overrides", func(t *testing.T) {
		// given a config pinning v1.0.0 and a flag overriding it
		stub := &doubles.StubCheckCommand{Report: &entities.SyncReport{
			Base: "v2.0.0",
			Head: "HEAD",
			Rows: []entities.SyncRow{{File: "version.txt", HeadVersion: "1.2.3", InSync: true}},
		}}
		controller := controllers.NewCheckController(stub)
		cmd := newCheckCobraCommand()
		require.NoError(t, cmd.Flags().Set("config", writeConfigFile(t)))
		require.NoError(t, cmd.Flags().Set("base", "v2.0.0"))
		require.NoError(t, cmd.Flags().Set("verbose", "true"))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		require.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "v2.0.0", stub.LastSettings.Base)
		assert.True(t, stub.LastOpts.Verbose)
	})

	t.Run("should turn drift into a non-zero exit", func(t *testing.T) {
		// given
		stub := &doubles.StubCheckCommand{Report: &entities.SyncReport{
			Base: "v1.0.0",
			Head: "HEAD",
			Rows: []entities.SyncRow{{
				File:            "version.txt",
				BaselineVersion: "1.2.3",
				HeadVersion:     "1.2.3",
				InSync:          false,
			}},
		}}
		controller := controllers.NewCheckController(stub)
		cmd := newCheckCobraCommand()
		require.NoError(t, cmd.Flags().Set("config", writeConfigFile(t)))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 file(s) out of sync with v1.0.0")
	})

	t.Run("should propagate the command error", func(t *testing.T) {
		// given
		stub := &doubles.StubCheckCommand{ExecuteErr: errors.New("failed to diff revisions")}
		controller := controllers.NewCheckController(stub)
		cmd := newCheckCobraCommand()
		require.NoError(t, cmd.Flags().Set("config", writeConfigFile(t)))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, stub.ExecuteErr)
	})

	t.Run("should reject a broken pattern override before running", func(t *testing.T) {
		// given
		stub := &doubles.StubCheckCommand{}
		controller := controllers.NewCheckController(stub)
		cmd := newCheckCobraCommand()
		require.NoError(t, cmd.Flags().Set("config", writeConfigFile(t)))
		require.NoError(t, cmd.Flags().Set("pattern", "[broken"))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compile version pattern")
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should fail when no config file can be found", func(t *testing.T) {
		// given no --config flag and no config in the working directory
		stub := &doubles.StubCheckCommand{}
		controller := controllers.NewCheckController(stub)
		cmd := newCheckCobraCommand()

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no config file found")
		assert.Zero(t, stub.ExecuteCallCount)
	})
}
