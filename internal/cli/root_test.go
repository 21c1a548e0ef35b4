package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "triptych", cmd.Use)
	assert.Contains(t, cmd.Long, "operator algebra")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"check", "run", "history", "bench"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCheckCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	seedFlag := checkCmd.Flags().Lookup("seed")
	require.NotNil(t, seedFlag)
	assert.Equal(t, "1", seedFlag.DefValue)

	trialsFlag := checkCmd.Flags().Lookup("trials")
	require.NotNil(t, trialsFlag)
	assert.Equal(t, "100", trialsFlag.DefValue)

	dbFlag := checkCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	dbFlag := historyCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)

	limitFlag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestBenchCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	benchCmd, _, err := cmd.Find([]string{"bench"})
	require.NoError(t, err)

	iterFlag := benchCmd.Flags().Lookup("iterations")
	require.NotNil(t, iterFlag)
	assert.Equal(t, "1000", iterFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "check"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCheckCommand_PassesAndPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "triptych.db")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"check", "--seed", "42", "--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "9 properties, 0 failed")

	// History over the same database sees the run
	histCmd := NewRootCommand()
	var histOut bytes.Buffer
	histCmd.SetOut(&histOut)
	histCmd.SetErr(&histOut)
	histCmd.SetArgs([]string{"history", "--db", dbPath})

	err = histCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, histOut.String(), "seed=42")
	assert.Contains(t, histOut.String(), "9 results, 0 failed")
}

func TestRunCommand_ExecutesScenario(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"run", "../harness/testdata/scenarios/order-lifecycle.yaml"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "scenario order-lifecycle")
	assert.Contains(t, out.String(), "total 21.00")
}

func TestRunCommand_MissingFile(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"run", "does-not-exist.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBenchCommand_Reports(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"bench", "--iterations", "5"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "append")
	assert.Contains(t, out.String(), "ops/sec")
}
