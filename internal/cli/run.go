package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marrowlabs/triptych/internal/harness"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Trace bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Execute a scenario file",
		Long: `Execute a YAML scenario against a fresh order aggregate.

The scenario is validated against the embedded CUE schema, executed with
a deterministic clock and sequential event ids, and its assertions are
evaluated against the final triple.

Example:
  triptych run ./scenarios/order-lifecycle.yaml
  triptych run ./scenarios/order-lifecycle.yaml --trace --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the canonical step trace")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	slog.Info("loading scenario", "path", path)
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	slog.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	result, err := harness.NewRunner().Run(scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	out := cmd.OutOrStdout()

	if opts.Trace || opts.Format == "json" {
		traceJSON, err := harness.TraceJSON(result)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to serialize trace", err)
		}
		fmt.Fprintln(out, string(traceJSON))
	}

	if opts.Format != "json" {
		proj := result.Final.Value()
		fmt.Fprintf(out, "scenario %s: %d steps, %d events, order %q status %s total %.2f\n",
			scenario.Name, len(result.Trace), len(result.Final.State().Events),
			proj.OrderID, proj.Status, proj.Total)
		for _, f := range result.Failures {
			fmt.Fprintf(out, "FAIL %s\n", f)
		}
	}

	if !result.Pass() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertions failed", len(result.Failures)))
	}
	return nil
}
