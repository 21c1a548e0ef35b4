package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marrowlabs/triptych/internal/bench"
	"github.com/marrowlabs/triptych/internal/check"
	"github.com/marrowlabs/triptych/internal/results"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Iterations int
	Database   string
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure operator throughput",
		Long: `Apply each operator workload repeatedly to a 100-event aggregate
and report ops/sec. With --db, reports are persisted alongside property
runs.

Example:
  triptych bench
  triptych bench --iterations 10000 --db ./triptych.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Iterations, "iterations", 1000, "applications per workload")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite results database (optional)")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	if opts.Iterations < 1 {
		return NewExitError(ExitCommandError, "iterations must be >= 1")
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	slog.Info("running benchmarks", "iterations", opts.Iterations)
	reports := bench.RunAll(opts.Iterations)

	if opts.Database != "" {
		st, err := results.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		runID, err := st.BeginRun(cmd.Context(), 0, "bench")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to begin run", err)
		}

		sink := results.NewSink(cmd.Context(), st, runID)
		for _, r := range reports {
			sink.Record(check.Result{
				Name:    "bench/" + r.Name,
				Passed:  true,
				Details: fmt.Sprintf("%.0f ops/sec over %d iterations", r.OpsPerSec, r.Iterations),
			})
		}
		if err := sink.Close(); err != nil {
			return WrapExitError(ExitCommandError, "failed to persist reports", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(reports)
	}

	out := cmd.OutOrStdout()
	for _, r := range reports {
		fmt.Fprintf(out, "%-10s %10.0f ops/sec  (%d iterations in %s)\n",
			r.Name, r.OpsPerSec, r.Iterations, r.Elapsed)
	}
	return nil
}
