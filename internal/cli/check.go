package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marrowlabs/triptych/internal/check"
	"github.com/marrowlabs/triptych/internal/results"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Seed     int64
	Trials   int
	Database string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the property suite",
		Long: `Run the algebra's property suite against the order aggregate.

Randomized properties draw from the given seed, so a failing run can be
reproduced exactly. With --db, outcomes are persisted for later
inspection via the history command.

Example:
  triptych check --seed 42
  triptych check --seed 42 --db ./triptych.db --trials 500`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "seed for randomized properties")
	cmd.Flags().IntVar(&opts.Trials, "trials", 100, "sample count for randomized properties (min 100)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite results database (optional)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	rec := &check.MemoryRecorder{}
	var recorder check.Recorder = rec

	// Persist through a sink when a database is given
	var sink *results.Sink
	if opts.Database != "" {
		slog.Info("opening results database", "path", opts.Database)
		st, err := results.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		runID, err := st.BeginRun(cmd.Context(), opts.Seed, "check")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to begin run", err)
		}

		sink = results.NewSink(cmd.Context(), st, runID)
		recorder = check.RecorderFunc(func(r check.Result) {
			rec.Record(r)
			sink.Record(r)
		})
	}

	slog.Info("running property suite", "seed", opts.Seed, "trials", opts.Trials)
	passed := check.NewSuite(recorder, opts.Seed, check.WithTrials(opts.Trials)).Run()

	if sink != nil {
		if err := sink.Close(); err != nil {
			return WrapExitError(ExitCommandError, "failed to persist results", err)
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(rec.Results()); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode results", err)
		}
	} else {
		out := cmd.OutOrStdout()
		for _, r := range rec.Results() {
			status := "PASS"
			if !r.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(out, "%-4s %s\n", status, r.Name)
			if r.Details != "" && (opts.Verbose || !r.Passed) {
				fmt.Fprintf(out, "     %s\n", r.Details)
			}
		}
		fmt.Fprintf(out, "%d properties, %d failed\n", len(rec.Results()), rec.Failed())
	}

	if !passed {
		return NewExitError(ExitFailure, fmt.Sprintf("%d properties failed", rec.Failed()))
	}
	return nil
}
