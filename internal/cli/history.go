package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marrowlabs/triptych/internal/results"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Run      int64
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded property runs",
		Long: `List runs recorded in the results database, newest first.

With --run, prints the individual property outcomes of one run instead.

Example:
  triptych history --db ./triptych.db
  triptych history --db ./triptych.db --run 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite results database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list")
	cmd.Flags().Int64Var(&opts.Run, "run", 0, "show outcomes for one run id")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := results.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if opts.Run > 0 {
		outcomes, err := st.Results(cmd.Context(), opts.Run)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read results", err)
		}

		if opts.Format == "json" {
			return formatter.Success(outcomes)
		}
		for _, r := range outcomes {
			status := "PASS"
			if !r.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(out, "%-4s %-36s %s\n", status, r.Name, r.RecordedAt.Format(time.RFC3339))
			if r.Details != "" && opts.Verbose {
				fmt.Fprintf(out, "     %s\n", r.Details)
			}
		}
		return nil
	}

	runs, err := st.Runs(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}
	for _, r := range runs {
		fmt.Fprintf(out, "run %-4d %s  %-6s seed=%-6d %d results, %d failed\n",
			r.RunID, r.StartedAt.Format(time.RFC3339), r.Label, r.Seed, r.Total, r.Failed)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
	}
	return nil
}
