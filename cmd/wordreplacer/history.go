package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var (
		limit   int
		details bool
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded rewrite runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := a.loader()
			comp, err := loader.Load()
			if err != nil {
				return err
			}
			hist, err := a.openHistory(cmd.Context(), comp.Config)
			if err != nil {
				return err
			}
			if hist == nil {
				return fmt.Errorf("no history database configured (use --history or history.path)")
			}
			defer hist.Close()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				run, err := hist.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run:    %s\nTime:   %s\nStatus: %s\nInput:  %s\nOutput: %s\n",
					run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Status, run.Input, run.Output)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "\nWORD\tTAG\tTYPE\tREASON\tREPLACEMENT")
				for _, d := range run.Decisions {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Word, d.Tag, d.WordType, d.Reason, d.Replacement)
				}
				return tw.Flush()
			}

			runs, err := hist.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTIME\tSTATUS\tOUTPUT")
			for _, run := range runs {
				text := run.Output
				if !details {
					text = truncate(text, 60)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Status, text)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list")
	cmd.Flags().BoolVar(&details, "full", false, "do not truncate output text")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
