package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/wordreplacer/internal/batch"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
)

func (a *app) newBatchCmd() *cobra.Command {
	var (
		input     string
		output    string
		keepGoing bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Rewrite every sentence of a JSONL file, one at a time",
		Long: `Reads {"id": ..., "text": ...} lines and writes one result line per item.
Items are processed sequentially. A rate limit stops the batch unless
--keep-going is set, in which case the item is reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input required")
			}

			items, err := batch.LoadFromJSONL(input, a.log())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			rep, _, cleanup, err := a.buildReplacer(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cleanup()

			w := batch.NewWriter(out)
			for _, item := range items {
				res := batch.Result{ID: item.ID, Text: item.Text}
				outcome, err := rep.Rewrite(cmd.Context(), item.Text)
				res.RunID = outcome.ID
				if err != nil {
					res.Error = err.Error()
				} else {
					res.Output = outcome.Output
				}
				if werr := w.Write(res); werr != nil {
					return fmt.Errorf("write result: %w", werr)
				}

				if errors.Is(err, internalerr.ErrRateLimited) && !keepGoing {
					a.log().Warn("batch stopped", zap.String("item", item.ID), zap.Error(err))
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "JSONL input file (required)")
	cmd.Flags().StringVar(&output, "output", "", "JSONL output file (default stdout)")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue after a rate limit")
	return cmd
}
