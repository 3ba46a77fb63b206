// Command wordreplacer makes a sentence sound smarter by swapping its content
// words for the longest synonyms a thesaurus service knows.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/wordreplacer/internal/htmltext"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/config"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store/memstore"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store/sqlite"
)

// app holds state shared by all subcommands.
type app struct {
	configPath  string
	historyPath string
	verbose     bool

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wordreplacer",
		Short: "Replace content words with their longest known synonym",
		Long: `wordreplacer tags each word of the input, leaves grammatical words alone,
and swaps nouns, verbs, adjectives and adverbs for the longest candidate the
thesaurus service returns. Trailing punctuation is kept.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			} else {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults are used when empty)")
	root.PersistentFlags().StringVar(&a.historyPath, "history", "", "SQLite history database (overrides history.path)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newRewriteCmd(),
		a.newBatchCmd(),
		a.newServeCmd(),
		a.newHistoryCmd(),
	)
	return root
}

func (a *app) newRewriteCmd() *cobra.Command {
	var fromHTML bool

	cmd := &cobra.Command{
		Use:   "rewrite [text...]",
		Short: "Rewrite text given as arguments or on stdin",
		Example: `  wordreplacer rewrite "The dog barked loudly."
  echo "<p>A quick test</p>" | wordreplacer rewrite --html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}
			if fromHTML {
				text = htmltext.ExtractString(text)
			}

			rep, _, cleanup, err := a.buildReplacer(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), rep.Run(cmd.Context(), text))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromHTML, "html", false, "treat input as HTML and rewrite its visible text")
	return cmd
}

func (a *app) loader() config.Loader {
	return config.Loader{ConfigPath: a.configPath}
}

// buildReplacer wires configuration, the lookup client and, when a history
// path is configured, the SQLite recorder. Without a path the returned store
// is an in-memory one if memoryHistory is set, nil otherwise; cleanup closes it.
func (a *app) buildReplacer(ctx context.Context, memoryHistory bool) (*wordreplacer.Replacer, store.Store, func(), error) {
	loader := a.loader()
	comp, err := loader.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	hist, err := a.openHistory(ctx, comp.Config)
	if err != nil {
		return nil, nil, nil, err
	}
	if hist == nil && memoryHistory {
		hist = memstore.New()
	}

	rep := wordreplacer.New(wordreplacer.Options{
		Tagger:         comp.Tagger,
		Lookup:         comp.Lookup,
		Tags:           comp.Tags,
		Categories:     comp.Config.Lookup.Categories,
		MaxInputLength: comp.Config.MaxInputLength,
		Punctuation:    comp.Config.Punctuation,
		Logger:         a.log(),
		Recorder:       hist,
	})

	cleanup := func() {
		if hist != nil {
			hist.Close()
		}
	}
	return rep, hist, cleanup, nil
}

// openHistory returns nil when no history path is configured.
func (a *app) openHistory(ctx context.Context, cfg config.Config) (store.Store, error) {
	path := cfg.History.Path
	if a.historyPath != "" {
		path = a.historyPath
	}
	if path == "" {
		return nil, nil
	}

	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	return st, nil
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}
