package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/config"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/logging"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/output"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/search"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/types"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var version = "dev"

// NewRootCmd builds the minigrep command. Matches go to stdout; usage, errors
// and logs go to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	base := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "minigrep [flags] <query> <path>",
		Short: "Print the lines of a file that contain a query",
		Long: `minigrep reads a text file and prints every line containing the query
string. Flags may appear before, between or after the arguments; use -- to
search for a query that starts with a dash.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return types.NewArgumentError("expected <query> and <path>, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := *base
			input.Query = args[0]
			input.Path = args[1]

			cfg, err := config.Load(&input, cmd.Flags().Changed("ignore-case"), nil)
			if err != nil {
				return err
			}

			closer, err := logging.Setup(cfg.Log, stderr)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			defer closer.Close()

			slog.Debug("Searching", "query", cfg.Query, "path", cfg.Path,
				"ignore_case", cfg.IgnoreCase, "invert", cfg.InvertMatch, "word", cfg.WholeWord)

			if err := runSearch(cfg, stdout); err != nil {
				return err
			}

			if cfg.Watcher.Enabled {
				return runWatch(cmd.Context(), cfg, stdout)
			}
			return nil
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &types.ArgumentError{Msg: err.Error()}
	})

	flags := rootCmd.Flags()
	flags.BoolVarP(&base.IgnoreCase, "ignore-case", "i", false, "Match without regard to letter case (also "+config.IgnoreCaseEnv+")")
	flags.BoolVarP(&base.LineNumbers, "line-number", "n", false, "Prefix each line with its 1-based line number")
	flags.BoolVarP(&base.InvertMatch, "invert-match", "v", false, "Print the lines that do not contain the query")
	flags.BoolVarP(&base.WholeWord, "word", "w", false, "Match the query only as a whole word")
	flags.StringVar(&base.Output.Format, "format", base.Output.Format, "Output format: text, json or yaml")
	flags.StringVar(&base.Output.Color, "color", base.Output.Color, "Highlight matches: auto, always or never")
	flags.BoolVar(&base.Watcher.Enabled, "watch", false, "Search again whenever the file changes, until interrupted")
	flags.IntVar(&base.Watcher.DebounceMs, "debounce", base.Watcher.DebounceMs, "Milliseconds to let changes settle in watch mode")
	flags.StringVar(&base.Log.Level, "log-level", base.Log.Level, "Log level: debug, info, warn or error")
	flags.StringVar(&base.Log.File, "log-file", "", "Write logs to a rotated file instead of stderr")

	return rootCmd
}

// runSearch loads the document in full, then prints its matches
func runSearch(cfg *config.Config, stdout io.Writer) error {
	doc, err := search.Load(cfg.Path)
	if err != nil {
		return err
	}

	matcher := search.NewMatcher(cfg)
	printer := output.NewPrinter(stdout, cfg, matcher)
	return printer.Print(search.Search(doc, matcher))
}

// Execute runs minigrep with args until completion or SIGINT/SIGTERM and
// returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteContext(ctx, args, stdout, stderr)
}

// ExecuteContext is Execute with a caller-supplied context
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	rootCmd := NewRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	var argErr *types.ArgumentError
	if errors.As(err, &argErr) {
		fmt.Fprint(stderr, rootCmd.UsageString())
		return ExitUsage
	}
	return ExitFailure
}
