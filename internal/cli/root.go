package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	ConfigFile string
	EnvFile    string
	Corpus     string // overrides the configured corpus path
	HistoryDB  string // overrides the configured history database

	// Environ is the environment config is read from, in os.Environ form.
	Environ []string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cardsearch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Environ: os.Environ()}

	cmd := &cobra.Command{
		Use:   "cardsearch",
		Short: "Search a trading card corpus",
		Long: `cardsearch loads a card corpus into memory and answers queries written in a
compact search language, for example:

  cardsearch search 't:angel c:w cmc>=4'
  cardsearch search --sets rtr,gtc,dgm 'is:split'
  cardsearch serve --listen :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", msg)
				return NewExitError(ExitCommandError, msg)
			}
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file with CARDSEARCH_* settings")
	cmd.PersistentFlags().StringVar(&opts.Corpus, "corpus", "", "card corpus JSON file (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.HistoryDB, "history-db", "", "search history database (overrides config)")

	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))
	cmd.AddCommand(NewCardCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// setupLogging sends slog output to w, at debug level when verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
