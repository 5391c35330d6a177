package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/carddb"
	"github.com/roach88/cardsearch/internal/config"
	"github.com/roach88/cardsearch/internal/query"
	"github.com/roach88/cardsearch/internal/render"
	"github.com/roach88/cardsearch/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Sets  []string // restrict the corpus to these set codes
	Limit int      // cards to print; 0 uses the configured default
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search the corpus",
		Long: `Search the card corpus. Arguments are joined with spaces into one query.

Exit codes:
  0 - At least one card matched
  1 - The query was rejected or matched nothing
  2 - Command error (missing corpus, bad config, etc.)

Examples:
  cardsearch search lightning bolt
  cardsearch search 't:goblin (c:r or c:u)'
  cardsearch search --sets rtr,gtc,dgm 'r:mythic sort:name'
  cardsearch search --format json --limit 5 'e:lea'`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Sets, "sets", nil, "restrict the corpus to these set codes")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "maximum cards to print (default from config)")

	return cmd
}

func runSearch(ctx context.Context, opts *SearchOptions, text string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	if opts.Limit < 0 {
		return f.Fail(ExitCommandError, ErrCodeConfig, fmt.Errorf("limit must not be negative, got %d", opts.Limit))
	}

	cfg, db, err := loadDatabase(opts.RootOptions, f)
	if err != nil {
		return err
	}
	full := db
	if len(opts.Sets) > 0 {
		db = db.Subset(opts.Sets)
		f.VerboseLog("Restricted to %d sets, %d cards", db.NumberOfSets(), db.NumberOfCards())
	}
	limit := opts.Limit
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	res, searchErr := db.Search(text)
	entry := store.Entry{Query: text, Corpus: cfg.Corpus}
	if searchErr != nil {
		entry.ErrorCode = string(query.ErrorCodeOf(searchErr))
	} else {
		entry.Scope = res.Scope.String()
		entry.ResultCount = res.Len()
	}
	if err := recordSearch(ctx, cfg, entry, f); err != nil {
		return err
	}

	if searchErr != nil {
		return reportParseError(f, searchErr)
	}

	view := render.Search(db.Catalog(), text, res, limit)
	if view.Total == 0 {
		view.Suggestion, _ = full.SuggestQuery(text)
	}
	if f.JSON() {
		if err := f.Success(view); err != nil {
			return err
		}
	} else if err := render.WriteSearch(f.Writer, view); err != nil {
		return err
	}
	if view.Total == 0 {
		return NewExitError(ExitFailure, ErrCodeNoResults)
	}
	return nil
}

// reportParseError prints a rejected query with a caret under the
// offending fragment in text mode.
func reportParseError(f *OutputFormatter, err error) error {
	var pe *query.ParseError
	if !errors.As(err, &pe) {
		return f.Fail(ExitFailure, ErrCodeSearch, err)
	}
	details := map[string]any{"fragment": pe.Fragment, "pos": pe.Pos}
	if outErr := f.Error(string(pe.Code), pe.Message, details); outErr != nil {
		return outErr
	}
	if !f.JSON() && pe.Fragment != "" {
		fmt.Fprintf(f.GetErrWriter(), "  at %d: %s\n", pe.Pos, pe.Fragment)
	}
	return WrapExitError(ExitFailure, string(pe.Code), err)
}

// recordSearch appends entry to the history when one is configured. A
// history that cannot be written is logged and otherwise ignored, but one
// that cannot be opened is a command error.
func recordSearch(ctx context.Context, cfg config.Config, entry store.Entry, f *OutputFormatter) error {
	history, err := openHistory(cfg, f)
	if err != nil || history == nil {
		return err
	}
	defer history.Close()

	if _, err := history.Record(ctx, entry); err != nil {
		slog.Warn("record search", "query", entry.Query, "error", err)
	}
	return nil
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <word>...",
		Short: "Suggest the card name closest to a misspelling",
		Long: `Suggest the card name closest to the given words.

Examples:
  cardsearch suggest lightnig bolt`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			_, db, err := loadDatabase(rootOpts, f)
			if err != nil {
				return err
			}
			word := strings.Join(args, " ")
			name, ok := db.SuggestSpelling(word)
			if !ok {
				return f.Fail(ExitFailure, ErrCodeNotFound, fmt.Errorf("no card name close to %q", word))
			}
			if f.JSON() {
				return f.Success(map[string]string{"query": word, "suggestion": name})
			}
			return f.Success(name)
		},
	}
}

// NewCardCommand creates the card command.
func NewCardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "card <name>...",
		Short:         "Show one card with every printing",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			_, db, err := loadDatabase(rootOpts, f)
			if err != nil {
				return err
			}
			return showCard(f, db, strings.Join(args, " "))
		},
	}
}

func showCard(f *OutputFormatter, db *carddb.Database, name string) error {
	card, ok := db.Card(name)
	if !ok {
		err := fmt.Errorf("no card named %q", name)
		if suggestion, found := db.SuggestSpelling(name); found {
			err = fmt.Errorf("no card named %q; did you mean %q?", name, suggestion)
		}
		return f.Fail(ExitFailure, ErrCodeNotFound, err)
	}
	view := render.Card(db.Catalog(), card, card.Printings)
	if f.JSON() {
		return f.Success(view)
	}
	return render.WriteCard(f.Writer, view)
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Print corpus statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			_, db, err := loadDatabase(rootOpts, f)
			if err != nil {
				return err
			}
			view := render.Stats(db)
			if f.JSON() {
				return f.Success(view)
			}
			return render.WriteStats(f.Writer, view)
		},
	}
}
