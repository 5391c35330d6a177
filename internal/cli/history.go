package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/store"
)

// HistoryOptions holds flags for the history subcommands.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the search history",
		Long: `Inspect searches recorded in the history database. History is kept only
when history_db is configured or --history-db is given.`,
	}
	cmd.PersistentFlags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum entries to print")

	cmd.AddCommand(&cobra.Command{
		Use:           "recent",
		Short:         "List the most recent searches",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd, listRecent)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "top",
		Short:         "List the most frequent successful searches",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd, listTop)
		},
	})

	return cmd
}

type historyLister func(cmd *cobra.Command, s *store.Store, f *OutputFormatter, limit int) error

func runHistory(opts *HistoryOptions, cmd *cobra.Command, list historyLister) error {
	f := newFormatter(opts.RootOptions, cmd)
	if opts.Limit < 1 {
		return f.Fail(ExitCommandError, ErrCodeConfig, fmt.Errorf("limit must be positive, got %d", opts.Limit))
	}
	cfg, err := loadConfig(opts.RootOptions, f)
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return f.Fail(ExitCommandError, ErrCodeHistory, fmt.Errorf("search history is disabled; set history_db or --history-db"))
	}
	s, err := openHistory(cfg, f)
	if err != nil {
		return err
	}
	defer s.Close()
	return list(cmd, s, f, opts.Limit)
}

func listRecent(cmd *cobra.Command, s *store.Store, f *OutputFormatter, limit int) error {
	entries, err := s.Recent(cmd.Context(), limit)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeHistory, err)
	}
	if f.JSON() {
		return f.Success(entries)
	}
	for _, e := range entries {
		outcome := fmt.Sprintf("%d %s", e.ResultCount, e.Scope)
		if e.Failed() {
			outcome = "error " + e.ErrorCode
		}
		fmt.Fprintf(f.Writer, "%4d  %s  %-40s  %s\n", e.Seq, e.RecordedAt.Local().Format(time.DateTime), e.Query, outcome)
	}
	return nil
}

func listTop(cmd *cobra.Command, s *store.Store, f *OutputFormatter, limit int) error {
	counts, err := s.TopQueries(cmd.Context(), limit)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeHistory, err)
	}
	if f.JSON() {
		return f.Success(counts)
	}
	for _, c := range counts {
		fmt.Fprintf(f.Writer, "%5d  %s\n", c.Count, c.Query)
	}
	return nil
}
