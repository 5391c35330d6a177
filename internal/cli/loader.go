package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/carddb"
	"github.com/roach88/cardsearch/internal/config"
	"github.com/roach88/cardsearch/internal/store"
)

// newFormatter builds the formatter a command reports through.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadConfig resolves settings from the config sources, then applies the
// global flag overrides.
func loadConfig(opts *RootOptions, f *OutputFormatter) (config.Config, error) {
	cfg, err := config.Load(config.Sources{
		File:    opts.ConfigFile,
		DotEnv:  opts.EnvFile,
		Environ: opts.Environ,
	})
	if err != nil {
		return config.Config{}, f.Fail(ExitCommandError, ErrCodeConfig, err)
	}
	if opts.Corpus != "" {
		cfg.Corpus = opts.Corpus
	}
	if opts.HistoryDB != "" {
		cfg.HistoryDB = opts.HistoryDB
	}
	return cfg, nil
}

// openDatabase loads the configured corpus.
func openDatabase(cfg config.Config, f *OutputFormatter) (*carddb.Database, error) {
	f.VerboseLog("Loading corpus %s", cfg.Corpus)
	db, err := carddb.Load(cfg.Corpus,
		carddb.WithBareScope(cfg.Scope()),
		carddb.WithValidation(cfg.ValidateCorpus),
	)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeCorpus, err)
	}
	f.VerboseLog("Loaded %d cards, %d printings, %d sets",
		db.NumberOfCards(), db.NumberOfPrintings(), db.NumberOfSets())
	return db, nil
}

// loadDatabase is loadConfig followed by openDatabase.
func loadDatabase(opts *RootOptions, f *OutputFormatter) (config.Config, *carddb.Database, error) {
	cfg, err := loadConfig(opts, f)
	if err != nil {
		return config.Config{}, nil, err
	}
	db, err := openDatabase(cfg, f)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

// openHistory opens the search history. It returns nil when history is
// disabled.
func openHistory(cfg config.Config, f *OutputFormatter) (*store.Store, error) {
	if cfg.HistoryDB == "" {
		return nil, nil
	}
	s, err := store.Open(cfg.HistoryDB)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeHistory, err)
	}
	return s, nil
}
