package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/api"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen  string   // overrides the configured listen address
	Origins []string // CORS origins
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Long: `Load the corpus once and answer searches over HTTP until interrupted.

Routes:
  GET /api/search?q=...&limit=...&sets=a,b
  GET /api/suggest?q=...
  GET /api/stats
  GET /api/cards/:name`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "address to listen on (default from config)")
	cmd.Flags().StringSliceVar(&opts.Origins, "origins", nil, "allowed CORS origins")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	cfg, db, err := loadDatabase(opts.RootOptions, f)
	if err != nil {
		return err
	}
	history, err := openHistory(cfg, f)
	if err != nil {
		return err
	}

	routerCfg := api.RouterConfig{
		DB:           db,
		DefaultLimit: cfg.DefaultLimit,
		Corpus:       cfg.Corpus,
		AllowOrigins: opts.Origins,
	}
	if history != nil {
		defer history.Close()
		routerCfg.History = history
	}
	listen := cfg.Listen
	if opts.Listen != "" {
		listen = opts.Listen
	}
	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.NewServer(routerCfg).Run(ctx, listen); err != nil {
		return f.Fail(ExitCommandError, ErrCodeServe, err)
	}
	return nil
}
