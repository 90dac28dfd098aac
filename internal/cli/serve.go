package cli

import (
	"os"
	"os/signal"
	"syscall"

	"itens-cli/internal/devserver"
	"itens-cli/internal/logging"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr string
		db   string
		seed int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local SQLite-backed /itens service for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.cfg.Serve.Addr
			}
			if db == "" {
				db = app.cfg.Serve.DB
			}
			logger := logging.New(cmd.ErrOrStderr(), app.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := devserver.Open(ctx, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			if seed > 0 {
				if err := store.Seed(ctx, seed); err != nil {
					return writeErr(cmd, err)
				}
				logger.Info("seeded items", "count", seed)
			}

			logger.Info("listening", "addr", addr, "db", db)
			return devserver.NewServer(store, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, else 127.0.0.1:3000)")
	cmd.Flags().StringVar(&db, "db", "", "SQLite database file (default from config, else itens.sqlite)")
	cmd.Flags().IntVar(&seed, "seed", 0, "Insert N random demo items before serving")
	return cmd
}
