package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/note-manager-api/internal/database"
	"github.com/yukikurage/note-manager-api/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the schema and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log := NewLogger(os.Stdout, cfg)

			gin.SetMode(cfg.GinMode)

			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					log.Error("failed to close database", "error", err)
				}
			}()

			if !skipMigrate {
				if err := database.Migrate(db, log); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, cfg, db, log)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not create or update tables on startup")

	return cmd
}
