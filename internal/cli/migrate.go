package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/note-manager-api/internal/database"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and notes tables, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log := NewLogger(os.Stdout, cfg)

			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return database.Migrate(db, log)
		},
	}
}
