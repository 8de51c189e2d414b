package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		// bootstrap already ran the migrations through database.Init.
		log.Info("Migrations complete.")
		return nil
	},
}
