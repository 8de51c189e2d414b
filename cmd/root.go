package cmd

import (
	"github.com/spf13/cobra"
)

var projectRoot string

var rootCmd = &cobra.Command{
	Use:   "perspective",
	Short: "News-bias training engine",
	Long:  "Perspective serves adaptive bias-training challenges, grades answers, tracks daily streaks and computes the Echo Score.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", ".", "project root holding the config directory")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
