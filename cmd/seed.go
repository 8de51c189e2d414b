package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/config"
	"github.com/jrf25906/perspective-app-sub000/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the challenge and content catalogs into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		catalog := services.NewCatalogService(log)
		ctx := context.Background()

		challenges, err := catalog.SeedChallenges(ctx, resolveCatalogPath(config.Conf.Catalog.ChallengesPath))
		if err != nil {
			log.Error("Failed to seed challenges", zap.Error(err))
			return err
		}

		content, err := catalog.SeedContent(ctx, resolveCatalogPath(config.Conf.Catalog.ContentPath))
		if err != nil {
			log.Error("Failed to seed content", zap.Error(err))
			return err
		}

		log.Info("Seeding complete.",
			zap.Int("challenges", challenges),
			zap.Int("content_items", content),
		)
		return nil
	},
}

// resolveCatalogPath treats relative catalog paths as relative to the
// project root, matching how the config directory itself is found.
func resolveCatalogPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}
