// commands/root.go
package commands

import (
	"context"
	"fmt"
	"log"

	"next2play/config"
	"next2play/services"
	"next2play/utils"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "next2play",
	Short: "Backlog view service",
	Long: `next2play serves the game backlog list view: batched cards, filters,
display preferences, highlight, random pick and remote game actions
against the backlog backend.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, importCmd, mirrorCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openDB connects to Postgres when DATABASE_URL is set. A nil DB means
// snapshots and artwork records are disabled.
func openDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Println("⚠️  DATABASE_URL not set, snapshots and artwork records disabled")
		return nil, nil
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := services.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// artworkStore picks R2 when configured, else the local artwork directory.
func artworkStore(ctx context.Context, cfg config.Config) (services.ObjectStore, error) {
	if cfg.R2.Enabled() {
		log.Printf("✅ Mirroring artwork to R2 bucket %s", cfg.R2.Bucket)
		return utils.NewR2Store(ctx, cfg.R2)
	}
	log.Printf("✅ Mirroring artwork to %s", cfg.ArtworkDir)
	return utils.NewLocalStore(cfg.ArtworkDir, "/game_images")
}
