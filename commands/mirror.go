// commands/mirror.go
package commands

import (
	"fmt"

	"next2play/config"
	"next2play/services"

	"github.com/spf13/cobra"
)

var mirrorForce bool

var mirrorCmd = &cobra.Command{
	Use:   "mirror-artwork",
	Short: "Download, shrink and store every game's poster once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		store, err := artworkStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize artwork storage: %w", err)
		}

		mirror := services.NewArtworkMirror(nil, store, db)
		if err := mirror.LoadRecords(ctx); err != nil {
			return err
		}

		games, err := services.NewBacklogClient(cfg.BackendURL, cfg.BackendToken).FetchCollection(ctx)
		if err != nil {
			return err
		}

		report := mirror.MirrorAll(ctx, games, mirrorForce)
		fmt.Fprintf(cmd.OutOrStdout(), "processed: %d, skipped: %d, failed: %d, total: %d\n",
			report.Processed, report.Skipped, report.Failed, report.Total)
		return nil
	},
}

func init() {
	mirrorCmd.Flags().BoolVar(&mirrorForce, "force", false, "re-mirror games that already have artwork")
}
