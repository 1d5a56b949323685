// commands/import.go
package commands

import (
	"fmt"
	"log"
	"os"

	"next2play/config"
	"next2play/services"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Bulk-add games listed in a CSV",
	Long: `Reads game titles from the first column of a CSV (the first row is a
header), searches the backend for each and adds the first match.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		titles, err := services.ReadTitles(f)
		if err != nil {
			return err
		}
		log.Printf("[IMPORT] 📥 Importing %d title(s) from %s", len(titles), args[0])

		backend := services.NewBacklogClient(cfg.BackendURL, cfg.BackendToken)
		report := services.ImportTitles(cmd.Context(), backend, titles)

		fmt.Fprintf(cmd.OutOrStdout(), "added: %d, already present: %d, failed: %d\n",
			report.Added, report.Duplicate, report.Failed)
		for _, title := range report.Missing {
			fmt.Fprintf(cmd.OutOrStdout(), "not found: %s\n", title)
		}
		return nil
	},
}
