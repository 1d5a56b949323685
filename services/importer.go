// services/importer.go
package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"next2play/models"
)

// Adder is the slice of the backend a bulk import needs.
type Adder interface {
	Search(ctx context.Context, name string) ([]models.Candidate, error)
	Add(ctx context.Context, cand models.Candidate) (AddOutcome, error)
}

// ImportReport counts the outcome of a bulk import.
type ImportReport struct {
	Added     int      `json:"added"`
	Duplicate int      `json:"duplicate"`
	Failed    int      `json:"failed"`
	Missing   []string `json:"missing,omitempty"`
}

// ReadTitles returns the first column of a CSV, skipping the header row
// and blank titles.
func ReadTitles(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var titles []string
	header := true
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) == 0 {
			continue
		}
		if title := strings.TrimSpace(rec[0]); title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

// ImportTitles adds each title through search and the first candidate.
// A title with no candidates counts as failed.
func ImportTitles(ctx context.Context, backend Adder, titles []string) ImportReport {
	var report ImportReport
	for _, title := range titles {
		if ctx.Err() != nil {
			break
		}
		cands, err := backend.Search(ctx, title)
		if err != nil {
			log.Printf("[IMPORT] ❌ Search failed for %q: %v", title, err)
			report.Failed++
			continue
		}
		if len(cands) == 0 {
			log.Printf("[IMPORT] ⚠️ No games found for %q", title)
			report.Failed++
			report.Missing = append(report.Missing, title)
			continue
		}

		outcome, err := backend.Add(ctx, cands[0])
		switch {
		case err != nil:
			log.Printf("[IMPORT] ❌ Failed to add %q: %v", title, err)
			report.Failed++
		case outcome == AddDuplicate:
			log.Printf("[IMPORT] ➡️ %q is already in the collection", cands[0].Name)
			report.Duplicate++
		default:
			log.Printf("[IMPORT] ✅ Added %q", cands[0].Name)
			report.Added++
		}
	}
	return report
}
