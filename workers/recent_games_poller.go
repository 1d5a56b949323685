package workers

import (
	"context"
	"log"
	"time"

	"next2play/models"
)

// RecentRefresher refreshes the cached recent-games list.
type RecentRefresher interface {
	Refresh(ctx context.Context) ([]models.Game, error)
}

// PollRecentGames keeps the recent-games cache warm so the side panel has
// something to show when the backend is briefly unreachable.
func PollRecentGames(ctx context.Context, recent RecentRefresher, pollInterval time.Duration) {
	if pollInterval <= 0 {
		return
	}
	log.Println("[RECENT] Starting recent games polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[RECENT] Recent games polling stopped.")
			return
		case <-ticker.C:
			games, err := recent.Refresh(ctx)
			if err != nil {
				log.Printf("[RECENT] ❌ Error polling recent games: %v", err)
				continue
			}
			log.Printf("[RECENT] 📥 Cached %d recent game(s).", len(games))
		}
	}
}
