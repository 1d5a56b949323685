// services/recent.go
package services

import (
	"context"
	"sync"
	"time"

	"next2play/models"
)

// RecentSource yields recently touched games.
type RecentSource interface {
	Recent(ctx context.Context) ([]models.Game, error)
}

// RecentItem is one entry of the side panel; clicking it highlights the game.
type RecentItem struct {
	GameID   models.GameID         `json:"id"`
	Name     string                `json:"name"`
	ImageURL string                `json:"image_url"`
	Status   models.ProgressStatus `json:"status"`
	Event    models.CardEvent      `json:"event"`
}

// RecentGames caches the last recent-games list.
type RecentGames struct {
	source RecentSource

	mu        sync.RWMutex
	games     []models.Game
	fetchedAt time.Time
}

func NewRecentGames(source RecentSource) *RecentGames {
	return &RecentGames{source: source}
}

// Refresh fetches the list and replaces the cache. On error the cache is kept.
func (r *RecentGames) Refresh(ctx context.Context) ([]models.Game, error) {
	games, err := r.source.Recent(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.games = games
	r.fetchedAt = time.Now()
	r.mu.Unlock()
	return games, nil
}

func (r *RecentGames) Cached() ([]models.Game, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.games, r.fetchedAt
}

// RecentItems projects games for the panel.
func RecentItems(games []models.Game, cards CardBuilder) []RecentItem {
	items := make([]RecentItem, 0, len(games))
	for _, g := range games {
		items = append(items, RecentItem{
			GameID:   g.GameID,
			Name:     g.GameName,
			ImageURL: cards.ImageSource(g),
			Status:   g.ProgressStatus,
			Event:    models.CardEvent{Element: "recent-game-item", Event: "click", Action: models.ActionHighlight},
		})
	}
	return items
}
