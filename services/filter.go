// services/filter.go
package services

import (
	"strings"

	"next2play/models"
)

// Criteria is everything that narrows the visible list. The zero value
// filters nothing.
type Criteria struct {
	Status        string `json:"status"`
	Search        string `json:"search"`
	HideCompleted bool   `json:"hide_completed"`
	HideTabled    bool   `json:"hide_tabled"`
}

// WithPreferences overlays the persisted hide flags.
func (c Criteria) WithPreferences(p models.DisplayPreferences) Criteria {
	c.HideCompleted = p.HideCompleted
	c.HideTabled = p.HideTabled
	return c
}

// FilterGames returns the games matching every active predicate, keeping
// their order. The input slice is not modified.
func FilterGames(games []models.Game, c Criteria) []models.Game {
	search := strings.ToLower(c.Search)
	status := c.Status
	if status == models.StatusFilterAll {
		status = ""
	}

	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if c.HideCompleted && g.ProgressStatus == models.StatusComplete {
			continue
		}
		if c.HideTabled && g.ProgressStatus == models.StatusTabled {
			continue
		}
		if status != "" && string(g.ProgressStatus) != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(g.GameName), search) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// IndexOf returns the position of id in games, or -1.
func IndexOf(games []models.Game, id models.GameID) int {
	for i, g := range games {
		if g.GameID == id {
			return i
		}
	}
	return -1
}
