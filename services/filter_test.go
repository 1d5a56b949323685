package services

import (
	"testing"

	"next2play/models"

	"github.com/stretchr/testify/assert"
)

func sampleGames() []models.Game {
	games := []models.Game{
		game(1, "Hades", models.StatusInProgress),
		game(2, "Hollow Knight", models.StatusComplete),
		game(3, "Outer Wilds", models.StatusTabled),
		game(4, "Celeste", models.StatusNotStarted),
		game(5, "Hitman 3", models.StatusNotStarted),
		game(6, "Disco Elysium", models.StatusComplete),
		game(7, "Halo Infinite", models.StatusTabled),
	}
	SortGames(games, ParseLocale("en"))
	return games
}

func isSubsequence(sub, full []models.Game) bool {
	j := 0
	for _, g := range full {
		if j < len(sub) && sub[j].GameID == g.GameID {
			j++
		}
	}
	return j == len(sub)
}

func TestFilterGames(t *testing.T) {
	games := sampleGames()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria", Criteria{}, names(games)},
		{"status All is a no-op", Criteria{Status: models.StatusFilterAll}, names(games)},
		{"hide completed", Criteria{HideCompleted: true}, []string{"Hades", "Celeste", "Halo Infinite", "Hitman 3", "Outer Wilds"}},
		{"hide tabled", Criteria{HideTabled: true}, []string{"Hades", "Celeste", "Disco Elysium", "Hitman 3", "Hollow Knight"}},
		{"status filter", Criteria{Status: "Not Started"}, []string{"Celeste", "Hitman 3"}},
		{"search is case-insensitive", Criteria{Search: "hOl"}, []string{"Hollow Knight"}},
		{"search and hide compose", Criteria{Search: "h", HideCompleted: true, HideTabled: true}, []string{"Hades", "Hitman 3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterGames(games, tt.criteria)
			assert.Equal(t, tt.want, names(got))
			assert.True(t, isSubsequence(got, games))
		})
	}
}

func TestFilterHideCompletedRemovesOnlyComplete(t *testing.T) {
	games := sampleGames()
	got := FilterGames(games, Criteria{HideCompleted: true})

	removed := 0
	for _, g := range games {
		if g.ProgressStatus == models.StatusComplete {
			removed++
			assert.Equal(t, -1, IndexOf(got, g.GameID))
		} else {
			assert.NotEqual(t, -1, IndexOf(got, g.GameID))
		}
	}
	assert.Equal(t, len(games)-removed, len(got))
}

func TestFilterCombinationIsIntersection(t *testing.T) {
	games := sampleGames()
	a := Criteria{Search: "o"}
	b := Criteria{HideTabled: true}
	combined := FilterGames(games, Criteria{Search: "o", HideTabled: true})

	left := FilterGames(games, a)
	right := FilterGames(games, b)
	var intersect []models.Game
	for _, g := range left {
		if IndexOf(right, g.GameID) >= 0 {
			intersect = append(intersect, g)
		}
	}
	assert.Equal(t, names(intersect), names(combined))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	games := sampleGames()
	before := names(games)
	_ = FilterGames(games, Criteria{HideCompleted: true, Search: "a"})
	assert.Equal(t, before, names(games))
}
