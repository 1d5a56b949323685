package services

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"next2play/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func game(id int, name string, status models.ProgressStatus) models.Game {
	return models.Game{
		GameID:         models.GameID(id),
		GameName:       name,
		ImageURL:       fmt.Sprintf("https://img.test/%d.jpg", id),
		HowLongToBeat:  "10",
		ProgressStatus: status,
	}
}

func names(games []models.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.GameName
	}
	return out
}

func TestSortAndFilterEndToEnd(t *testing.T) {
	c := NewCollection(language.English)
	snap := c.Replace([]models.Game{
		game(1, "Ant", models.StatusInProgress),
		game(2, "Zorg", models.StatusNotStarted),
		game(3, "Bee", models.StatusComplete),
	})

	assert.Equal(t, []string{"Ant", "Bee", "Zorg"}, names(snap.Games))

	filtered := FilterGames(snap.Games, Criteria{HideCompleted: true})
	assert.Equal(t, []string{"Ant", "Zorg"}, names(filtered))
}

func TestSortGamesInProgressFirst(t *testing.T) {
	statuses := models.AllStatuses
	r := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		games := make([]models.Game, 30)
		for i := range games {
			games[i] = game(i, fmt.Sprintf("game-%c%d", 'a'+r.IntN(26), r.IntN(100)), statuses[r.IntN(len(statuses))])
		}
		SortGames(games, language.English)

		seenOther := false
		for i, g := range games {
			if g.ProgressStatus != models.StatusInProgress {
				seenOther = true
			} else {
				require.False(t, seenOther, "in-progress game after other status at %d", i)
			}
			if i > 0 && (games[i-1].ProgressStatus == models.StatusInProgress) == (g.ProgressStatus == models.StatusInProgress) {
				assert.LessOrEqual(t, games[i-1].GameName, g.GameName)
			}
		}
	}
}

func TestSortGamesIsLocaleAware(t *testing.T) {
	games := []models.Game{
		game(1, "zelda", models.StatusNotStarted),
		game(2, "Ábzû", models.StatusNotStarted),
		game(3, "banjo", models.StatusNotStarted),
		game(4, "Alan Wake", models.StatusNotStarted),
	}
	SortGames(games, language.English)
	assert.Equal(t, []string{"Ábzû", "Alan Wake", "banjo", "zelda"}, names(games))
}

func TestCollectionMutationsKeepGeneration(t *testing.T) {
	c := NewCollection(language.English)
	first := c.Replace([]models.Game{game(1, "Ant", models.StatusNotStarted), game(2, "Bee", models.StatusNotStarted)})

	snap, ok := c.SetStatus(2, models.StatusInProgress)
	require.True(t, ok)
	assert.Equal(t, first.Generation, snap.Generation)
	assert.Greater(t, snap.Version, first.Version)
	// not re-sorted until the next load
	assert.Equal(t, []string{"Ant", "Bee"}, names(snap.Games))
	assert.Equal(t, models.StatusNotStarted, first.Games[1].ProgressStatus, "earlier snapshot is untouched")

	snap = c.Append(game(3, "Aardvark", models.StatusNotStarted))
	assert.Equal(t, []string{"Ant", "Bee", "Aardvark"}, names(snap.Games))

	snap = c.Append(game(3, "Aardvark", models.StatusNotStarted))
	assert.Len(t, snap.Games, 3)

	snap, ok = c.Remove(1)
	require.True(t, ok)
	assert.Equal(t, []string{"Bee", "Aardvark"}, names(snap.Games))

	_, ok = c.Remove(99)
	assert.False(t, ok)

	same := c.Replace(snap.Games)
	assert.Equal(t, first.Generation, same.Generation, "identical list keeps the generation")
	assert.Greater(t, same.Version, snap.Version)

	resorted := c.Replace([]models.Game{snap.Games[0], snap.Games[1], game(4, "Ant", models.StatusNotStarted)})
	assert.Equal(t, first.Generation+1, resorted.Generation)
	assert.Equal(t, []string{"Bee", "Aardvark", "Ant"}, names(resorted.Games))
}

func TestReplaceBumpsGenerationOnStatusOrNameChange(t *testing.T) {
	c := NewCollection(language.English)
	first := c.Replace([]models.Game{game(1, "Ant", models.StatusNotStarted), game(2, "Bee", models.StatusNotStarted)})
	require.Equal(t, uint64(1), first.Generation)

	snap := c.Replace([]models.Game{game(1, "Ant", models.StatusComplete), game(2, "Bee", models.StatusNotStarted)})
	assert.Equal(t, uint64(2), snap.Generation)

	snap = c.Replace([]models.Game{game(1, "Ant", models.StatusComplete), game(2, "Bees", models.StatusNotStarted)})
	assert.Equal(t, uint64(3), snap.Generation)
}

func TestReplaceDropsDuplicateIDs(t *testing.T) {
	c := NewCollection(language.English)
	snap := c.Replace([]models.Game{game(1, "Ant", models.StatusNotStarted), game(1, "Ant again", models.StatusNotStarted)})
	require.Len(t, snap.Games, 1)
	assert.Equal(t, "Ant", snap.Games[0].GameName)
}
