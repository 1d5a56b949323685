package services

import (
	"math/rand/v2"
	"testing"

	"next2play/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickerNoCandidates(t *testing.T) {
	p := NewPicker(nil)
	_, ok := p.Pick([]models.Game{game(1, "Ant", models.StatusComplete), game(2, "Bee", models.StatusInProgress)})
	assert.False(t, ok)

	_, ok = p.Pick(nil)
	assert.False(t, ok)
}

func TestPickerIsUniformOverNotStarted(t *testing.T) {
	games := []models.Game{
		game(1, "A", models.StatusNotStarted),
		game(2, "B", models.StatusComplete),
		game(3, "C", models.StatusNotStarted),
		game(4, "D", models.StatusTabled),
		game(5, "E", models.StatusNotStarted),
		game(6, "F", models.StatusNotStarted),
	}
	r := rand.New(rand.NewPCG(42, 1024))
	p := NewPicker(r.IntN)

	const trials = 20000
	counts := map[models.GameID]int{}
	for i := 0; i < trials; i++ {
		g, ok := p.Pick(games)
		require.True(t, ok)
		require.Equal(t, models.StatusNotStarted, g.ProgressStatus)
		counts[g.GameID]++
	}

	require.Len(t, counts, 4)
	expected := trials / 4
	for id, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)*0.08, "game %d picked %d times", id, n)
	}
}
