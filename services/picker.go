// services/picker.go
package services

import (
	"math/rand/v2"

	"next2play/models"
)

// Picker chooses a random unstarted game from a view.
type Picker struct {
	intN func(n int) int
}

// NewPicker uses intN as the random source; nil means math/rand/v2.
func NewPicker(intN func(n int) int) *Picker {
	if intN == nil {
		intN = rand.IntN
	}
	return &Picker{intN: intN}
}

// Pick returns a uniformly chosen "Not Started" game among games. ok is
// false when there is none.
func (p *Picker) Pick(games []models.Game) (models.Game, bool) {
	candidates := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.ProgressStatus == models.StatusNotStarted {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return models.Game{}, false
	}
	return candidates[p.intN(len(candidates))], true
}
