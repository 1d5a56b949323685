// services/renderer.go
package services

import "next2play/models"

// DefaultBatchSize is how many cards one render pass appends.
const DefaultBatchSize = 20

// View is a filtered, ordered slice of the collection together with the
// inputs it was derived from.
type View struct {
	Games      []models.Game
	Criteria   Criteria
	Generation uint64
}

// NewView filters a snapshot.
func NewView(snap Snapshot, c Criteria) View {
	return View{Games: FilterGames(snap.Games, c), Criteria: c, Generation: snap.Generation}
}

// Batch is the result of one render pass.
type Batch struct {
	Cards    []models.Card `json:"cards"`
	Start    int           `json:"start"`
	Cursor   int           `json:"cursor"`
	Total    int           `json:"total"`
	Reset    bool          `json:"reset"`
	Sentinel bool          `json:"sentinel"`
}

// BatchRenderer walks a View in fixed-size batches. It owns the
// RenderCursor for one viewer.
type BatchRenderer struct {
	size     int
	cursor   int
	primed   bool
	criteria Criteria
	gen      uint64
	rendered map[models.GameID]struct{}
}

func NewBatchRenderer(size int) *BatchRenderer {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &BatchRenderer{size: size, rendered: make(map[models.GameID]struct{})}
}

func (r *BatchRenderer) Cursor() int    { return r.cursor }
func (r *BatchRenderer) BatchSize() int { return r.size }

// Render appends the next batch of view. A reset is forced when the view's
// criteria or collection generation differ from the previous render.
func (r *BatchRenderer) Render(v View, reset bool, build func(models.Game) models.Card) Batch {
	if !r.primed || v.Criteria != r.criteria || v.Generation != r.gen {
		reset = true
	}
	if reset {
		r.cursor = 0
		r.rendered = make(map[models.GameID]struct{})
		r.criteria = v.Criteria
		r.gen = v.Generation
		r.primed = true
	}

	total := len(v.Games)
	if r.cursor > total {
		r.cursor = total
	}
	start := r.cursor
	end := start + r.size
	if end > total {
		end = total
	}

	cards := make([]models.Card, 0, end-start)
	for _, g := range v.Games[start:end] {
		cards = append(cards, build(g))
		r.rendered[g.GameID] = struct{}{}
	}
	r.cursor = end

	return Batch{
		Cards:    cards,
		Start:    start,
		Cursor:   r.cursor,
		Total:    total,
		Reset:    reset,
		Sentinel: r.cursor < total,
	}
}

// Forget accounts for a game removed from the collection after it was
// rendered, so the next batch does not skip an entry.
func (r *BatchRenderer) Forget(id models.GameID) {
	if _, ok := r.rendered[id]; !ok {
		return
	}
	delete(r.rendered, id)
	if r.cursor > 0 {
		r.cursor--
	}
}

// Rendered reports whether id is currently on screen.
func (r *BatchRenderer) Rendered(id models.GameID) bool {
	_, ok := r.rendered[id]
	return ok
}

// Reconcile accounts for id's status having changed in snap. A game that
// left the view is forgotten. A game that entered the view behind the
// cursor is taken as rendered when admit is set, and its position among
// the rendered cards is returned; otherwise the next render starts over.
// The result is -1 unless the game was admitted.
func (r *BatchRenderer) Reconcile(snap Snapshot, id models.GameID, admit bool) int {
	if !r.primed || r.gen != snap.Generation {
		return -1
	}
	i := IndexOf(FilterGames(snap.Games, r.criteria), id)
	switch {
	case i < 0:
		r.Forget(id)
	case !r.Rendered(id) && i < r.cursor:
		if !admit {
			r.primed = false
			return -1
		}
		r.rendered[id] = struct{}{}
		r.cursor++
		return i
	}
	return -1
}
