// services/highlight.go
package services

import (
	"context"
	"time"

	"next2play/models"
)

// DefaultHighlightDuration is how long a revealed card stays highlighted.
const DefaultHighlightDuration = 2 * time.Second

// HighlightDirective tells the shell which card to scroll to and flash.
type HighlightDirective struct {
	GameID     models.GameID `json:"id"`
	Anchor     string        `json:"anchor"`
	Class      string        `json:"class"`
	DurationMS int64         `json:"duration_ms"`
}

// Reveal is the outcome of rendering up to a target card.
type Reveal struct {
	Batch     Batch              `json:"batch"`
	Highlight HighlightDirective `json:"highlight"`
	Image     ImageResolution    `json:"image"`
}

// RevealThrough resets r and renders batch after batch until the batch
// holding id is on screen, pausing between batches so other work on the
// session's goroutine is not starved. The returned batch holds every card
// rendered since the reset.
func RevealThrough(ctx context.Context, r *BatchRenderer, v View, id models.GameID, pause time.Duration, build func(models.Game) models.Card) (Batch, error) {
	idx := IndexOf(v.Games, id)
	if idx < 0 {
		return Batch{}, ErrNotFound
	}
	required := (idx/r.BatchSize() + 1) * r.BatchSize()

	out := r.Render(v, true, build)
	for r.Cursor() < required && r.Cursor() < len(v.Games) {
		if err := yield(ctx, pause); err != nil {
			return Batch{}, err
		}
		next := r.Render(v, false, build)
		out.Cards = append(out.Cards, next.Cards...)
		out.Cursor = next.Cursor
		out.Sentinel = next.Sentinel
	}
	return out, nil
}

func yield(ctx context.Context, pause time.Duration) error {
	if pause <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
