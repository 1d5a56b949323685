// services/collection.go
package services

import (
	"sync"

	"next2play/models"

	"golang.org/x/text/language"
)

// Snapshot is an immutable view of the collection at one point in time.
// Generation changes only when the collection is re-sorted (load or
// re-sync); local patches keep it, so open lists are not reset by them.
type Snapshot struct {
	Games      []models.Game
	Generation uint64
	Version    uint64
}

// Find returns the game with id.
func (s Snapshot) Find(id models.GameID) (models.Game, bool) {
	if i := IndexOf(s.Games, id); i >= 0 {
		return s.Games[i], true
	}
	return models.Game{}, false
}

// Collection owns the in-memory game list. Every mutation swaps in a new
// slice and returns the resulting Snapshot; readers never see a slice
// change underneath them.
type Collection struct {
	mu     sync.RWMutex
	locale language.Tag
	snap   Snapshot
}

func NewCollection(locale language.Tag) *Collection {
	return &Collection{locale: locale}
}

func (c *Collection) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Replace installs an authoritative list from the backend and sorts it.
// Duplicate ids keep their first occurrence. Generation moves only when the
// sorted (id, status, name) sequence differs from the current one.
func (c *Collection) Replace(games []models.Game) Snapshot {
	seen := make(map[models.GameID]struct{}, len(games))
	next := make([]models.Game, 0, len(games))
	for _, g := range games {
		if _, dup := seen[g.GameID]; dup {
			continue
		}
		seen[g.GameID] = struct{}{}
		next = append(next, g)
	}
	SortGames(next, c.locale)

	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.snap.Generation
	if gen == 0 || !sameOrder(c.snap.Games, next) {
		gen++
	}
	c.snap = Snapshot{
		Games:      next,
		Generation: gen,
		Version:    c.snap.Version + 1,
	}
	return c.snap
}

func sameOrder(a, b []models.Game) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].GameID != b[i].GameID || a[i].ProgressStatus != b[i].ProgressStatus || a[i].GameName != b[i].GameName {
			return false
		}
	}
	return true
}

// Append adds a game confirmed by the backend at the end of the list. The
// order is not recomputed until the next re-sync.
func (c *Collection) Append(g models.Game) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if IndexOf(c.snap.Games, g.GameID) >= 0 {
		return c.snap
	}
	next := make([]models.Game, len(c.snap.Games), len(c.snap.Games)+1)
	copy(next, c.snap.Games)
	next = append(next, g)
	c.install(next)
	return c.snap
}

// SetStatus patches one game's status in place (no re-sort).
func (c *Collection) SetStatus(id models.GameID, status models.ProgressStatus) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := IndexOf(c.snap.Games, id)
	if i < 0 {
		return c.snap, false
	}
	next := make([]models.Game, len(c.snap.Games))
	copy(next, c.snap.Games)
	next[i].ProgressStatus = status
	c.install(next)
	return c.snap, true
}

// Remove drops a game.
func (c *Collection) Remove(id models.GameID) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := IndexOf(c.snap.Games, id)
	if i < 0 {
		return c.snap, false
	}
	next := make([]models.Game, 0, len(c.snap.Games)-1)
	next = append(next, c.snap.Games[:i]...)
	next = append(next, c.snap.Games[i+1:]...)
	c.install(next)
	return c.snap, true
}

func (c *Collection) install(games []models.Game) {
	c.snap = Snapshot{
		Games:      games,
		Generation: c.snap.Generation,
		Version:    c.snap.Version + 1,
	}
}
