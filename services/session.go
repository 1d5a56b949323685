// services/session.go
package services

import (
	"sort"
	"sync"
	"time"

	"next2play/models"

	"github.com/google/uuid"
)

// Session is the per-viewer state of one open list: filter controls,
// render cursor, resolved posters, notifications, overlays and the
// candidates of an open add-game popup.
type Session struct {
	ID string

	mu         sync.Mutex
	criteria   Criteria
	renderer   *BatchRenderer
	images     *ImageLoader
	notices    *Notifier
	candidates []models.Candidate
	ui         models.UIState
	lastSeen   time.Time
}

// Notices is safe to use without holding the session lock.
func (s *Session) Notices() *Notifier { return s.notices }

// SessionStore keeps sessions in memory, keyed by the session cookie.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	batchSize int
	noticeTTL time.Duration
	now       func() time.Time
}

func NewSessionStore(batchSize int, noticeTTL time.Duration) *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*Session),
		batchSize: batchSize,
		noticeTTL: noticeTTL,
		now:       time.Now,
	}
}

// Get returns the session for id, or creates a fresh one with a new id
// when id is unknown.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.mu.Lock()
		s.lastSeen = st.now()
		s.mu.Unlock()
		return s, false
	}

	s = &Session{
		ID:       uuid.NewString(),
		renderer: NewBatchRenderer(st.batchSize),
		images:   NewImageLoader(),
		notices:  NewNotifier(st.noticeTTL),
		lastSeen: st.now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s, true
}

// Sweep drops sessions idle for longer than maxIdle and returns how many.
func (st *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := st.now().Add(-maxIdle)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// lockAll locks every session in id order. Callers may take the
// collection lock afterwards, never before.
func (st *SessionStore) lockAll() ([]*Session, func()) {
	st.mu.RLock()
	all := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		all = append(all, s)
	}
	st.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	for _, s := range all {
		s.mu.Lock()
	}
	return all, func() {
		for _, s := range all {
			s.mu.Unlock()
		}
	}
}

// RemoveGame drops id from coll and from every session's render
// bookkeeping in one step, so no render sees the shorter list with a
// stale cursor.
func (st *SessionStore) RemoveGame(coll *Collection, id models.GameID) (Snapshot, bool) {
	all, unlock := st.lockAll()
	defer unlock()
	snap, ok := coll.Remove(id)
	if !ok {
		return snap, false
	}
	for _, s := range all {
		s.renderer.Forget(id)
	}
	return snap, true
}

// PatchStatus sets id's status in coll and reconciles every open list
// with it. When the game entered actor's view behind the cursor, pos is
// its index among actor's rendered cards; otherwise pos is -1. Other
// sessions in that position start over on their next render.
func (st *SessionStore) PatchStatus(coll *Collection, id models.GameID, status models.ProgressStatus, actor *Session) (snap Snapshot, pos int, ok bool) {
	all, unlock := st.lockAll()
	defer unlock()
	snap, ok = coll.SetStatus(id, status)
	pos = -1
	if !ok {
		return snap, pos, false
	}
	for _, s := range all {
		if p := s.renderer.Reconcile(snap, id, s == actor); s == actor {
			pos = p
		}
	}
	return snap, pos, true
}
